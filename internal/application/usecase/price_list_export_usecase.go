package usecase

import (
	"fmt"

	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// PriceListWriter serializa el catálogo a un archivo descargable (XLSX).
type PriceListWriter interface {
	Export(products []*entity.Product) ([]byte, error)
}

// PriceListExportUseCase arma la lista de precios del catálogo completo.
type PriceListExportUseCase struct {
	productRepo repository.ProductRepository
	writer      PriceListWriter
}

// NewPriceListExportUseCase construye el caso de uso.
func NewPriceListExportUseCase(productRepo repository.ProductRepository, writer PriceListWriter) *PriceListExportUseCase {
	return &PriceListExportUseCase{productRepo: productRepo, writer: writer}
}

// Export genera el archivo con todos los artículos.
func (uc *PriceListExportUseCase) Export() ([]byte, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	return uc.writer.Export(products)
}
