package billing

import (
	"context"
	"fmt"

	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// SalePDFUseCase genera la representación gráfica de una venta.
type SalePDFUseCase struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
	generator  SalePDFGenerator
	cfg        AFIPConfig
}

// NewSalePDFUseCase construye el caso de uso.
func NewSalePDFUseCase(saleRepo repository.SaleRepository, clientRepo repository.ClientRepository, generator SalePDFGenerator, cfg AFIPConfig) *SalePDFUseCase {
	return &SalePDFUseCase{saleRepo: saleRepo, clientRepo: clientRepo, generator: generator, cfg: cfg}
}

// Generate devuelve los bytes del PDF del comprobante.
func (uc *SalePDFUseCase) Generate(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(sale.ClientID)
	if err != nil {
		return nil, err
	}

	pdf, err := uc.generator.GenerateSalePDF(ctx, sale, client, uc.cfg.CUIT)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de venta %s: %w", saleID, err)
	}
	return pdf, nil
}
