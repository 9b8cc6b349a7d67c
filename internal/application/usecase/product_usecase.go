package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/ref"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para artículos del catálogo.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create crea un nuevo artículo. El código es único en el catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		Description:    in.Description,
		SupplierID:     in.SupplierID,
		CategoryID:     in.CategoryID,
		PurchaseCost:   in.PurchaseCost,
		WholesalePrice: in.WholesalePrice,
		RetailPrice:    in.RetailPrice,
		CurrentStock:   in.CurrentStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un artículo por ID, con el proveedor expandido si existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	if product.SupplierID != "" {
		if supplier, err := uc.supplierRepo.GetByID(product.SupplierID); err == nil && supplier != nil {
			out.Supplier = ref.FromEntity(supplier.ID, supplier.Name)
		}
	}
	return out, nil
}

// Update actualiza campos parciales de un artículo.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.PurchaseCost != nil {
		product.PurchaseCost = *in.PurchaseCost
	}
	if in.WholesalePrice != nil {
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.RetailPrice != nil {
		product.RetailPrice = *in.RetailPrice
	}
	if in.CurrentStock != nil {
		product.CurrentStock = *in.CurrentStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista artículos con paginación. El proveedor viaja como id plano.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListBySupplier deriva los artículos del proveedor resolviendo la referencia
// polimórfica en memoria, la misma regla que ventas-por-cliente.
func (uc *ProductUseCase) ListBySupplier(supplierID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	filtered := ref.FilterByOwner(items, func(p dto.ProductResponse) ref.OwnerRef { return p.Supplier }, supplierID)
	if filtered == nil {
		filtered = []dto.ProductResponse{}
	}
	return filtered, nil
}

// Delete elimina un artículo por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Description:      p.Description,
		Supplier:         ref.FromID(p.SupplierID),
		CategoryID:       p.CategoryID,
		PurchaseCost:     p.PurchaseCost,
		WholesalePrice:   p.WholesalePrice,
		RetailPrice:      p.RetailPrice,
		CurrentStock:     p.CurrentStock,
		ShopifyProductID: p.ShopifyProductID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
