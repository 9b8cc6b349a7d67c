package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/ref"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// SupplierInvoiceUseCase casos de uso para facturas de compra.
type SupplierInvoiceUseCase struct {
	repo         repository.SupplierInvoiceRepository
	supplierRepo repository.SupplierRepository
}

// NewSupplierInvoiceUseCase construye el caso de uso.
func NewSupplierInvoiceUseCase(repo repository.SupplierInvoiceRepository, supplierRepo repository.SupplierRepository) *SupplierInvoiceUseCase {
	return &SupplierInvoiceUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create registra una factura de compra.
func (uc *SupplierInvoiceUseCase) Create(in dto.CreateSupplierInvoiceRequest) (*dto.SupplierInvoiceResponse, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	invoice := &entity.SupplierInvoice{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Number:     in.Number,
		Date:       date,
		DueDate:    in.DueDate,
		Total:      in.Total,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(invoice); err != nil {
		return nil, err
	}
	return toSupplierInvoiceResponse(invoice), nil
}

// List lista facturas de compra con paginación.
func (uc *SupplierInvoiceUseCase) List(limit, offset int) (*dto.SupplierInvoiceListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierInvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toSupplierInvoiceResponse(inv))
	}
	return &dto.SupplierInvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListBySupplier deriva las facturas del proveedor resolviendo la referencia
// polimórfica en memoria. El proveedor se expande en la salida cuando existe.
func (uc *SupplierInvoiceUseCase) ListBySupplier(supplierID string) ([]dto.SupplierInvoiceResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierInvoiceResponse, 0, len(list))
	for _, inv := range list {
		out := toSupplierInvoiceResponse(inv)
		if supplier, err := uc.supplierRepo.GetByID(inv.SupplierID); err == nil && supplier != nil {
			out.Supplier = ref.FromEntity(supplier.ID, supplier.Name)
		}
		items = append(items, *out)
	}
	filtered := ref.FilterByOwner(items, func(i dto.SupplierInvoiceResponse) ref.OwnerRef { return i.Supplier }, supplierID)
	if filtered == nil {
		filtered = []dto.SupplierInvoiceResponse{}
	}
	return filtered, nil
}

// MarkPaid marca una factura de compra como pagada.
func (uc *SupplierInvoiceUseCase) MarkPaid(id string) error {
	return uc.repo.MarkPaid(id)
}

// Delete elimina una factura de compra.
func (uc *SupplierInvoiceUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toSupplierInvoiceResponse(inv *entity.SupplierInvoice) *dto.SupplierInvoiceResponse {
	return &dto.SupplierInvoiceResponse{
		ID:        inv.ID,
		Supplier:  ref.FromID(inv.SupplierID),
		Number:    inv.Number,
		Date:      inv.Date,
		DueDate:   inv.DueDate,
		Total:     inv.Total,
		Paid:      inv.Paid,
		Notes:     inv.Notes,
		CreatedAt: inv.CreatedAt,
	}
}
