package billing

import (
	"context"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/ref"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// SaleUseCase consultas de ventas.
type SaleUseCase struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
	afipOrch   *AFIPOrchestrator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, clientRepo repository.ClientRepository, afipOrch *AFIPOrchestrator) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, clientRepo: clientRepo, afipOrch: afipOrch}
}

// GetByID obtiene una venta con el cliente expandido.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	client, _ := uc.clientRepo.GetByID(sale.ClientID)
	return toSaleResponse(sale, client), nil
}

// List lista ventas con paginación. El cliente viaja como id plano.
func (uc *SaleUseCase) List(limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByClient deriva las ventas del cliente resolviendo la referencia
// polimórfica en memoria, preservando el orden del listado.
func (uc *SaleUseCase) ListByClient(clientID string) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.ListAll()
	if err != nil {
		return nil, err
	}
	client, _ := uc.clientRepo.GetByID(clientID)

	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		// Solo el dueño buscado se expande; el resto queda como id plano.
		// El filtro resuelve ambas formas por igual.
		if client != nil && s.ClientID == client.ID {
			items = append(items, *toSaleResponse(s, client))
		} else {
			items = append(items, *toSaleResponse(s, nil))
		}
	}
	filtered := ref.FilterByOwner(items, func(s dto.SaleResponse) ref.OwnerRef { return s.Client }, clientID)
	if filtered == nil {
		filtered = []dto.SaleResponse{}
	}
	return filtered, nil
}

// RetryAuthorization reintenta la autorización AFIP de una venta pendiente.
func (uc *SaleUseCase) RetryAuthorization(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil || sale.Status != entity.SaleStatusPending {
		return nil
	}
	client, err := uc.clientRepo.GetByID(sale.ClientID)
	if err != nil {
		return err
	}
	return uc.afipOrch.Authorize(ctx, sale, client)
}

func toSaleResponse(s *entity.Sale, client *entity.Client) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		Client:        ref.FromID(s.ClientID),
		Date:          s.Date,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		VoucherType:   s.VoucherType,
		Status:        s.Status,
		CAE:           s.CAE,
		CreatedAt:     s.CreatedAt,
	}
	if client != nil {
		out.Client = ref.FromEntity(client.ID, client.Name)
	}
	if !s.CAEDueDate.IsZero() {
		due := s.CAEDueDate
		out.CAEDueDate = &due
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Code:      it.Code,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return out
}
