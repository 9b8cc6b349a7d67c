package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// CreateSaleUseCase registra una venta: numera el comprobante, descuenta
// stock y persiste los renglones en una única transacción. La autorización
// AFIP corre después del commit; si falla, la venta queda pendiente y se
// puede reintentar.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	clientRepo   repository.ClientRepository
	orchestrator *AFIPOrchestrator
	cfg          AFIPConfig
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, clientRepo repository.ClientRepository, orchestrator *AFIPOrchestrator, cfg AFIPConfig) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, clientRepo: clientRepo, orchestrator: orchestrator, cfg: cfg}
}

// Create registra la venta y devuelve el comprobante resultante.
func (uc *CreateSaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	voucherType := in.VoucherType
	if voucherType == 0 {
		voucherType = entity.VoucherTypeFacturaB
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		PuntoVenta:    uc.cfg.PuntoVenta,
		ClientID:      in.ClientID,
		Date:          now,
		PaymentMethod: in.PaymentMethod,
		VoucherType:   voucherType,
		Status:        entity.SaleStatusPending,
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		total := decimal.Zero
		for _, it := range in.Items {
			if it.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, it.ProductID)
			}
			if product.CurrentStock < it.Quantity {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Code)
			}

			unitPrice := it.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.RetailPrice
			}
			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
			total = total.Add(subtotal)

			sale.Items = append(sale.Items, entity.SaleItem{
				ProductID: product.ID,
				Code:      product.Code,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: unitPrice,
				Subtotal:  subtotal,
			})
			if err := productRepo.AdjustStock(product.ID, -it.Quantity); err != nil {
				return err
			}
		}
		sale.Total = total

		number, err := saleRepo.NextNumber(uc.cfg.PuntoVenta)
		if err != nil {
			return err
		}
		sale.Number = number
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	// Autorización AFIP fuera de la transacción: un rechazo del WS no debe
	// revertir la venta ni el stock; la venta queda pendiente para reintento.
	if uc.orchestrator != nil {
		if err := uc.orchestrator.Authorize(ctx, sale, client); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID).Msg("autorización AFIP diferida")
		}
	}

	return toSaleResponse(sale, client), nil
}
