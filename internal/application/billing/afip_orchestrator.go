package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// Tipos de documento del receptor (tabla AFIP).
const (
	docTypeCUIT            = 80
	docTypeConsumidorFinal = 99
)

// AFIPOrchestrator maneja el ciclo de autorización del comprobante:
// ticket WSAA → FECAESolicitar → persistir CAE.
//
// En AppEnv "dev" no se invoca el WS: la venta queda pendiente y el flujo
// de la aplicación sigue completo sin certificado.
type AFIPOrchestrator struct {
	saleRepo repository.SaleRepository
	wsaa     TicketProvider
	wsfe     CAESubmitter
	cfg      AFIPConfig
}

// NewAFIPOrchestrator construye el orquestador. wsaa/wsfe pueden ser nil en dev.
func NewAFIPOrchestrator(saleRepo repository.SaleRepository, wsaa TicketProvider, wsfe CAESubmitter, cfg AFIPConfig) *AFIPOrchestrator {
	return &AFIPOrchestrator{saleRepo: saleRepo, wsaa: wsaa, wsfe: wsfe, cfg: cfg}
}

// Authorize solicita el CAE para la venta y lo persiste. Si AFIP observa o
// rechaza el comprobante, la venta queda en pendiente y se devuelve el error.
func (o *AFIPOrchestrator) Authorize(ctx context.Context, sale *entity.Sale, client *entity.Client) error {
	if o.cfg.AppEnv == "dev" || o.wsaa == nil || o.wsfe == nil {
		log.Debug().Str("sale_id", sale.ID).Msg("AFIP deshabilitado (dev): venta queda pendiente")
		return nil
	}

	ticket, err := o.wsaa.Ticket(ctx)
	if err != nil {
		return fmt.Errorf("afip: obtener ticket WSAA: %w", err)
	}

	req := &VoucherRequest{
		VoucherType: sale.VoucherType,
		PuntoVenta:  o.cfg.PuntoVenta,
		Number:      sale.Number,
		Date:        sale.Date,
		Total:       sale.Total,
	}
	if cuit := digitsOnly(client.CUIT); cuit != "" {
		req.DocType = docTypeCUIT
		req.DocNumber = cuit
	} else {
		req.DocType = docTypeConsumidorFinal
		req.DocNumber = "0"
	}

	result, err := o.wsfe.RequestCAE(ctx, ticket, req)
	if err != nil {
		return fmt.Errorf("afip: FECAESolicitar: %w", err)
	}
	if !result.Approved {
		return fmt.Errorf("afip: comprobante %d rechazado: %s", sale.Number, result.Observations)
	}

	if err := o.saleRepo.UpdateCAE(sale.ID, result.CAE, result.DueDate); err != nil {
		return fmt.Errorf("afip: persistir CAE: %w", err)
	}
	sale.CAE = result.CAE
	sale.CAEDueDate = result.DueDate
	sale.Status = entity.SaleStatusAuthorized

	log.Info().
		Str("sale_id", sale.ID).
		Int64("number", sale.Number).
		Str("cae", result.CAE).
		Msg("comprobante autorizado por AFIP")
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
