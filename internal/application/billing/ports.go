package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de ventas y catálogo (alta de venta + descuento de stock, atómicos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// AFIPConfig parámetros del emisor para factura electrónica.
type AFIPConfig struct {
	CUIT        string
	PuntoVenta  int
	Environment string // "homo" | "prod"
	AppEnv      string // "dev" no envía al WS
	CertPath    string
	CertKeyPath string
}

// AccessTicket es el ticket de acceso otorgado por el WSAA (token + sign).
type AccessTicket struct {
	Token      string
	Sign       string
	Expiration time.Time
}

// Valid informa si el ticket sigue vigente con un margen de seguridad.
func (t *AccessTicket) Valid() bool {
	return t != nil && time.Until(t.Expiration) > 5*time.Minute
}

// TicketProvider define el puerto de salida hacia el WSAA.
// La implementación concreta firma el TRA y llama al WS; para tests se
// inyecta un mock.
type TicketProvider interface {
	Ticket(ctx context.Context) (*AccessTicket, error)
}

// VoucherRequest datos del comprobante a autorizar (FECAESolicitar).
type VoucherRequest struct {
	VoucherType int             // tipo de comprobante AFIP
	PuntoVenta  int
	Number      int64           // número de comprobante
	DocType     int             // 80 = CUIT, 99 = consumidor final
	DocNumber   string          // CUIT del receptor sin guiones, "0" si final
	Date        time.Time       // fecha del comprobante (AAAAMMDD en el WS)
	Total       decimal.Decimal
}

// CAEResult resultado de la autorización.
type CAEResult struct {
	CAE          string
	DueDate      time.Time
	Approved     bool
	Observations string // mensajes de rechazo u observación de AFIP
}

// CAESubmitter define el puerto de salida hacia el WSFEv1.
type CAESubmitter interface {
	RequestCAE(ctx context.Context, ticket *AccessTicket, req *VoucherRequest) (*CAEResult, error)
}

// SalePDFGenerator genera la representación gráfica del comprobante.
type SalePDFGenerator interface {
	GenerateSalePDF(ctx context.Context, sale *entity.Sale, client *entity.Client, issuerCUIT string) ([]byte, error)
}
