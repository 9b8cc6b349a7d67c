package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfarias/comercial-api/internal/application/billing"
	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks de los puertos WSAA / WSFEv1 y del repo de ventas
// ──────────────────────────────────────────────────────────────────────────────

type mockTicketProvider struct {
	ticket *billing.AccessTicket
	err    error
	calls  int
}

func (m *mockTicketProvider) Ticket(_ context.Context) (*billing.AccessTicket, error) {
	m.calls++
	return m.ticket, m.err
}

type mockCAESubmitter struct {
	result  *billing.CAEResult
	err     error
	lastReq *billing.VoucherRequest
}

func (m *mockCAESubmitter) RequestCAE(_ context.Context, _ *billing.AccessTicket, req *billing.VoucherRequest) (*billing.CAEResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// fakeSaleRepo implementa solo lo que el orquestador necesita; el resto
// de los métodos del repo no se invocan en estos tests.
type fakeSaleRepo struct {
	caeSaleID  string
	caeValue   string
	caeDueDate time.Time
	updateErr  error
}

func (f *fakeSaleRepo) Create(*entity.Sale) error             { return nil }
func (f *fakeSaleRepo) GetByID(string) (*entity.Sale, error)  { return nil, nil }
func (f *fakeSaleRepo) List(int, int) ([]*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) ListAll() ([]*entity.Sale, error)      { return nil, nil }
func (f *fakeSaleRepo) NextNumber(int) (int64, error)         { return 1, nil }
func (f *fakeSaleRepo) UpdateStatus(string, string) error     { return nil }

func (f *fakeSaleRepo) UpdateCAE(id, cae string, dueDate time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.caeSaleID = id
	f.caeValue = cae
	f.caeDueDate = dueDate
	return nil
}

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:          "sale-1",
		Number:      42,
		VoucherType: entity.VoucherTypeFacturaB,
		Date:        time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Total:       decimal.NewFromFloat(1210.00),
		Status:      entity.SaleStatusPending,
	}
}

func testTicket() *billing.AccessTicket {
	return &billing.AccessTicket{
		Token:      "token",
		Sign:       "sign",
		Expiration: time.Now().Add(12 * time.Hour),
	}
}

func testCfg() billing.AFIPConfig {
	return billing.AFIPConfig{
		CUIT:        "20-12345678-6",
		PuntoVenta:  3,
		Environment: "homo",
		AppEnv:      "homo",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Authorize
// ──────────────────────────────────────────────────────────────────────────────

// Aprobación: el CAE se persiste y la venta pasa a autorizada en memoria.
func TestAuthorize_Aprobado_PersisteCAE(t *testing.T) {
	repo := &fakeSaleRepo{}
	due := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	wsfe := &mockCAESubmitter{result: &billing.CAEResult{
		CAE:      "71234567890123",
		DueDate:  due,
		Approved: true,
	}}
	orch := billing.NewAFIPOrchestrator(repo, &mockTicketProvider{ticket: testTicket()}, wsfe, testCfg())

	sale := testSale()
	client := &entity.Client{ID: "c1", Name: "Cliente SA", CUIT: "30-71234567-9"}
	require.NoError(t, orch.Authorize(context.Background(), sale, client))

	assert.Equal(t, "71234567890123", repo.caeValue, "el CAE debe persistirse en el repo")
	assert.Equal(t, "sale-1", repo.caeSaleID)
	assert.Equal(t, "71234567890123", sale.CAE)
	assert.Equal(t, due, sale.CAEDueDate)
	assert.Equal(t, entity.SaleStatusAuthorized, sale.Status)
}

// El receptor con CUIT viaja como doc tipo 80 y sin guiones.
func TestAuthorize_ReceptorConCUIT(t *testing.T) {
	wsfe := &mockCAESubmitter{result: &billing.CAEResult{CAE: "1", Approved: true}}
	orch := billing.NewAFIPOrchestrator(&fakeSaleRepo{}, &mockTicketProvider{ticket: testTicket()}, wsfe, testCfg())

	client := &entity.Client{ID: "c1", Name: "Cliente SA", CUIT: "30-71234567-9"}
	require.NoError(t, orch.Authorize(context.Background(), testSale(), client))

	require.NotNil(t, wsfe.lastReq)
	assert.Equal(t, 80, wsfe.lastReq.DocType)
	assert.Equal(t, "30712345679", wsfe.lastReq.DocNumber, "el CUIT debe viajar sin guiones")
	assert.Equal(t, 3, wsfe.lastReq.PuntoVenta)
	assert.Equal(t, int64(42), wsfe.lastReq.Number)
}

// Sin CUIT el receptor es consumidor final (doc 99, número 0).
func TestAuthorize_ConsumidorFinal(t *testing.T) {
	wsfe := &mockCAESubmitter{result: &billing.CAEResult{CAE: "1", Approved: true}}
	orch := billing.NewAFIPOrchestrator(&fakeSaleRepo{}, &mockTicketProvider{ticket: testTicket()}, wsfe, testCfg())

	client := &entity.Client{ID: "c1", Name: "Consumidor"}
	require.NoError(t, orch.Authorize(context.Background(), testSale(), client))

	require.NotNil(t, wsfe.lastReq)
	assert.Equal(t, 99, wsfe.lastReq.DocType)
	assert.Equal(t, "0", wsfe.lastReq.DocNumber)
}

// Rechazo de AFIP: se devuelve el error con las observaciones y la venta
// no cambia de estado.
func TestAuthorize_Rechazado_DevuelveObservaciones(t *testing.T) {
	repo := &fakeSaleRepo{}
	wsfe := &mockCAESubmitter{result: &billing.CAEResult{
		Approved:     false,
		Observations: "[10016] número de comprobante ya utilizado",
	}}
	orch := billing.NewAFIPOrchestrator(repo, &mockTicketProvider{ticket: testTicket()}, wsfe, testCfg())

	sale := testSale()
	err := orch.Authorize(context.Background(), sale, &entity.Client{ID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10016")
	assert.Empty(t, repo.caeValue, "un rechazo no debe persistir CAE")
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
}

// Falla del WSAA: el error se propaga y no se llega a FECAESolicitar.
func TestAuthorize_WSAAFalla_Propaga(t *testing.T) {
	wsfe := &mockCAESubmitter{result: &billing.CAEResult{CAE: "1", Approved: true}}
	orch := billing.NewAFIPOrchestrator(&fakeSaleRepo{},
		&mockTicketProvider{err: errors.New("certificado vencido")}, wsfe, testCfg())

	err := orch.Authorize(context.Background(), testSale(), &entity.Client{ID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WSAA")
	assert.Nil(t, wsfe.lastReq, "si no hay ticket no debe invocarse el WSFE")
}

// En dev (o sin clientes WS inyectados) Authorize es no-op: la venta queda
// pendiente y no hay error.
func TestAuthorize_ModoDev_NoOp(t *testing.T) {
	cfg := testCfg()
	cfg.AppEnv = "dev"
	wsaa := &mockTicketProvider{ticket: testTicket()}
	orch := billing.NewAFIPOrchestrator(&fakeSaleRepo{}, wsaa, &mockCAESubmitter{}, cfg)

	sale := testSale()
	require.NoError(t, orch.Authorize(context.Background(), sale, &entity.Client{ID: "c1"}))
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Zero(t, wsaa.calls, "en dev no debe pedirse ticket al WSAA")
}
