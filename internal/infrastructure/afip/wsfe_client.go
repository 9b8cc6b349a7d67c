// Cliente del WSFEv1 (factura electrónica AFIP, régimen RG 4291).
// Implementa la operación FECAESolicitar: autoriza un comprobante y devuelve
// el CAE con su fecha de vencimiento.

package afip

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/application/billing"
	"github.com/gfarias/comercial-api/internal/domain/entity"
)

const (
	wsfeURLHomo = "https://wswhomo.afip.gov.ar/wsfev1/service.asmx"
	wsfeURLProd = "https://servicios1.afip.gov.ar/wsfev1/service.asmx"

	wsfeNS         = "http://ar.gov.afip.dif.FEV1/"
	wsfeSOAPAction = "http://ar.gov.afip.dif.FEV1/FECAESolicitar"

	// Alícuota general de IVA (21%) usada para discriminar el neto en Factura B.
	ivaRateID = 5
)

var ivaDivisor = decimal.NewFromFloat(1.21)

var _ billing.CAESubmitter = (*WSFEClient)(nil)

// WSFEClient implementa billing.CAESubmitter usando el WS SOAP de AFIP.
type WSFEClient struct {
	httpClient  *http.Client
	cuit        string // CUIT del emisor, solo dígitos
	environment string // "homo" | "prod"
}

// NewWSFEClient construye el cliente. El WS puede tardar varios segundos;
// el timeout es generoso.
func NewWSFEClient(cuit, environment string) *WSFEClient {
	return &WSFEClient{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		cuit:        cuit,
		environment: environment,
	}
}

// ── Estructuras SOAP ──────────────────────────────────────────────────────────

type wsfeEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	XmlnsS  string   `xml:"xmlns:soapenv,attr"`
	XmlnsA  string   `xml:"xmlns:ar,attr"`
	Body    wsfeBody `xml:"soapenv:Body"`
}

type wsfeBody struct {
	Request feCAESolicitar `xml:"ar:FECAESolicitar"`
}

type feCAESolicitar struct {
	Auth     feAuth   `xml:"ar:Auth"`
	FeCAEReq feCAEReq `xml:"ar:FeCAEReq"`
}

type feAuth struct {
	Token string `xml:"ar:Token"`
	Sign  string `xml:"ar:Sign"`
	Cuit  string `xml:"ar:Cuit"`
}

type feCAEReq struct {
	FeCabReq feCabReq `xml:"ar:FeCabReq"`
	FeDetReq feDetReq `xml:"ar:FeDetReq"`
}

type feCabReq struct {
	CantReg  int `xml:"ar:CantReg"`
	PtoVta   int `xml:"ar:PtoVta"`
	CbteTipo int `xml:"ar:CbteTipo"`
}

type feDetReq struct {
	Detail feCAEDetRequest `xml:"ar:FECAEDetRequest"`
}

type feCAEDetRequest struct {
	Concepto   int    `xml:"ar:Concepto"` // 1 = productos
	DocTipo    int    `xml:"ar:DocTipo"`
	DocNro     string `xml:"ar:DocNro"`
	CbteDesde  int64  `xml:"ar:CbteDesde"`
	CbteHasta  int64  `xml:"ar:CbteHasta"`
	CbteFch    string `xml:"ar:CbteFch"` // AAAAMMDD
	ImpTotal   string `xml:"ar:ImpTotal"`
	ImpTotConc string `xml:"ar:ImpTotConc"`
	ImpNeto    string `xml:"ar:ImpNeto"`
	ImpOpEx    string `xml:"ar:ImpOpEx"`
	ImpTrib    string `xml:"ar:ImpTrib"`
	ImpIVA     string `xml:"ar:ImpIVA"`
	MonID      string `xml:"ar:MonId"`
	MonCotiz   string `xml:"ar:MonCotiz"`
	IVA        *feIVA `xml:"ar:Iva,omitempty"`
}

type feIVA struct {
	AlicIva []feAlicIva `xml:"ar:AlicIva"`
}

type feAlicIva struct {
	ID      int    `xml:"ar:Id"`
	BaseImp string `xml:"ar:BaseImp"`
	Importe string `xml:"ar:Importe"`
}

// ── Estructuras de respuesta ──────────────────────────────────────────────────

type wsfeResponseEnvelope struct {
	Body struct {
		Response struct {
			Result feCAESolicitarResult `xml:"FECAESolicitarResult"`
		} `xml:"FECAESolicitarResponse"`
		Fault *struct {
			FaultCode   string `xml:"faultcode"`
			FaultString string `xml:"faultstring"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

type feCAESolicitarResult struct {
	FeCabResp struct {
		Resultado string `xml:"Resultado"` // A = aprobado, R = rechazado, P = parcial
	} `xml:"FeCabResp"`
	FeDetResp struct {
		Detail struct {
			Resultado     string `xml:"Resultado"`
			CAE           string `xml:"CAE"`
			CAEFchVto     string `xml:"CAEFchVto"` // AAAAMMDD
			Observaciones struct {
				Obs []struct {
					Code int    `xml:"Code"`
					Msg  string `xml:"Msg"`
				} `xml:"Obs"`
			} `xml:"Observaciones"`
		} `xml:"FECAEDetResponse"`
	} `xml:"FeDetResp"`
	Errors struct {
		Err []struct {
			Code int    `xml:"Code"`
			Msg  string `xml:"Msg"`
		} `xml:"Err"`
	} `xml:"Errors"`
}

// RequestCAE solicita la autorización del comprobante (FECAESolicitar).
func (c *WSFEClient) RequestCAE(ctx context.Context, ticket *billing.AccessTicket, req *billing.VoucherRequest) (*billing.CAEResult, error) {
	detail := buildDetail(req)

	envelope := wsfeEnvelope{
		XmlnsS: soapNS,
		XmlnsA: wsfeNS,
		Body: wsfeBody{Request: feCAESolicitar{
			Auth: feAuth{Token: ticket.Token, Sign: ticket.Sign, Cuit: c.cuit},
			FeCAEReq: feCAEReq{
				FeCabReq: feCabReq{CantReg: 1, PtoVta: req.PuntoVenta, CbteTipo: req.VoucherType},
				FeDetReq: feDetReq{Detail: detail},
			},
		}},
	}
	payload, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("wsfe: serializar envelope: %w", err)
	}

	soapURL := wsfeURLHomo
	if c.environment == "prod" {
		soapURL = wsfeURLProd
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, soapURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("wsfe: crear request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", wsfeSOAPAction)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("wsfe: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("wsfe: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("wsfe: leer respuesta: %w", err)
	}
	return parseCAEResponse(rawBody)
}

// buildDetail arma el detalle del comprobante. Para Factura B se discrimina
// el IVA 21% incluido en el total; Factura C no lleva IVA.
func buildDetail(req *billing.VoucherRequest) feCAEDetRequest {
	total := req.Total.Round(2)
	detail := feCAEDetRequest{
		Concepto:   1,
		DocTipo:    req.DocType,
		DocNro:     req.DocNumber,
		CbteDesde:  req.Number,
		CbteHasta:  req.Number,
		CbteFch:    req.Date.Format("20060102"),
		ImpTotal:   total.StringFixed(2),
		ImpTotConc: "0.00",
		ImpOpEx:    "0.00",
		ImpTrib:    "0.00",
		MonID:      "PES",
		MonCotiz:   "1.000000",
	}

	if req.VoucherType == entity.VoucherTypeFacturaC {
		detail.ImpNeto = total.StringFixed(2)
		detail.ImpIVA = "0.00"
		return detail
	}

	neto := total.Div(ivaDivisor).Round(2)
	iva := total.Sub(neto)
	detail.ImpNeto = neto.StringFixed(2)
	detail.ImpIVA = iva.StringFixed(2)
	detail.IVA = &feIVA{AlicIva: []feAlicIva{{
		ID:      ivaRateID,
		BaseImp: neto.StringFixed(2),
		Importe: iva.StringFixed(2),
	}}}
	return detail
}

// parseCAEResponse desempaqueta la respuesta y consolida observaciones y errores.
func parseCAEResponse(rawBody []byte) (*billing.CAEResult, error) {
	var envResp wsfeResponseEnvelope
	if err := xml.Unmarshal(rawBody, &envResp); err != nil {
		return nil, fmt.Errorf("wsfe: parsear respuesta SOAP: %w", err)
	}
	if envResp.Body.Fault != nil {
		return nil, fmt.Errorf("wsfe: SOAP Fault [%s]: %s", envResp.Body.Fault.FaultCode, envResp.Body.Fault.FaultString)
	}

	result := envResp.Body.Response.Result
	detail := result.FeDetResp.Detail

	var msgs []string
	for _, obs := range detail.Observaciones.Obs {
		msgs = append(msgs, fmt.Sprintf("[%d] %s", obs.Code, obs.Msg))
	}
	for _, e := range result.Errors.Err {
		msgs = append(msgs, fmt.Sprintf("[%d] %s", e.Code, e.Msg))
	}

	out := &billing.CAEResult{
		CAE:          detail.CAE,
		Approved:     detail.Resultado == "A",
		Observations: strings.Join(msgs, "; "),
	}
	if detail.CAEFchVto != "" {
		if t, err := time.Parse("20060102", detail.CAEFchVto); err == nil {
			out.DueDate = t
		}
	}
	return out, nil
}
