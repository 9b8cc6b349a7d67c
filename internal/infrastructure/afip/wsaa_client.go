// Cliente del WSAA (WebService de Autenticación y Autorización de AFIP).
// Flujo: armar el TRA (loginTicketRequest), firmarlo como CMS/PKCS#7 con el
// certificado del contribuyente y enviarlo a la operación loginCms. El WSAA
// responde un loginTicketResponse con token + sign válidos por ~12 horas.

package afip

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
	"go.mozilla.org/pkcs7"

	"github.com/gfarias/comercial-api/internal/application/billing"
)

const (
	wsaaURLHomo = "https://wsaahomo.afip.gov.ar/ws/services/LoginCms"
	wsaaURLProd = "https://wsaa.afip.gov.ar/ws/services/LoginCms"

	wsaaService = "wsfe" // servicio destino del ticket

	soapNS     = "http://schemas.xmlsoap.org/soap/envelope/"
	wsaaSOAPNS = "http://wsaa.view.sua.dvadac.desein.afip.gov"
)

var _ billing.TicketProvider = (*WSAAClient)(nil)

// WSAAClient implementa billing.TicketProvider. Cachea el ticket vigente:
// AFIP rechaza pedidos de TA nuevos mientras el anterior sigue válido.
type WSAAClient struct {
	httpClient  *http.Client
	cert        tls.Certificate
	environment string // "homo" | "prod"

	mu     sync.Mutex
	ticket *billing.AccessTicket
}

// NewWSAAClient construye el cliente con el certificado ya cargado (ver LoadCertFromPEM).
func NewWSAAClient(cert tls.Certificate, environment string) *WSAAClient {
	return &WSAAClient{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		cert:        cert,
		environment: environment,
	}
}

// Ticket devuelve un ticket de acceso vigente, pidiendo uno nuevo al WSAA si hace falta.
func (c *WSAAClient) Ticket(ctx context.Context) (*billing.AccessTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticket.Valid() {
		return c.ticket, nil
	}
	ticket, err := c.login(ctx)
	if err != nil {
		return nil, err
	}
	c.ticket = ticket
	return ticket, nil
}

func (c *WSAAClient) login(ctx context.Context) (*billing.AccessTicket, error) {
	tra, err := buildTRA(wsaaService, time.Now())
	if err != nil {
		return nil, err
	}
	cms, err := c.signCMS(tra)
	if err != nil {
		return nil, err
	}
	return c.loginCms(ctx, cms)
}

// buildTRA arma el loginTicketRequest canonicalizado (C14N) listo para firmar.
func buildTRA(service string, now time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("loginTicketRequest")
	root.CreateAttr("version", "1.0")

	header := root.CreateElement("header")
	header.CreateElement("uniqueId").SetText(strconv.FormatInt(rand.Int63n(1<<31), 10))
	header.CreateElement("generationTime").SetText(now.Add(-10 * time.Minute).Format(time.RFC3339))
	header.CreateElement("expirationTime").SetText(now.Add(10 * time.Minute).Format(time.RFC3339))
	root.CreateElement("service").SetText(service)

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("wsaa: serializar TRA: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		// El TRA sin canonicalizar también es XML válido para el WSAA.
		return raw, nil
	}
	return canonical, nil
}

// signCMS firma el TRA como CMS/PKCS#7 (SignedData) y lo devuelve en Base64.
func (c *WSAAClient) signCMS(tra []byte) (string, error) {
	if len(c.cert.Certificate) == 0 {
		return "", fmt.Errorf("wsaa: certificado no configurado")
	}
	priv, ok := c.cert.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("wsaa: el certificado debe incluir llave privada RSA")
	}
	x509Cert, err := x509.ParseCertificate(c.cert.Certificate[0])
	if err != nil {
		return "", fmt.Errorf("wsaa: parsear certificado: %w", err)
	}

	signed, err := pkcs7.NewSignedData(tra)
	if err != nil {
		return "", fmt.Errorf("wsaa: armar SignedData: %w", err)
	}
	if err := signed.AddSigner(x509Cert, priv, pkcs7.SignerInfoConfig{}); err != nil {
		return "", fmt.Errorf("wsaa: firmar TRA: %w", err)
	}
	der, err := signed.Finish()
	if err != nil {
		return "", fmt.Errorf("wsaa: serializar CMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// ── SOAP loginCms ─────────────────────────────────────────────────────────────

type loginCmsEnvelope struct {
	XMLName xml.Name     `xml:"soapenv:Envelope"`
	XmlnsS  string       `xml:"xmlns:soapenv,attr"`
	XmlnsW  string       `xml:"xmlns:wsaa,attr"`
	Body    loginCmsBody `xml:"soapenv:Body"`
}

type loginCmsBody struct {
	LoginCms loginCmsCall `xml:"wsaa:loginCms"`
}

type loginCmsCall struct {
	In0 string `xml:"wsaa:in0"` // CMS en Base64
}

type loginCmsResponseEnvelope struct {
	Body struct {
		Response struct {
			Return string `xml:"loginCmsReturn"` // loginTicketResponse como XML escapado
		} `xml:"loginCmsResponse"`
		Fault *struct {
			FaultCode   string `xml:"faultcode"`
			FaultString string `xml:"faultstring"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

func (c *WSAAClient) loginCms(ctx context.Context, cmsB64 string) (*billing.AccessTicket, error) {
	soapURL := wsaaURLHomo
	if c.environment == "prod" {
		soapURL = wsaaURLProd
	}

	envelope := loginCmsEnvelope{
		XmlnsS: soapNS,
		XmlnsW: wsaaSOAPNS,
		Body:   loginCmsBody{LoginCms: loginCmsCall{In0: cmsB64}},
	}
	payload, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("wsaa: serializar envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, soapURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("wsaa: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("wsaa: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("wsaa: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("wsaa: leer respuesta: %w", err)
	}

	var envResp loginCmsResponseEnvelope
	if err := xml.Unmarshal(rawBody, &envResp); err != nil {
		return nil, fmt.Errorf("wsaa: parsear respuesta SOAP: %w", err)
	}
	if envResp.Body.Fault != nil {
		return nil, fmt.Errorf("wsaa: SOAP Fault [%s]: %s", envResp.Body.Fault.FaultCode, envResp.Body.Fault.FaultString)
	}
	return parseLoginTicketResponse(envResp.Body.Response.Return)
}

// parseLoginTicketResponse extrae token, sign y expiración del XML devuelto por el WSAA.
func parseLoginTicketResponse(xmlText string) (*billing.AccessTicket, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, fmt.Errorf("wsaa: parsear loginTicketResponse: %w", err)
	}
	token := doc.FindElement("//credentials/token")
	sign := doc.FindElement("//credentials/sign")
	expiration := doc.FindElement("//header/expirationTime")
	if token == nil || sign == nil {
		return nil, fmt.Errorf("wsaa: loginTicketResponse sin credenciales")
	}

	ticket := &billing.AccessTicket{
		Token: token.Text(),
		Sign:  sign.Text(),
	}
	if expiration != nil {
		if t, err := time.Parse(time.RFC3339, expiration.Text()); err == nil {
			ticket.Expiration = t
		}
	}
	if ticket.Expiration.IsZero() {
		// Sin expiración parseable: asumir la vigencia estándar de 12 horas.
		ticket.Expiration = time.Now().Add(12 * time.Hour)
	}
	return ticket, nil
}
