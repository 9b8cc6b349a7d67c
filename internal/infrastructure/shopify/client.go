// Package shopify implementa el cliente del Admin REST API de Shopify
// usado para publicar el catálogo en la tienda online.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	appshopify "github.com/gfarias/comercial-api/internal/application/shopify"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/pkg/config"
)

var _ appshopify.Client = (*RESTClient)(nil)

// RESTClient implementa el puerto shopify.Client sobre el Admin REST API.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewRESTClient construye el cliente. Devuelve nil si la integración no está
// configurada (dominio o token vacíos): el caso de uso lo trata como deshabilitada.
func NewRESTClient(cfg config.ShopifyConfig) *RESTClient {
	if cfg.ShopDomain == "" || cfg.AccessToken == "" {
		return nil
	}
	return &RESTClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://%s/admin/api/%s", cfg.ShopDomain, cfg.APIVersion),
		token:      cfg.AccessToken,
	}
}

// ── Payloads ──────────────────────────────────────────────────────────────────

type collectionsResponse struct {
	CustomCollections []appshopify.Collection `json:"custom_collections"`
}

type productPayload struct {
	Product struct {
		ID       int64  `json:"id,omitempty"`
		Title    string `json:"title"`
		BodyHTML string `json:"body_html,omitempty"`
		Variants []struct {
			SKU               string `json:"sku"`
			Price             string `json:"price"`
			InventoryQuantity int    `json:"inventory_quantity"`
		} `json:"variants"`
	} `json:"product"`
}

type productResponse struct {
	Product struct {
		ID int64 `json:"id"`
	} `json:"product"`
}

type collectPayload struct {
	Collect struct {
		ProductID    int64 `json:"product_id"`
		CollectionID int64 `json:"collection_id"`
	} `json:"collect"`
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// ListCustomCollections devuelve las custom collections de la tienda.
func (c *RESTClient) ListCustomCollections(ctx context.Context) ([]appshopify.Collection, error) {
	var out collectionsResponse
	if err := c.do(ctx, http.MethodGet, "/custom_collections.json", nil, &out); err != nil {
		return nil, err
	}
	return out.CustomCollections, nil
}

// PushProduct crea o actualiza el producto en Shopify y devuelve su ID remoto.
func (c *RESTClient) PushProduct(ctx context.Context, product *entity.Product, collectionID string) (string, error) {
	var payload productPayload
	payload.Product.Title = product.Name
	payload.Product.BodyHTML = product.Description
	payload.Product.Variants = append(payload.Product.Variants, struct {
		SKU               string `json:"sku"`
		Price             string `json:"price"`
		InventoryQuantity int    `json:"inventory_quantity"`
	}{
		SKU:               product.Code,
		Price:             product.RetailPrice.StringFixed(2),
		InventoryQuantity: product.CurrentStock,
	})

	method := http.MethodPost
	path := "/products.json"
	if product.ShopifyProductID != "" {
		remoteID, err := strconv.ParseInt(product.ShopifyProductID, 10, 64)
		if err != nil {
			return "", fmt.Errorf("shopify: ID remoto inválido %q", product.ShopifyProductID)
		}
		payload.Product.ID = remoteID
		method = http.MethodPut
		path = fmt.Sprintf("/products/%d.json", remoteID)
	}

	var out productResponse
	if err := c.do(ctx, method, path, payload, &out); err != nil {
		return "", err
	}
	newID := strconv.FormatInt(out.Product.ID, 10)

	// Asociar a la colección solo en el alta; Shopify ignora collects duplicados.
	if collectionID != "" && product.ShopifyProductID == "" {
		cid, err := strconv.ParseInt(collectionID, 10, 64)
		if err == nil {
			var collect collectPayload
			collect.Collect.ProductID = out.Product.ID
			collect.Collect.CollectionID = cid
			if err := c.do(ctx, http.MethodPost, "/collects.json", collect, nil); err != nil {
				return newID, fmt.Errorf("shopify: asociar a colección: %w", err)
			}
		}
	}
	return newID, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("shopify: serializar payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("shopify: crear request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return fmt.Errorf("shopify: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shopify: %s %s devolvió %d: %s", method, path, resp.StatusCode, string(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("shopify: parsear respuesta: %w", err)
		}
	}
	return nil
}
