package dto

import "github.com/shopspring/decimal"

// ImportRowDTO es una fila de la vista previa de importación de precios.
// Los precios derivados son editables por el operador antes de confirmar;
// el commit recibe exactamente estas filas de vuelta.
type ImportRowDTO struct {
	ProductCode       string          `json:"product_code"`
	ProductName       string          `json:"product_name"`
	NewPurchaseCost   decimal.Decimal `json:"new_purchase_cost"`
	NewWholesalePrice decimal.Decimal `json:"new_wholesale_price"`
	NewRetailPrice    decimal.Decimal `json:"new_retail_price"`
	Found             bool            `json:"found"`
	ProductID         string          `json:"product_id,omitempty"`
}

// ImportPreviewResponse resultado del parseo del CSV: las filas propuestas y
// el conteo "N de M encontrados" que se muestra al operador.
type ImportPreviewResponse struct {
	Rows      []ImportRowDTO  `json:"rows"`
	TotalRows int             `json:"total_rows"`
	FoundRows int             `json:"found_rows"`
	Wholesale decimal.Decimal `json:"wholesale_margin"`
	Retail    decimal.Decimal `json:"retail_margin"`
}

// ImportCommitRequest filas aprobadas (posiblemente editadas) a aplicar.
type ImportCommitRequest struct {
	Rows []ImportRowDTO `json:"rows" validate:"required"`
}

// ImportCommitResponse resultado del commit secuencial. Si falló una
// actualización, Applied refleja las que quedaron aplicadas (sin reversa) y
// FailedCode identifica la fila que cortó la cola.
type ImportCommitResponse struct {
	Attempted  int    `json:"attempted"`
	Applied    int    `json:"applied"`
	FailedCode string `json:"failed_code,omitempty"`
	Message    string `json:"message"`
}

// MarginConfigResponse salida de GET /marginConfig.
type MarginConfigResponse struct {
	WholesaleMargin decimal.Decimal `json:"wholesaleMargin"`
	RetailMargin    decimal.Decimal `json:"retailMargin"`
}

// UpdateMarginConfigRequest entrada para actualizar los márgenes.
type UpdateMarginConfigRequest struct {
	WholesaleMargin decimal.Decimal `json:"wholesaleMargin" validate:"required"`
	RetailMargin    decimal.Decimal `json:"retailMargin" validate:"required"`
}
