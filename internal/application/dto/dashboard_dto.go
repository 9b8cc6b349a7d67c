package dto

import "github.com/shopspring/decimal"

// TopProductDTO fila del ranking de artículos más vendidos del mes.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO resumen financiero del día y del mes en curso.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal `json:"today_sales"`
	TodayMargin   decimal.Decimal `json:"today_margin"`
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal `json:"monthly_margin"`
	TopProducts   []TopProductDTO `json:"top_products"`
	DateLabel     string          `json:"date_label"`
}
