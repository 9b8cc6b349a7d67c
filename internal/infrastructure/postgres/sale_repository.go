package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta y sus renglones.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, punto_venta, number, client_id, date, total, payment_method,
			voucher_type, status, cae, cae_due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.PuntoVenta, sale.Number, sale.ClientID, sale.Date, sale.Total,
		sale.PaymentMethod, sale.VoucherType, sale.Status,
		nullIfEmpty(sale.CAE), nullIfZeroTime(sale.CAEDueDate), sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range sale.Items {
		it := &sale.Items[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_items (sale_id, line, product_id, code, name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sale.ID, i+1, it.ProductID, it.Code, it.Name, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta completa (con renglones) por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, punto_venta, number, client_id, date, total, payment_method,
		       voucher_type, status, cae, cae_due_date, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var cae *string
	var caeDue *time.Time
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PuntoVenta, &s.Number, &s.ClientID, &s.Date, &s.Total, &s.PaymentMethod,
		&s.VoucherType, &s.Status, &cae, &caeDue, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if cae != nil {
		s.CAE = *cae
	}
	if caeDue != nil {
		s.CAEDueDate = *caeDue
	}
	items, err := r.loadItems(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *SaleRepo) loadItems(saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, code, name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY line`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.Code, &it.Name, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List lista ventas (sin renglones) con paginación, de la más reciente a la más vieja.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, punto_venta, number, client_id, date, total, payment_method,
		       voucher_type, status, cae, cae_due_date, created_at
		FROM sales ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListAll devuelve todas las ventas con sus renglones (para derivaciones en memoria).
func (r *SaleRepo) ListAll() ([]*entity.Sale, error) {
	query := `
		SELECT id, punto_venta, number, client_id, date, total, payment_method,
		       voucher_type, status, cae, cae_due_date, created_at
		FROM sales ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all sales: %w", err)
	}
	list, err := scanSales(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	// Cargar renglones después de cerrar el cursor: dentro de una tx hay una
	// sola conexión y no se pueden solapar queries.
	for _, s := range list {
		items, err := r.loadItems(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var cae *string
		var caeDue *time.Time
		if err := rows.Scan(
			&s.ID, &s.PuntoVenta, &s.Number, &s.ClientID, &s.Date, &s.Total, &s.PaymentMethod,
			&s.VoucherType, &s.Status, &cae, &caeDue, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if cae != nil {
			s.CAE = *cae
		}
		if caeDue != nil {
			s.CAEDueDate = *caeDue
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// NextNumber devuelve el próximo número de comprobante para el punto de venta.
// Debe llamarse dentro de la transacción de alta para evitar huecos por carrera.
func (r *SaleRepo) NextNumber(puntoVenta int) (int64, error) {
	var max int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(number), 0) FROM sales WHERE punto_venta = $1`, puntoVenta,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next sale number: %w", err)
	}
	return max + 1, nil
}

// UpdateCAE guarda el CAE otorgado por AFIP y marca la venta autorizada.
func (r *SaleRepo) UpdateCAE(saleID, cae string, dueDate time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET cae = $2, cae_due_date = $3, status = $4 WHERE id = $1`,
		saleID, cae, dueDate, entity.SaleStatusAuthorized,
	)
	if err != nil {
		return fmt.Errorf("update sale CAE: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la venta.
func (r *SaleRepo) UpdateStatus(saleID, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, saleID, status,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
