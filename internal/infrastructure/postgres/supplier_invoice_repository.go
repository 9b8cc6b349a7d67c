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

var _ repository.SupplierInvoiceRepository = (*SupplierInvoiceRepo)(nil)

// SupplierInvoiceRepo implementación del puerto SupplierInvoiceRepository sobre PostgreSQL.
type SupplierInvoiceRepo struct {
	q Querier
}

// NewSupplierInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierInvoiceRepository(q Querier) *SupplierInvoiceRepo {
	return &SupplierInvoiceRepo{q: q}
}

// Create persiste una factura de compra.
func (r *SupplierInvoiceRepo) Create(invoice *entity.SupplierInvoice) error {
	query := `
		INSERT INTO supplier_invoices (id, supplier_id, number, date, due_date, total, paid, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.SupplierID, invoice.Number, invoice.Date,
		nullIfZeroTime(invoice.DueDate), invoice.Total, invoice.Paid, invoice.Notes, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de compra por ID.
func (r *SupplierInvoiceRepo) GetByID(id string) (*entity.SupplierInvoice, error) {
	query := `
		SELECT id, supplier_id, number, date, due_date, total, paid, notes, created_at
		FROM supplier_invoices WHERE id = $1`
	inv, err := scanSupplierInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier invoice: %w", err)
	}
	return inv, nil
}

func scanSupplierInvoice(row pgx.Row) (*entity.SupplierInvoice, error) {
	var inv entity.SupplierInvoice
	var dueDate *time.Time
	err := row.Scan(
		&inv.ID, &inv.SupplierID, &inv.Number, &inv.Date, &dueDate,
		&inv.Total, &inv.Paid, &inv.Notes, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate != nil {
		inv.DueDate = *dueDate
	}
	return &inv, nil
}

// List lista facturas de compra con paginación, de la más reciente a la más vieja.
func (r *SupplierInvoiceRepo) List(limit, offset int) ([]*entity.SupplierInvoice, error) {
	query := `
		SELECT id, supplier_id, number, date, due_date, total, paid, notes, created_at
		FROM supplier_invoices ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplier invoices: %w", err)
	}
	defer rows.Close()
	return scanSupplierInvoices(rows)
}

// ListAll devuelve todas las facturas de compra (para derivaciones en memoria).
func (r *SupplierInvoiceRepo) ListAll() ([]*entity.SupplierInvoice, error) {
	query := `
		SELECT id, supplier_id, number, date, due_date, total, paid, notes, created_at
		FROM supplier_invoices ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all supplier invoices: %w", err)
	}
	defer rows.Close()
	return scanSupplierInvoices(rows)
}

func scanSupplierInvoices(rows pgx.Rows) ([]*entity.SupplierInvoice, error) {
	var list []*entity.SupplierInvoice
	for rows.Next() {
		inv, err := scanSupplierInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// MarkPaid marca una factura de compra como pagada.
func (r *SupplierInvoiceRepo) MarkPaid(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE supplier_invoices SET paid = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark supplier invoice paid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura de compra por ID.
func (r *SupplierInvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM supplier_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier invoice: %w", err)
	}
	return nil
}
