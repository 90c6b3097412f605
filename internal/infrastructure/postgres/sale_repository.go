package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Para Create debe construirse sobre una tx (vía TxRunner): cabecera y
// líneas se insertan en la misma transacción que los decrementos de stock.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, branch_id, sales_rep_id, total_amount, vat_amount, is_credit, credit_settled, status, is_prepared, prepared_by, refund_status, refund_reason, created_at, updated_at`

// Create inserta la cabecera y todas las líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CompanyID, nullIfEmpty(sale.BranchID), sale.SalesRepID,
		sale.TotalAmount, sale.VATAmount, sale.IsCredit, sale.CreditSettled,
		sale.Status, sale.IsPrepared, nullIfEmpty(sale.PreparedBy),
		sale.RefundStatus, nullIfEmpty(sale.RefundReason),
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	lineQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_type, price_per_unit, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range sale.Items {
		item := &sale.Items[i]
		_, err := r.q.Exec(ctx, lineQuery,
			item.ID, sale.ID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitType, item.PricePerUnit, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var branchID, preparedBy, refundReason *string
	err := row.Scan(
		&s.ID, &s.CompanyID, &branchID, &s.SalesRepID, &s.TotalAmount, &s.VATAmount,
		&s.IsCredit, &s.CreditSettled, &s.Status, &s.IsPrepared, &preparedBy,
		&s.RefundStatus, &refundReason, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.BranchID = emptyIfNull(branchID)
	s.PreparedBy = emptyIfNull(preparedBy)
	s.RefundReason = emptyIfNull(refundReason)
	return &s, nil
}

func (r *SaleRepo) loadItems(sale *entity.Sale) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, product_id, product_name, quantity, unit_type, price_per_unit, total
		FROM sale_items WHERE sale_id = $1 ORDER BY id`,
		sale.ID,
	)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.LineItem
		err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitType, &item.PricePerUnit, &item.Total)
		if err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, item)
	}
	return rows.Err()
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range sales {
		if err := r.loadItems(s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

// ListBySalesRep lista las ventas del vendedor con paginación.
func (r *SaleRepo) ListBySalesRep(companyID, salesRepID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE company_id = $1 AND sales_rep_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.list(query, companyID, salesRepID, limit, offset)
}

func (r *SaleRepo) CountBySalesRep(companyID, salesRepID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM sales WHERE company_id = $1 AND sales_rep_id = $2`,
		companyID, salesRepID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

// ListUnpreparedBetween lista ventas sin preparar creadas en [from, to).
func (r *SaleRepo) ListUnpreparedBetween(companyID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE company_id = $1 AND is_prepared = false AND refund_status <> $2
		  AND created_at >= $3 AND created_at < $4
		ORDER BY created_at ASC`
	return r.list(query, companyID, entity.RefundApproved, from, to)
}

func (r *SaleRepo) ListByRefundStatus(companyID, refundStatus string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE company_id = $1 AND refund_status = $2
		ORDER BY updated_at DESC`
	return r.list(query, companyID, refundStatus)
}

func (r *SaleRepo) ListPendingCredit(companyID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE company_id = $1 AND is_credit = true AND credit_settled = false
		ORDER BY created_at ASC`
	return r.list(query, companyID)
}

// UpdatePreparation persiste solo los campos de la máquina de preparación.
func (r *SaleRepo) UpdatePreparation(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE sales SET is_prepared = $2, status = $3, prepared_by = $4, updated_at = $5
		WHERE id = $1`,
		sale.ID, sale.IsPrepared, sale.Status, nullIfEmpty(sale.PreparedBy), sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update preparation: %w", err)
	}
	return nil
}

// UpdateRefund persiste solo los campos de la máquina de reembolso.
func (r *SaleRepo) UpdateRefund(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE sales SET refund_status = $2, refund_reason = $3, updated_at = $4
		WHERE id = $1`,
		sale.ID, sale.RefundStatus, nullIfEmpty(sale.RefundReason), sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update refund: %w", err)
	}
	return nil
}

// UpdateCreditSettled marca la venta a crédito como liquidada.
func (r *SaleRepo) UpdateCreditSettled(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE sales SET credit_settled = $2, updated_at = $3
		WHERE id = $1`,
		sale.ID, sale.CreditSettled, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update credit settled: %w", err)
	}
	return nil
}
