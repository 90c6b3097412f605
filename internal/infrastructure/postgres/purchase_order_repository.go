package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL. Para la recepción se construye sobre la tx del TxRunner.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, company_id, branch_id, supplier, total_cost, notes, status, received_at, created_by, created_at, updated_at`

func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.CompanyID, nullIfEmpty(po.BranchID), po.Supplier, po.TotalCost,
		po.Notes, po.Status, po.ReceivedAt, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range po.Items {
		item := &po.Items[i]
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, po.ID, item.ProductID, item.Quantity, item.UnitCost)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var branchID *string
	err := row.Scan(
		&po.ID, &po.CompanyID, &branchID, &po.Supplier, &po.TotalCost, &po.Notes,
		&po.Status, &po.ReceivedAt, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.BranchID = emptyIfNull(branchID)
	return &po, nil
}

func (r *PurchaseOrderRepo) loadItems(po *entity.PurchaseOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, purchase_order_id, product_id, quantity, unit_cost
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`,
		po.ID,
	)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.POItem
		err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.ProductID,
			&item.Quantity, &item.UnitCost)
		if err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, item)
	}
	return rows.Err()
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(po); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range orders {
		if err := r.loadItems(po); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus persiste el cambio de estado y la fecha de recepción.
func (r *PurchaseOrderRepo) UpdateStatus(po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE purchase_orders SET status = $2, received_at = $3, updated_at = $4
		WHERE id = $1`,
		po.ID, po.Status, po.ReceivedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}
