package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, branch_id, name, category, size, unit_type, shelf_location, barcode, price, current_stock, min_stock_level, is_active, created_at, updated_at`

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, nullIfEmpty(product.BranchID), product.Name,
		product.Category, product.Size, product.UnitType, product.ShelfLocation,
		nullIfEmpty(product.Barcode), product.Price, product.CurrentStock,
		product.MinStockLevel, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var branchID, barcode *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &branchID, &p.Name, &p.Category, &p.Size, &p.UnitType,
		&p.ShelfLocation, &barcode, &p.Price, &p.CurrentStock, &p.MinStockLevel,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.BranchID = emptyIfNull(branchID)
	p.Barcode = emptyIfNull(barcode)
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por empresa y código de barras.
func (r *ProductRepo) GetByBarcode(companyID, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND barcode = $2`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, companyID, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// Update actualiza datos de catálogo. current_stock no aparece en el SET:
// el contador solo se mueve vía DecrementStock/IncrementStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, shelf_location = $3, price = $4, min_stock_level = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.ShelfLocation, product.Price,
		product.MinStockLevel, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CountByCompany cuenta los productos de la empresa.
func (r *ProductRepo) CountByCompany(companyID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE company_id = $1`, companyID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// DecrementStock aplica el decremento con piso en un solo UPDATE condicional:
// lectura-modificación-escritura atómica, único punto de serialización entre
// ventas concurrentes del mismo producto. Si la guarda current_stock >= qty
// no se cumple, no se aplica nada y se reporta disponible/solicitado.
func (r *ProductRepo) DecrementStock(productID string, qty int64) (int64, error) {
	var remaining int64
	err := r.q.QueryRow(context.Background(), `
		UPDATE products
		SET current_stock = current_stock - $2, updated_at = now()
		WHERE id = $1 AND current_stock >= $2
		RETURNING current_stock`,
		productID, qty,
	).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}

	// La guarda falló: distinguir producto inexistente de stock insuficiente.
	var name string
	var available int64
	err = r.q.QueryRow(context.Background(),
		`SELECT name, current_stock FROM products WHERE id = $1`, productID,
	).Scan(&name, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return 0, &domain.InsufficientStockError{
		ProductID:   productID,
		ProductName: name,
		Available:   available,
		Requested:   qty,
	}
}

// IncrementStock suma qty al contador (recepciones de compra).
func (r *ProductRepo) IncrementStock(productID string, qty int64) (int64, error) {
	var remaining int64
	err := r.q.QueryRow(context.Background(), `
		UPDATE products
		SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING current_stock`,
		productID, qty,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return remaining, nil
}
