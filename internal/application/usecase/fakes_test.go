package usecase_test

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de catálogo, compras, notificaciones
// y auditoría.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(companyID, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	existing, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := existing.CurrentStock
	cp := *p
	cp.CurrentStock = stock
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCompany(companyID string) (int, error) {
	list, _ := r.ListByCompany(companyID, 0, 0)
	return len(list), nil
}

func (r *fakeProductRepo) DecrementStock(productID string, qty int64) (int64, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.CurrentStock < qty {
		return 0, &domain.InsufficientStockError{
			ProductID: p.ID, ProductName: p.Name,
			Available: p.CurrentStock, Requested: qty,
		}
	}
	p.CurrentStock -= qty
	return p.CurrentStock, nil
}

func (r *fakeProductRepo) IncrementStock(productID string, qty int64) (int64, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.CurrentStock += qty
	return p.CurrentStock, nil
}

type fakePORepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newFakePORepo(orders ...*entity.PurchaseOrder) *fakePORepo {
	r := &fakePORepo{orders: make(map[string]*entity.PurchaseOrder)}
	for _, po := range orders {
		cp := *po
		r.orders[po.ID] = &cp
	}
	return r
}

func (r *fakePORepo) Create(po *entity.PurchaseOrder) error {
	cp := *po
	r.orders[po.ID] = &cp
	return nil
}

func (r *fakePORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *po
	return &cp, nil
}

func (r *fakePORepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.orders {
		if po.CompanyID == companyID {
			cp := *po
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePORepo) UpdateStatus(po *entity.PurchaseOrder) error {
	if _, ok := r.orders[po.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *po
	r.orders[po.ID] = &cp
	return nil
}

// fakeReceivingTxRunner ejecuta el callback y revierte el stock si falla.
type fakeReceivingTxRunner struct {
	poRepo      *fakePORepo
	productRepo *fakeProductRepo
}

func (r *fakeReceivingTxRunner) RunReceiving(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := make(map[string]int64, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		snap[id] = p.CurrentStock
	}
	if err := fn(r.poRepo, r.productRepo); err != nil {
		for id, stock := range snap {
			r.productRepo.products[id].CurrentStock = stock
		}
		return err
	}
	return nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (r *fakeNotificationRepo) Create(n *entity.Notification) error {
	cp := *n
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeNotificationRepo) GetByID(id string) (*entity.Notification, error) {
	for _, n := range r.created {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) ListForUser(companyID, userID string, roles []string, limit int) ([]*entity.Notification, error) {
	roleSet := make(map[string]bool, len(roles))
	for _, role := range roles {
		roleSet[role] = true
	}
	var out []*entity.Notification
	for _, n := range r.created {
		if n.CompanyID != companyID {
			continue
		}
		match := n.UserID == userID
		for _, role := range n.Roles {
			if roleSet[role] {
				match = true
			}
		}
		if match && len(out) < limit {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(id string) error {
	for _, n := range r.created {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeAuditRepo struct {
	created []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(e *entity.AuditLog) error {
	cp := *e
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.created {
		if e.CompanyID == companyID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) CountByCompany(companyID string) (int, error) {
	list, _ := r.ListByCompany(companyID, 0, 0)
	return len(list), nil
}

func pendingPO(id, companyID string, items ...entity.POItem) *entity.PurchaseOrder {
	now := time.Now()
	return &entity.PurchaseOrder{
		ID:        id,
		CompanyID: companyID,
		Supplier:  "Proveedor Demo",
		Items:     items,
		Status:    entity.POStatusPending,
		CreatedBy: "user-warehouse",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
