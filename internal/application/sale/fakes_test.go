package sale_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/sale"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// Fakes en memoria con la misma semántica que los repos reales: decremento
// condicional serializado y transacciones que ante error revierten solo sus
// propias escrituras.

// ──────────────────────────────────────────────────────────────────────────────
// fakeProductRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
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
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(companyID, barcode string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := existing.CurrentStock // el stock no se toca vía Update
	cp := *p
	cp.CurrentStock = stock
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

// DecrementStock reproduce el UPDATE condicional: lectura y escritura bajo el
// mismo lock, con piso en cero.
func (r *fakeProductRepo) DecrementStock(productID string, qty int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.CurrentStock < qty {
		return 0, &domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.CurrentStock,
			Requested:   qty,
		}
	}
	p.CurrentStock -= qty
	return p.CurrentStock, nil
}

func (r *fakeProductRepo) IncrementStock(productID string, qty int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.CurrentStock += qty
	return p.CurrentStock, nil
}

func (r *fakeProductRepo) stockOf(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].CurrentStock
}


// ──────────────────────────────────────────────────────────────────────────────
// fakeSaleRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[string]*entity.Sale
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
	for _, s := range sales {
		cp := *s
		r.sales[s.ID] = &cp
	}
	return r
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) ListBySalesRep(companyID, salesRepID string, limit, offset int) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID && s.SalesRepID == salesRepID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) CountBySalesRep(companyID, salesRepID string) (int, error) {
	list, _ := r.ListBySalesRep(companyID, salesRepID, 0, 0)
	return len(list), nil
}

func (r *fakeSaleRepo) ListUnpreparedBetween(companyID string, from, to time.Time) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID != companyID || s.IsPrepared || s.RefundStatus == entity.RefundApproved {
			continue
		}
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByRefundStatus(companyID, refundStatus string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID && s.RefundStatus == refundStatus {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListPendingCredit(companyID string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID && s.IsCredit && !s.CreditSettled {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) update(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) UpdatePreparation(s *entity.Sale) error   { return r.update(s) }
func (r *fakeSaleRepo) UpdateRefund(s *entity.Sale) error        { return r.update(s) }
func (r *fakeSaleRepo) UpdateCreditSettled(s *entity.Sale) error { return r.update(s) }

func (r *fakeSaleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sales)
}

func (r *fakeSaleRepo) drop(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.sales, id)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeTxRunner: repos atados a la "tx" que registran sus propias escrituras;
// ante error se deshacen solo esas, nunca las de otra tx concurrente
// ──────────────────────────────────────────────────────────────────────────────

type txProductRepo struct {
	*fakeProductRepo
	decrements map[string]int64
}

func (r *txProductRepo) DecrementStock(productID string, qty int64) (int64, error) {
	remaining, err := r.fakeProductRepo.DecrementStock(productID, qty)
	if err == nil {
		r.decrements[productID] += qty
	}
	return remaining, err
}

func (r *txProductRepo) IncrementStock(productID string, qty int64) (int64, error) {
	remaining, err := r.fakeProductRepo.IncrementStock(productID, qty)
	if err == nil {
		r.decrements[productID] -= qty
	}
	return remaining, err
}

type txSaleRepo struct {
	*fakeSaleRepo
	inserted []string
}

func (r *txSaleRepo) Create(s *entity.Sale) error {
	if err := r.fakeSaleRepo.Create(s); err != nil {
		return err
	}
	r.inserted = append(r.inserted, s.ID)
	return nil
}

type fakeTxRunner struct {
	saleRepo    *fakeSaleRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	sales := &txSaleRepo{fakeSaleRepo: r.saleRepo}
	products := &txProductRepo{fakeProductRepo: r.productRepo, decrements: make(map[string]int64)}
	if err := fn(sales, products); err != nil {
		for productID, qty := range products.decrements {
			if qty > 0 {
				_, _ = r.productRepo.IncrementStock(productID, qty)
			} else if qty < 0 {
				_, _ = r.productRepo.DecrementStock(productID, -qty)
			}
		}
		r.saleRepo.drop(sales.inserted)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Sinks y resto de fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
	for _, c := range companies {
		cp := *c
		r.companies[c.ID] = &cp
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	fail    bool
	created []*entity.Notification
}

func (r *fakeNotificationRepo) Create(n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("notification sink caído")
	}
	cp := *n
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeNotificationRepo) GetByID(id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.created {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) ListForUser(companyID, userID string, roles []string, limit int) ([]*entity.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) MarkRead(id string) error { return nil }

type fakeAuditRepo struct {
	mu      sync.Mutex
	fail    bool
	created []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(e *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("audit sink caído")
	}
	cp := *e
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	return nil, nil
}

func (r *fakeAuditRepo) CountByCompany(companyID string) (int, error) { return 0, nil }

type fakeReceiptGenerator struct{}

func (g *fakeReceiptGenerator) GenerateReceipt(_ context.Context, _ *entity.Sale, _ *entity.Company) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc            *sale.UseCase
	products      *fakeProductRepo
	sales         *fakeSaleRepo
	companies     *fakeCompanyRepo
	notifications *fakeNotificationRepo
	audits        *fakeAuditRepo
}

func newFixture(products []*entity.Product, sales []*entity.Sale) *fixture {
	f := &fixture{
		products: newFakeProductRepo(products...),
		sales:    newFakeSaleRepo(sales...),
		companies: newFakeCompanyRepo(&entity.Company{
			ID:       "company-1",
			Name:     "Tienda Demo",
			IsActive: true,
		}),
		notifications: &fakeNotificationRepo{},
		audits:        &fakeAuditRepo{},
	}
	f.uc = sale.NewUseCase(
		&fakeTxRunner{saleRepo: f.sales, productRepo: f.products},
		f.sales, f.products, f.companies, f.notifications, f.audits,
		&fakeReceiptGenerator{},
		config.POSConfig{VATRate: decimal.RequireFromString("0.15"), LowStockThreshold: 10},
		logger.Nop(),
	)
	return f
}
