package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockly-api/internal/application/stock"
	"github.com/jhoicas/stockly-api/internal/application/usecase"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stockly-api/internal/interfaces/http"
)

// memStore estado compartido en memoria para los tests de handlers.
// Los repositorios de abajo implementan los puertos del dominio sobre él,
// de modo que los handlers corren con los casos de uso reales.
type memStore struct {
	products       map[int64]*entity.Product
	movements      []*entity.Movement
	nextProductID  int64
	nextMovementID int64
}

func newMemStore() *memStore {
	return &memStore{
		products:       make(map[int64]*entity.Product),
		nextProductID:  1,
		nextMovementID: 1,
	}
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = r.store.nextProductID
	r.store.nextProductID++
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	for _, p := range r.store.products {
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), s) && !strings.Contains(strings.ToLower(p.SKU), s) {
				continue
			}
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.LowStockOnly && !p.IsLowStock() {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	offset := (filter.Page - 1) * filter.Limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memProductRepo) ListCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.store.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateQuantity(_ context.Context, id int64, quantity int, updatedAt time.Time) error {
	if p, ok := r.store.products[id]; ok {
		p.Quantity = quantity
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.store.products, id)
	return nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	m.ID = r.store.nextMovementID
	r.store.nextMovementID++
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, int, error) {
	var matched []*entity.Movement
	for _, m := range r.store.movements {
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		cp := *m
		if p, ok := r.store.products[m.ProductID]; ok {
			cp.ProductName = p.Name
		}
		matched = append(matched, &cp)
	}
	// más recientes primero
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := len(matched)
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *memMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	movements, _, err := r.List(ctx, repository.MovementFilter{Limit: limit})
	return movements, err
}

func (r *memMovementRepo) DeleteByProduct(_ context.Context, productID int64) error {
	kept := r.store.movements[:0]
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.store.movements = kept
	return nil
}

type memDashboardRepo struct{ store *memStore }

func (r *memDashboardRepo) GetStats(_ context.Context, day time.Time) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{TotalValue: decimal.Zero}
	for _, p := range r.store.products {
		stats.TotalProducts++
		stats.TotalQuantity += p.Quantity
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		stats.TotalValue = stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	y, mo, d := day.Date()
	for _, m := range r.store.movements {
		my, mmo, md := m.CreatedAt.Date()
		if my != y || mmo != mo || md != d {
			continue
		}
		switch m.Type {
		case entity.MovementTypeEntry:
			stats.EntriesToday++
		case entity.MovementTypeExit:
			stats.ExitsToday++
		}
	}
	return stats, nil
}

type memTxRunner struct{ store *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(&memProductRepo{store: t.store}, &memMovementRepo{store: t.store})
}

// newTestApp levanta la app con los casos de uso reales sobre el store en memoria.
func newTestApp(t *testing.T) (*fiber.App, *memStore) {
	t.Helper()

	store := newMemStore()
	productRepo := &memProductRepo{store: store}
	movementRepo := &memMovementRepo{store: store}
	txRunner := &memTxRunner{store: store}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(productRepo, txRunner),
		MovementUC:     usecase.NewMovementUseCase(movementRepo),
		RecordMovement: stock.NewRecordMovementUseCase(txRunner),
		DashboardUC:    usecase.NewDashboardUseCase(&memDashboardRepo{store: store}, productRepo, movementRepo),
		AppName:        "Stockly API",
		AppVersion:     "test",
	})
	return app, store
}

func seedProduct(store *memStore, name, sku, category string, price float64, quantity, minStock int) *entity.Product {
	now := time.Now()
	p := &entity.Product{
		ID:        store.nextProductID,
		Name:      name,
		SKU:       sku,
		Category:  category,
		Price:     decimal.NewFromFloat(price),
		Quantity:  quantity,
		MinStock:  minStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.nextProductID++
	store.products[p.ID] = p
	return p
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
