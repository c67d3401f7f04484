package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockly-api/internal/application/stock"
	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore es el estado compartido de los repos fake. El TxRunner fake toma un
// snapshot antes de ejecutar fn y lo restaura si fn falla, imitando el rollback
// de una transacción real: así los tests verifican "sin efecto parcial" de verdad.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products           map[int64]*entity.Product
	movements          []*entity.Movement
	nextMovementID     int64
	failMovementCreate bool
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[int64]*entity.Product{}, nextMovementID: 1}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) snapshot() *memStore {
	snap := &memStore{
		products:       make(map[int64]*entity.Product, len(s.products)),
		movements:      append([]*entity.Movement(nil), s.movements...),
		nextMovementID: s.nextMovementID,
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.movements = snap.movements
	s.nextMovementID = snap.nextMovementID
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
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
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *memProductRepo) ListCategories(_ context.Context) ([]string, error) { return nil, nil }

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateQuantity(_ context.Context, id int64, quantity int, updatedAt time.Time) error {
	if p, ok := r.s.products[id]; ok {
		p.Quantity = quantity
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if r.s.failMovementCreate {
		return errors.New("insert movement: fallo simulado")
	}
	m.ID = r.s.nextMovementID
	r.s.nextMovementID++
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.Movement, int, error) {
	return r.s.movements, len(r.s.movements), nil
}

func (r *memMovementRepo) ListRecent(_ context.Context, _ int) ([]*entity.Movement, error) {
	return r.s.movements, nil
}

func (r *memMovementRepo) DeleteByProduct(_ context.Context, productID int64) error {
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&memProductRepo{r.s}, &memMovementRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func newTestProduct() *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        1,
		Name:      "Teclado Mecánico RGB",
		SKU:       "TEC-001",
		Category:  "Periféricos",
		Price:     decimal.NewFromFloat(299.90),
		Quantity:  50,
		MinStock:  10,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una salida que excede el stock se rechaza con la cantidad real disponible
// y no deja efecto alguno: ni cantidad mutada ni movimiento registrado.
func TestRecordMovement_SalidaInsuficiente(t *testing.T) {
	store := newMemStore(newTestProduct())
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	_, err := uc.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: 1,
		Type:      entity.MovementTypeExit,
		Quantity:  60,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 50, insufficient.Available, "debe reportar la cantidad previa real")
	assert.Equal(t, 60, insufficient.Requested)

	assert.Equal(t, 50, store.products[1].Quantity, "la cantidad no debe mutar")
	assert.Empty(t, store.movements, "no debe registrarse movimiento")
}

// Una entrada con cantidad positiva siempre aplica e incrementa exactamente el delta.
func TestRecordMovement_EntradaAplica(t *testing.T) {
	store := newMemStore(newTestProduct())
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	mov, err := uc.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: 1,
		Type:      entity.MovementTypeEntry,
		Quantity:  20,
		Notes:     "Compra del proveedor X",
	})
	require.NoError(t, err)

	assert.Equal(t, 70, store.products[1].Quantity)
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, store.movements[0].Type)
	assert.Equal(t, 20, store.movements[0].Quantity)

	assert.NotZero(t, mov.ID, "el store asigna el ID")
	assert.Equal(t, "Teclado Mecánico RGB", mov.ProductName)
	assert.False(t, mov.CreatedAt.IsZero())
}

// Una salida dentro del stock disponible decrementa y registra el movimiento.
func TestRecordMovement_SalidaValida(t *testing.T) {
	store := newMemStore(newTestProduct())
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	mov, err := uc.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: 1,
		Type:      entity.MovementTypeExit,
		Quantity:  30,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, store.products[1].Quantity)
	assert.Equal(t, entity.MovementTypeExit, mov.Type)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	_, err := uc.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: 99,
		Type:      entity.MovementTypeEntry,
		Quantity:  5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var notFound *domain.ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(99), notFound.ProductID)
}

func TestRecordMovement_EntradaInvalida(t *testing.T) {
	store := newMemStore(newTestProduct())
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	cases := []struct {
		name  string
		input stock.MovementInput
	}{
		{"cantidad cero", stock.MovementInput{ProductID: 1, Type: entity.MovementTypeEntry, Quantity: 0}},
		{"cantidad negativa", stock.MovementInput{ProductID: 1, Type: entity.MovementTypeExit, Quantity: -3}},
		{"tipo desconocido", stock.MovementInput{ProductID: 1, Type: "ajuste", Quantity: 5}},
		{"sin producto", stock.MovementInput{Type: entity.MovementTypeEntry, Quantity: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordMovement(context.Background(), tc.input)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
	assert.Equal(t, 50, store.products[1].Quantity)
	assert.Empty(t, store.movements)
}

// Si falla la segunda mitad de la transacción (insert del movimiento), el
// rollback debe dejar la cantidad del producto intacta: ambas mitades o ninguna.
func TestRecordMovement_RollbackSinEfectoParcial(t *testing.T) {
	store := newMemStore(newTestProduct())
	store.failMovementCreate = true
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	_, err := uc.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: 1,
		Type:      entity.MovementTypeEntry,
		Quantity:  20,
	})
	require.Error(t, err)
	assert.Equal(t, 50, store.products[1].Quantity, "rollback: la cantidad no debe cambiar")
	assert.Empty(t, store.movements)
}

// El movimiento y el updated_at del producto comparten el mismo instante:
// la transacción usa un solo reloj, no mezcla el de la app con el de la BD.
func TestRecordMovement_UnSoloReloj(t *testing.T) {
	store := newMemStore(newTestProduct())
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})

	mov, err := uc.RecordMovement(context.Background(), stock.MovementInput{
		ProductID: 1,
		Type:      entity.MovementTypeEntry,
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.True(t, mov.CreatedAt.Equal(store.products[1].UpdatedAt),
		"created_at del movimiento y updated_at del producto deben coincidir")
}

// La suma firmada de los movimientos (entry positivo, exit negativo) debe
// igualar quantity - cantidad_inicial: el log es un historial reconstruible.
func TestRecordMovement_LogReconstruyeCantidad(t *testing.T) {
	store := newMemStore(newTestProduct())
	uc := stock.NewRecordMovementUseCase(&memTxRunner{store})
	initial := store.products[1].Quantity

	steps := []struct {
		typ entity.MovementType
		qty int
	}{
		{entity.MovementTypeEntry, 20},
		{entity.MovementTypeExit, 15},
		{entity.MovementTypeEntry, 7},
		{entity.MovementTypeExit, 12},
	}
	for _, s := range steps {
		_, err := uc.RecordMovement(context.Background(), stock.MovementInput{
			ProductID: 1, Type: s.typ, Quantity: s.qty,
		})
		require.NoError(t, err)
	}

	signed := 0
	for _, m := range store.movements {
		if m.Type == entity.MovementTypeEntry {
			signed += m.Quantity
		} else {
			signed -= m.Quantity
		}
	}
	assert.Equal(t, store.products[1].Quantity-initial, signed)
}
