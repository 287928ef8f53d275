package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/events"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeTxRunner serializa los callbacks con un mutex, reproduciendo el efecto
// del SELECT FOR UPDATE de la implementación PostgreSQL: dos movimientos
// concurrentes sobre el mismo producto se ejecutan uno después del otro.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
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

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateStock(productID string, stockOnHand int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok {
		p.StockOnHand = stockOnHand
	}
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) stock(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].StockOnHand
}

type fakeMovementRepo struct {
	mu         sync.Mutex
	movements  []*entity.StockMovement
	lastFilter repository.MovementFilter
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	out := make([]*entity.StockMovement, len(r.movements))
	copy(out, r.movements)
	return out, nil
}

func (r *fakeMovementRepo) SumOutQuantity(productID string, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, m := range r.movements {
		if m.ProductID == productID && m.Direction == entity.MovementOUT {
			total += m.Quantity
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
}

type fakeLedgerTxRunner struct {
	mu       sync.Mutex
	products *fakeProductRepo
	movs     *fakeMovementRepo
}

func (r *fakeLedgerTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.products, r.movs)
}

func newLedgerFixture(products ...*entity.Product) (*inventory.LedgerUseCase, *fakeProductRepo, *fakeMovementRepo, *events.Bus) {
	productRepo := newFakeProductRepo(products...)
	movRepo := &fakeMovementRepo{}
	runner := &fakeLedgerTxRunner{products: productRepo, movs: movRepo}
	bus := events.NewBus(logger.Nop())
	uc := inventory.NewLedgerUseCase(runner, movRepo, bus)
	return uc, productRepo, movRepo, bus
}

func activeProduct(id string, stock, minStock int64) *entity.Product {
	return &entity.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        "producto " + id,
		StockOnHand: stock,
		MinStock:    minStock,
		IsActive:    true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaSumaStock(t *testing.T) {
	uc, products, movs, _ := newLedgerFixture(activeProduct("p1", 10, 5))

	result, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Direction: entity.MovementIN,
		Quantity:  25,
		ActorID:   "u1",
		Reference: "OC-001",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), result.StockBefore)
	assert.Equal(t, int64(35), result.StockAfter)
	assert.Equal(t, int64(35), products.stock("p1"), "el stock persistido debe reflejar la entrada")
	assert.Equal(t, 1, movs.count(), "debe quedar exactamente un movimiento en el historial")
}

func TestRecordMovement_SalidaDescuentaStock(t *testing.T) {
	uc, products, _, _ := newLedgerFixture(activeProduct("p1", 50, 5))

	result, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Direction: entity.MovementOUT,
		Quantity:  10,
		ActorID:   "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(50), result.StockBefore)
	assert.Equal(t, int64(40), result.StockAfter)
	assert.Equal(t, int64(40), products.stock("p1"))
}

// Escenario de agotamiento: con stock 50, una salida de 10 deja 40 y una
// salida posterior de 60 se rechaza completa. No hay despacho parcial.
func TestRecordMovement_SalidaMayorAlStockSeRechazaCompleta(t *testing.T) {
	uc, products, movs, _ := newLedgerFixture(activeProduct("p1", 50, 5))

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Direction: entity.MovementOUT, Quantity: 10, ActorID: "u1",
	})
	require.NoError(t, err)

	_, err = uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Direction: entity.MovementOUT, Quantity: 60, ActorID: "u1",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(40), products.stock("p1"),
		"el rechazo no debe modificar el stock: nada de despacho parcial")
	assert.Equal(t, 1, movs.count(),
		"el movimiento rechazado no debe quedar en el historial")
}

func TestRecordMovement_ValidaEntrada(t *testing.T) {
	uc, _, _, _ := newLedgerFixture(activeProduct("p1", 50, 5))

	casos := []struct {
		nombre string
		input  inventory.MovementInput
	}{
		{"cantidad cero", inventory.MovementInput{ProductID: "p1", Direction: "IN", Quantity: 0, ActorID: "u1"}},
		{"cantidad negativa", inventory.MovementInput{ProductID: "p1", Direction: "OUT", Quantity: -5, ActorID: "u1"}},
		{"dirección desconocida", inventory.MovementInput{ProductID: "p1", Direction: "ADJUST", Quantity: 1, ActorID: "u1"}},
		{"sin producto", inventory.MovementInput{Direction: "IN", Quantity: 1, ActorID: "u1"}},
		{"sin actor", inventory.MovementInput{ProductID: "p1", Direction: "IN", Quantity: 1}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.RecordMovement(context.Background(), c.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "fantasma", Direction: "IN", Quantity: 1, ActorID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_ProductoInactivo(t *testing.T) {
	inactivo := activeProduct("p1", 50, 5)
	inactivo.IsActive = false
	uc, _, _, _ := newLedgerFixture(inactivo)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Direction: "IN", Quantity: 1, ActorID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos salidas de 30 sobre stock 50: exactamente una gana, el stock queda en 20
// y nunca negativo.
func TestRecordMovement_SalidasConcurrentesSeSerializan(t *testing.T) {
	uc, products, movs, _ := newLedgerFixture(activeProduct("p1", 50, 5))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordMovement(context.Background(), inventory.MovementInput{
				ProductID: "p1", Direction: entity.MovementOUT, Quantity: 30, ActorID: "u1",
			})
		}(i)
	}
	wg.Wait()

	exitos, rechazos := 0, 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
			rechazos++
		}
	}
	assert.Equal(t, 1, exitos, "exactamente una salida debe aplicarse")
	assert.Equal(t, 1, rechazos, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(20), products.stock("p1"))
	assert.Equal(t, 1, movs.count())
}

func TestRecordMovement_EmiteStockChanged(t *testing.T) {
	uc, _, _, bus := newLedgerFixture(activeProduct("p1", 10, 5))

	recibido := make(chan event.Event, 1)
	bus.Subscribe(&channelObserver{ch: recibido}, event.TypeStockChanged)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Direction: entity.MovementIN, Quantity: 5, ActorID: "u1",
	})
	require.NoError(t, err)

	select {
	case ev := <-recibido:
		sc, ok := ev.(event.StockChanged)
		require.True(t, ok)
		assert.Equal(t, "p1", sc.ProductID)
		assert.Equal(t, int64(10), sc.StockBefore)
		assert.Equal(t, int64(15), sc.StockAfter)
	case <-time.After(2 * time.Second):
		t.Fatal("el evento StockChanged no llegó tras el commit")
	}
}

type channelObserver struct {
	ch chan event.Event
}

func (o *channelObserver) Name() string { return "channel" }

func (o *channelObserver) Handle(_ context.Context, ev event.Event) error {
	o.ch <- ev
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// GetHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestGetHistory_DireccionInvalida(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	_, err := uc.GetHistory(context.Background(), repository.MovementFilter{Direction: "SIDEWAYS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetHistory_LimitePorDefecto(t *testing.T) {
	uc, _, movs, _ := newLedgerFixture()

	_, err := uc.GetHistory(context.Background(), repository.MovementFilter{Limit: 0, Offset: -3})
	require.NoError(t, err)

	assert.Equal(t, 50, movs.lastFilter.Limit, "sin límite explícito se usa el default")
	assert.Equal(t, 0, movs.lastFilter.Offset, "offset negativo se normaliza a cero")
}

func TestGetHistory_LimiteMaximo(t *testing.T) {
	uc, _, movs, _ := newLedgerFixture()

	_, err := uc.GetHistory(context.Background(), repository.MovementFilter{Limit: 9999})
	require.NoError(t, err)

	assert.Equal(t, 50, movs.lastFilter.Limit, "límites por encima del tope se normalizan")
}
