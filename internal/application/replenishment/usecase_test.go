package replenishment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domrep "github.com/jhoicas/Almacen-api/internal/domain/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error)       { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error)    { return r.GetByID(id) }
func (r *fakeProductRepo) UpdateStock(productID string, stock int64) error    { return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error)  { return nil, nil }

type fakePolicyRepo struct {
	policies map[string]*entity.ReplenishmentPolicy
	upserts  int
}

func (r *fakePolicyRepo) GetByProduct(productID string) (*entity.ReplenishmentPolicy, error) {
	p, ok := r.policies[productID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePolicyRepo) Upsert(policy *entity.ReplenishmentPolicy) error {
	r.policies[policy.ProductID] = policy
	r.upserts++
	return nil
}

type fakeOutHistory struct {
	totalOut int64
}

func (r *fakeOutHistory) Create(m *entity.StockMovement) error { return nil }

func (r *fakeOutHistory) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeOutHistory) SumOutQuantity(productID string, from, to time.Time) (int64, error) {
	return r.totalOut, nil
}

type suggestionFixture struct {
	uc       *replenishment.SuggestionUseCase
	products *fakeProductRepo
	policies *fakePolicyRepo
	history  *fakeOutHistory
}

func newSuggestionFixture(product *entity.Product) *suggestionFixture {
	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	if product != nil {
		products.products[product.ID] = product
	}
	policies := &fakePolicyRepo{policies: map[string]*entity.ReplenishmentPolicy{}}
	history := &fakeOutHistory{}
	uc := replenishment.NewSuggestionUseCase(products, policies, history, domrep.DefaultRegistry())
	return &suggestionFixture{uc: uc, products: products, policies: policies, history: history}
}

func eoqPolicy(productID string) *entity.ReplenishmentPolicy {
	now := time.Now()
	return &entity.ReplenishmentPolicy{
		ProductID: productID,
		Strategy:  entity.StrategyEOQ,
		Params: map[string]float64{
			domrep.ParamOrderCost:    50,
			domrep.ParamHoldingCost:  2,
			domrep.ParamLeadTimeDays: 7,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSuggestion_CreaPoliticaPorDefecto(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 100, MinStock: 10})

	s, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.StrategyManual, s.StrategyUsed,
		"la primera sugerencia crea la política MANUAL por defecto")
	assert.Equal(t, 1, f.policies.upserts, "la política perezosa debe persistirse")

	// La segunda llamada reutiliza la política ya creada.
	_, err = f.uc.GetSuggestion(context.Background(), "p1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.policies.upserts)
}

func TestGetSuggestion_ManualConStockSuficiente(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 100, MinStock: 10})

	s, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
	require.NoError(t, err)

	assert.False(t, s.NeedsReplenishment)
	assert.Equal(t, "stock suficiente", s.Reason)
	assert.Equal(t, int64(20), s.SuggestedQuantity, "MANUAL por defecto sugiere 2 × stock mínimo")
	assert.Equal(t, int64(10), s.ReorderPoint)
}

func TestGetSuggestion_RazonesDeReposicion(t *testing.T) {
	casos := []struct {
		nombre string
		stock  int64
		razon  string
	}{
		{"agotado", 0, "stock agotado"},
		{"bajo el 50% del mínimo", 4, "por debajo del 50% del stock mínimo"},
		{"bajo el punto de reorden", 8, "por debajo del punto de reorden"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: c.stock, MinStock: 10})

			s, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
			require.NoError(t, err)

			assert.True(t, s.NeedsReplenishment)
			assert.Equal(t, c.razon, s.Reason)
		})
	}
}

func TestGetSuggestion_EOQConHistorialDeSalidas(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 5, MinStock: 10})
	f.policies.policies["p1"] = eoqPolicy("p1")
	f.history.totalOut = 1000

	s, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
	require.NoError(t, err)

	// D=1000, S=50, H=2 → EOQ = sqrt(50000) ≈ 223.6 → 224
	assert.Equal(t, entity.StrategyEOQ, s.StrategyUsed)
	assert.Equal(t, int64(224), s.SuggestedQuantity)
	assert.Equal(t, float64(1000), s.Params[domrep.ParamAnnualDemand],
		"la demanda anual derivada debe quedar en el eco de parámetros")
}

func TestGetSuggestion_EOQSinHistorialUsaPiso(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 5, MinStock: 10})
	f.policies.policies["p1"] = eoqPolicy("p1")
	f.history.totalOut = 0

	s, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
	require.NoError(t, err)

	// Piso de demanda: 12 × 10 = 120 → EOQ = sqrt(2*120*50/2) = sqrt(6000) ≈ 77.5 → 78
	assert.Equal(t, float64(120), s.Params[domrep.ParamAnnualDemand])
	assert.Equal(t, int64(78), s.SuggestedQuantity)
}

func TestGetSuggestion_OverrideDeParametros(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 5, MinStock: 10})
	f.policies.policies["p1"] = eoqPolicy("p1")
	f.history.totalOut = 500

	s, err := f.uc.GetSuggestion(context.Background(), "p1", map[string]float64{
		domrep.ParamAnnualDemand: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(224), s.SuggestedQuantity,
		"el override de demanda anual debe pisar la derivada del historial")
}

func TestGetSuggestion_ParametrosInvalidos(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 5, MinStock: 10})
	policy := eoqPolicy("p1")
	policy.Params[domrep.ParamOrderCost] = 0
	f.policies.policies["p1"] = policy

	_, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStrategyParams)
}

func TestGetSuggestion_EstrategiaDesconocida(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 5, MinStock: 10})
	policy := eoqPolicy("p1")
	policy.Strategy = "JIT"
	f.policies.policies["p1"] = policy

	_, err := f.uc.GetSuggestion(context.Background(), "p1", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedStrategy)
}

func TestGetSuggestion_ProductoInexistente(t *testing.T) {
	f := newSuggestionFixture(nil)

	_, err := f.uc.GetSuggestion(context.Background(), "fantasma", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuggestQuantity_DimensionaSolicitudes(t *testing.T) {
	f := newSuggestionFixture(&entity.Product{ID: "p1", SKU: "S1", StockOnHand: 5, MinStock: 10})
	f.policies.policies["p1"] = eoqPolicy("p1")
	f.history.totalOut = 1000

	qty, err := f.uc.SuggestQuantity(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(224), qty)
}
