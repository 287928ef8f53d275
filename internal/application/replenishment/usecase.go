package replenishment

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domrep "github.com/jhoicas/Almacen-api/internal/domain/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// SuggestionUseCase calcula sugerencias de reposición por producto usando la
// estrategia de su política (EOQ o MANUAL). Es stateless: se invoca bajo
// demanda desde el motor de compras o desde un reporte.
type SuggestionUseCase struct {
	productRepo repository.ProductRepository
	policyRepo  repository.ReplenishmentPolicyRepository
	movRepo     repository.StockMovementRepository
	registry    *domrep.Registry
}

// NewSuggestionUseCase construye el caso de uso de sugerencias.
func NewSuggestionUseCase(
	productRepo repository.ProductRepository,
	policyRepo repository.ReplenishmentPolicyRepository,
	movRepo repository.StockMovementRepository,
	registry *domrep.Registry,
) *SuggestionUseCase {
	return &SuggestionUseCase{
		productRepo: productRepo,
		policyRepo:  policyRepo,
		movRepo:     movRepo,
		registry:    registry,
	}
}

// Suggestion es la sugerencia de reposición de un producto.
type Suggestion struct {
	ProductID          string
	SKU                string
	StrategyUsed       string
	SuggestedQuantity  int64
	ReorderPoint       int64
	StockOnHand        int64
	NeedsReplenishment bool
	Reason             string
	Params             map[string]float64
}

// GetSuggestion carga (o crea perezosamente) la política del producto, arma
// los parámetros de la estrategia y devuelve la sugerencia. Para EOQ la
// demanda anual se deriva del historial de salidas de los últimos 12 meses;
// sin historial se usa un piso de 12 × stock mínimo.
func (uc *SuggestionUseCase) GetSuggestion(
	ctx context.Context,
	productID string,
	overrideParams map[string]float64,
) (*Suggestion, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	policy, err := uc.policyRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		// Primera sugerencia para este producto: política MANUAL por defecto.
		policy = entity.DefaultPolicy(productID, now)
		if err := uc.policyRepo.Upsert(policy); err != nil {
			return nil, err
		}
	}

	strategy, ok := uc.registry.Get(policy.Strategy)
	if !ok {
		return nil, domain.ErrUnsupportedStrategy
	}

	params := make(map[string]float64, len(policy.Params)+len(overrideParams))
	for k, v := range policy.Params {
		params[k] = v
	}
	if policy.Strategy == entity.StrategyEOQ && params[domrep.ParamAnnualDemand] <= 0 {
		demand, err := uc.annualDemand(product, now)
		if err != nil {
			return nil, err
		}
		params[domrep.ParamAnnualDemand] = demand
	}
	for k, v := range overrideParams {
		params[k] = v
	}

	if !strategy.ValidateParams(params) {
		return nil, domain.ErrInvalidStrategyParams
	}
	result := strategy.Calculate(product, params)

	needs := product.StockOnHand <= result.ReorderPoint
	return &Suggestion{
		ProductID:          product.ID,
		SKU:                product.SKU,
		StrategyUsed:       result.StrategyUsed,
		SuggestedQuantity:  result.SuggestedQuantity,
		ReorderPoint:       result.ReorderPoint,
		StockOnHand:        product.StockOnHand,
		NeedsReplenishment: needs,
		Reason:             reason(product, result.ReorderPoint, needs),
		Params:             result.Params,
	}, nil
}

// SuggestQuantity implementa purchase.QuantitySuggester: dimensiona una
// solicitud de compra con la cantidad sugerida para el producto.
func (uc *SuggestionUseCase) SuggestQuantity(ctx context.Context, productID string) (int64, error) {
	s, err := uc.GetSuggestion(ctx, productID, nil)
	if err != nil {
		return 0, err
	}
	return s.SuggestedQuantity, nil
}

// annualDemand suma las salidas de los últimos 12 meses. Sin historial
// devuelve el piso 12 × stock mínimo (mínimo 1) para que EOQ siga definido.
func (uc *SuggestionUseCase) annualDemand(product *entity.Product, now time.Time) (float64, error) {
	from := now.AddDate(-1, 0, 0)
	total, err := uc.movRepo.SumOutQuantity(product.ID, from, now)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return float64(total), nil
	}
	floor := 12 * product.MinStock
	if floor < 1 {
		floor = 1
	}
	return float64(floor), nil
}

// reason explica la recomendación en términos del negocio.
func reason(product *entity.Product, reorderPoint int64, needs bool) string {
	if !needs {
		return "stock suficiente"
	}
	switch {
	case product.StockOnHand == 0:
		return "stock agotado"
	case product.MinStock > 0 && product.StockOnHand*2 < product.MinStock:
		return "por debajo del 50% del stock mínimo"
	default:
		return "por debajo del punto de reorden"
	}
}
