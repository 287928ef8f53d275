package replenishment

import (
	"math"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Claves de parámetros reconocidas por las estrategias.
const (
	ParamAnnualDemand  = "annual_demand"
	ParamOrderCost     = "order_cost"
	ParamHoldingCost   = "holding_cost"
	ParamLeadTimeDays  = "lead_time_days"
	ParamFixedQuantity = "fixed_quantity"
	ParamManualROP     = "manual_rop"
)

// Result es el resultado de un cálculo de reposición.
type Result struct {
	SuggestedQuantity int64
	ReorderPoint      int64
	StrategyUsed      string
	Params            map[string]float64 // eco de los parámetros aplicados
}

// Strategy es el contrato de una estrategia de cálculo de reposición
// (servicio de dominio puro, sin estado ni persistencia).
type Strategy interface {
	Name() string
	ValidateParams(params map[string]float64) bool
	Calculate(product *entity.Product, params map[string]float64) Result
}

// EOQStrategy implementa Economic Order Quantity:
// EOQ = sqrt(2 * D * S / H); ROP = ceil(D/365 * leadTime + minStock).
type EOQStrategy struct{}

// Name devuelve el identificador de la estrategia.
func (EOQStrategy) Name() string { return entity.StrategyEOQ }

// ValidateParams exige demanda anual, costo de pedido, costo de mantenimiento
// y lead time, todos > 0.
func (EOQStrategy) ValidateParams(params map[string]float64) bool {
	for _, k := range []string{ParamAnnualDemand, ParamOrderCost, ParamHoldingCost, ParamLeadTimeDays} {
		if params[k] <= 0 {
			return false
		}
	}
	return true
}

// Calculate calcula la cantidad óptima de pedido y el punto de reorden.
func (EOQStrategy) Calculate(product *entity.Product, params map[string]float64) Result {
	demand := params[ParamAnnualDemand]
	orderCost := params[ParamOrderCost]
	holdingCost := params[ParamHoldingCost]
	leadTime := params[ParamLeadTimeDays]

	eoq := math.Sqrt(2 * demand * orderCost / holdingCost)
	rop := math.Ceil(demand/365*leadTime + float64(product.MinStock))

	return Result{
		SuggestedQuantity: int64(math.Ceil(eoq)),
		ReorderPoint:      int64(rop),
		StrategyUsed:      entity.StrategyEOQ,
		Params:            params,
	}
}

// ManualStrategy usa valores fijos de la política:
// cantidad = fixed_quantity (o 2 * minStock) y ROP = manual_rop (o minStock).
type ManualStrategy struct{}

// Name devuelve el identificador de la estrategia.
func (ManualStrategy) Name() string { return entity.StrategyManual }

// ValidateParams siempre acepta: la estrategia manual no exige parámetros.
func (ManualStrategy) ValidateParams(map[string]float64) bool { return true }

// Calculate aplica los valores fijos o los derivados del stock mínimo.
func (ManualStrategy) Calculate(product *entity.Product, params map[string]float64) Result {
	suggested := 2 * product.MinStock
	if v, ok := params[ParamFixedQuantity]; ok && v > 0 {
		suggested = int64(math.Ceil(v))
	}
	rop := product.MinStock
	if v, ok := params[ParamManualROP]; ok && v > 0 {
		rop = int64(math.Ceil(v))
	}
	return Result{
		SuggestedQuantity: suggested,
		ReorderPoint:      rop,
		StrategyUsed:      entity.StrategyManual,
		Params:            params,
	}
}

// Registry resuelve estrategias por nombre. Se construye una vez en el
// arranque y se inyecta; no hay registro global mutable.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry construye el registro con las estrategias soportadas.
func NewRegistry(strategies ...Strategy) *Registry {
	m := make(map[string]Strategy, len(strategies))
	for _, s := range strategies {
		m[s.Name()] = s
	}
	return &Registry{strategies: m}
}

// DefaultRegistry devuelve el registro con EOQ y MANUAL.
func DefaultRegistry() *Registry {
	return NewRegistry(EOQStrategy{}, ManualStrategy{})
}

// Get devuelve la estrategia por nombre, o false si no está soportada.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}
