package replenishment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/replenishment"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests EOQStrategy
//
// Vector de referencia: D=1000, S=50, H=2
//
//	EOQ = sqrt(2 * 1000 * 50 / 2) = sqrt(50000) ≈ 223.6 → 224 (redondeo arriba)
// ──────────────────────────────────────────────────────────────────────────────

func eoqParams() map[string]float64 {
	return map[string]float64{
		replenishment.ParamAnnualDemand: 1000,
		replenishment.ParamOrderCost:    50,
		replenishment.ParamHoldingCost:  2,
		replenishment.ParamLeadTimeDays: 7,
	}
}

func TestEOQ_VectorExacto(t *testing.T) {
	s := replenishment.EOQStrategy{}
	product := &entity.Product{ID: "p1", MinStock: 10}

	require.True(t, s.ValidateParams(eoqParams()), "los parámetros del vector deben ser válidos")
	result := s.Calculate(product, eoqParams())

	assert.Equal(t, int64(224), result.SuggestedQuantity,
		"EOQ de D=1000, S=50, H=2 debe redondear 223.6 hacia arriba")
	assert.Equal(t, entity.StrategyEOQ, result.StrategyUsed)
}

func TestEOQ_PuntoDeReorden(t *testing.T) {
	s := replenishment.EOQStrategy{}
	product := &entity.Product{ID: "p1", MinStock: 10}

	result := s.Calculate(product, eoqParams())

	// ROP = ceil(1000/365 * 7 + 10) = ceil(29.18) = 30
	assert.Equal(t, int64(30), result.ReorderPoint,
		"el punto de reorden debe sumar el consumo del lead time al stock mínimo")
}

func TestEOQ_Determinista(t *testing.T) {
	s := replenishment.EOQStrategy{}
	product := &entity.Product{ID: "p1", MinStock: 10}

	r1 := s.Calculate(product, eoqParams())
	r2 := s.Calculate(product, eoqParams())

	assert.Equal(t, r1.SuggestedQuantity, r2.SuggestedQuantity,
		"el mismo input siempre debe producir la misma cantidad")
	assert.Equal(t, r1.ReorderPoint, r2.ReorderPoint)
}

func TestEOQ_ParametrosInvalidos(t *testing.T) {
	s := replenishment.EOQStrategy{}

	casos := []struct {
		nombre string
		clave  string
		valor  float64
	}{
		{"demanda cero", replenishment.ParamAnnualDemand, 0},
		{"demanda negativa", replenishment.ParamAnnualDemand, -10},
		{"costo de pedido cero", replenishment.ParamOrderCost, 0},
		{"costo de mantenimiento cero", replenishment.ParamHoldingCost, 0},
		{"lead time negativo", replenishment.ParamLeadTimeDays, -1},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			params := eoqParams()
			params[c.clave] = c.valor
			assert.False(t, s.ValidateParams(params),
				"parámetro %s=%v debe rechazarse", c.clave, c.valor)
		})
	}
}

func TestEOQ_ParametroFaltante(t *testing.T) {
	s := replenishment.EOQStrategy{}
	params := eoqParams()
	delete(params, replenishment.ParamHoldingCost)

	assert.False(t, s.ValidateParams(params),
		"sin costo de mantenimiento la fórmula EOQ no está definida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ManualStrategy
// ──────────────────────────────────────────────────────────────────────────────

func TestManual_ValoresPorDefecto(t *testing.T) {
	s := replenishment.ManualStrategy{}
	product := &entity.Product{ID: "p1", MinStock: 15}

	result := s.Calculate(product, map[string]float64{})

	assert.Equal(t, int64(30), result.SuggestedQuantity,
		"sin fixed_quantity la sugerencia es 2 × stock mínimo")
	assert.Equal(t, int64(15), result.ReorderPoint,
		"sin manual_rop el punto de reorden es el stock mínimo")
	assert.Equal(t, entity.StrategyManual, result.StrategyUsed)
}

func TestManual_ValoresFijos(t *testing.T) {
	s := replenishment.ManualStrategy{}
	product := &entity.Product{ID: "p1", MinStock: 15}

	result := s.Calculate(product, map[string]float64{
		replenishment.ParamFixedQuantity: 80,
		replenishment.ParamManualROP:     25,
	})

	assert.Equal(t, int64(80), result.SuggestedQuantity)
	assert.Equal(t, int64(25), result.ReorderPoint)
}

func TestManual_SiempreValida(t *testing.T) {
	s := replenishment.ManualStrategy{}
	assert.True(t, s.ValidateParams(nil), "la estrategia manual no exige parámetros")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Registry
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_EstrategiasSoportadas(t *testing.T) {
	reg := replenishment.DefaultRegistry()

	eoq, ok := reg.Get(entity.StrategyEOQ)
	require.True(t, ok)
	assert.Equal(t, entity.StrategyEOQ, eoq.Name())

	manual, ok := reg.Get(entity.StrategyManual)
	require.True(t, ok)
	assert.Equal(t, entity.StrategyManual, manual.Name())
}

func TestRegistry_EstrategiaDesconocida(t *testing.T) {
	reg := replenishment.DefaultRegistry()
	_, ok := reg.Get("JIT")
	assert.False(t, ok, "una estrategia no registrada debe devolver false")
}
