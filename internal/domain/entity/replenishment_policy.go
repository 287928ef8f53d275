package entity

import "time"

// Estrategias de cálculo de reposición.
const (
	StrategyEOQ    = "EOQ"
	StrategyManual = "MANUAL"
)

// ReplenishmentPolicy es la política de reposición por producto.
// Se crea perezosamente con valores por defecto (MANUAL, sin parámetros)
// la primera vez que se pide una sugerencia para un producto sin política.
type ReplenishmentPolicy struct {
	ProductID    string
	Strategy     string // EOQ, MANUAL
	ReorderPoint int64
	SafetyStock  int64
	Params       map[string]float64 // parámetros específicos de la estrategia (JSONB)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultPolicy devuelve la política por defecto de un producto (MANUAL).
func DefaultPolicy(productID string, now time.Time) *ReplenishmentPolicy {
	return &ReplenishmentPolicy{
		ProductID: productID,
		Strategy:  StrategyManual,
		Params:    map[string]float64{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
