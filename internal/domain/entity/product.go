package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado (SKU único).
// StockOnHand solo se modifica a través del libro de movimientos (ledger),
// nunca directamente; el invariante StockOnHand >= 0 se garantiza en la transacción.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	StockOnHand int64
	MinStock    int64
	UnitCost    decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
