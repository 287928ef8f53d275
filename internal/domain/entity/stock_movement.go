package entity

import "time"

// Direcciones de movimiento de stock.
const (
	MovementIN  = "IN"  // entrada
	MovementOUT = "OUT" // salida
)

// ValidDirection indica si la dirección es IN u OUT.
func ValidDirection(d string) bool {
	return d == MovementIN || d == MovementOUT
}

// StockMovement es un hecho inmutable: registra una entrada o salida de stock.
// Se crea exclusivamente desde el ledger, en la misma transacción que la
// actualización de StockOnHand. Nunca se actualiza ni se borra.
type StockMovement struct {
	ID        string
	ProductID string
	Direction string // IN, OUT
	Quantity  int64  // siempre > 0; la dirección define el signo del efecto
	Reference string // orden de compra, factura, nota de ajuste, etc.
	Notes     string
	CreatedAt time.Time
	CreatedBy string // UserID del actor
}
