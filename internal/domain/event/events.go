package event

import "time"

// Type identifica la clase de evento de dominio (unión discriminada).
type Type string

// Tipos de evento publicados por el ledger y el motor de aprobación.
const (
	TypeStockChanged        Type = "StockChanged"
	TypeRequestStateChanged Type = "RequestStateChanged"
)

// Event es un evento de dominio efímero: no se persiste; los efectos
// derivados (KPIs, alertas) son responsabilidad de los observadores.
type Event interface {
	EventType() Type
	OccurredAt() time.Time
}

// StockChanged se emite después de confirmar un movimiento de stock.
type StockChanged struct {
	ProductID   string
	StockBefore int64
	StockAfter  int64
	Direction   string // IN, OUT
	Quantity    int64
	At          time.Time
}

func (e StockChanged) EventType() Type       { return TypeStockChanged }
func (e StockChanged) OccurredAt() time.Time { return e.At }

// RequestStateChanged se emite después de confirmar una transición
// de estado de una solicitud de compra.
type RequestStateChanged struct {
	RequestID  string
	FromStatus string
	ToStatus   string
	DeciderID  string // vacío en submit/cancel
	At         time.Time
}

func (e RequestStateChanged) EventType() Type       { return TypeRequestStateChanged }
func (e RequestStateChanged) OccurredAt() time.Time { return e.At }
