package dto

import "time"

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	ProductID string `json:"product_id"`
	Direction string `json:"direction"` // IN, OUT
	Quantity  int64  `json:"quantity"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// MovementDTO un movimiento del historial.
type MovementDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// RecordMovementResponse respuesta del registro de un movimiento.
type RecordMovementResponse struct {
	Movement    MovementDTO `json:"movement"`
	StockBefore int64       `json:"stock_before"`
	StockAfter  int64       `json:"stock_after"`
}

// HistoryQuery filtros para GET /api/inventory/movements.
type HistoryQuery struct {
	ProductID string `query:"product_id"`
	Direction string `query:"direction"`
	From      string `query:"from"` // RFC 3339
	To        string `query:"to"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}
