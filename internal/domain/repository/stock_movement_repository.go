package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros combinables para consultar el historial de movimientos.
type MovementFilter struct {
	ProductID string
	Direction string // IN, OUT o vacío
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// SumOutQuantity suma las salidas de un producto en un rango de fechas
	// (insumo de demanda anual para la estrategia EOQ).
	SumOutQuantity(productID string, from, to time.Time) (int64, error)
}
