package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, direction, quantity, reference, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Direction, movement.Quantity,
		movement.Reference, movement.Notes, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List consulta el historial con filtros combinables (producto, dirección, rango de fechas).
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, direction, quantity, reference, notes, created_at, created_by
		FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Direction != "" {
		query += fmt.Sprintf(" AND direction = $%d", pos)
		args = append(args, filter.Direction)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Direction, &m.Quantity,
			&m.Reference, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumOutQuantity suma las salidas de un producto en un rango de fechas.
func (r *StockMovementRepo) SumOutQuantity(productID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE product_id = $1 AND direction = $2 AND created_at >= $3 AND created_at <= $4`
	var total int64
	err := r.q.QueryRow(context.Background(), query, productID, entity.MovementOUT, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum out quantity: %w", err)
	}
	return total, nil
}
