package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.IndicatorRepository = (*IndicatorRepo)(nil)

// IndicatorRepo mantiene los snapshots de KPIs derivados. Las recomputaciones
// son INSERT ... SELECT idempotentes: repetir una entrega del bus produce el
// mismo snapshot.
type IndicatorRepo struct {
	q Querier
}

// NewIndicatorRepository construye el adaptador de indicadores.
func NewIndicatorRepository(q Querier) *IndicatorRepo {
	return &IndicatorRepo{q: q}
}

// RefreshStockIndicator recalcula el snapshot de un producto desde su fila
// de stock y su historial de movimientos.
func (r *IndicatorRepo) RefreshStockIndicator(productID string) error {
	query := `
		INSERT INTO stock_indicators (product_id, stock_on_hand, total_in, total_out, low_stock, computed_at)
		SELECT
			p.id,
			p.stock_on_hand,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'IN'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'OUT'), 0),
			p.stock_on_hand <= p.min_stock,
			now()
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
		ON CONFLICT (product_id)
		DO UPDATE SET stock_on_hand = EXCLUDED.stock_on_hand, total_in = EXCLUDED.total_in,
			total_out = EXCLUDED.total_out, low_stock = EXCLUDED.low_stock, computed_at = EXCLUDED.computed_at`
	_, err := r.q.Exec(context.Background(), query, productID)
	if err != nil {
		return fmt.Errorf("refresh stock indicator: %w", err)
	}
	return nil
}

// RefreshRequestIndicators recalcula los conteos de solicitudes por estado.
func (r *IndicatorRepo) RefreshRequestIndicators() error {
	query := `
		INSERT INTO request_indicators (status, total, computed_at)
		SELECT status, COUNT(*), now() FROM purchase_requests GROUP BY status
		ON CONFLICT (status)
		DO UPDATE SET total = EXCLUDED.total, computed_at = EXCLUDED.computed_at`
	_, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return fmt.Errorf("refresh request indicators: %w", err)
	}
	return nil
}
