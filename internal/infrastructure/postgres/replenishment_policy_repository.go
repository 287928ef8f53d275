package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReplenishmentPolicyRepository = (*ReplenishmentPolicyRepo)(nil)

// ReplenishmentPolicyRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los parámetros de estrategia se guardan como JSONB opaco.
type ReplenishmentPolicyRepo struct {
	q Querier
}

// NewReplenishmentPolicyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReplenishmentPolicyRepository(q Querier) *ReplenishmentPolicyRepo {
	return &ReplenishmentPolicyRepo{q: q}
}

// GetByProduct obtiene la política de un producto, o nil si no existe.
func (r *ReplenishmentPolicyRepo) GetByProduct(productID string) (*entity.ReplenishmentPolicy, error) {
	query := `
		SELECT product_id, strategy, reorder_point, safety_stock, params, created_at, updated_at
		FROM replenishment_policies WHERE product_id = $1`
	var p entity.ReplenishmentPolicy
	var raw []byte
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&p.ProductID, &p.Strategy, &p.ReorderPoint, &p.SafetyStock, &raw, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment policy: %w", err)
	}
	p.Params = map[string]float64{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Params); err != nil {
			return nil, fmt.Errorf("decode policy params: %w", err)
		}
	}
	return &p, nil
}

// Upsert inserta o actualiza la política de un producto.
func (r *ReplenishmentPolicyRepo) Upsert(policy *entity.ReplenishmentPolicy) error {
	raw, err := json.Marshal(policy.Params)
	if err != nil {
		return fmt.Errorf("encode policy params: %w", err)
	}
	query := `
		INSERT INTO replenishment_policies (product_id, strategy, reorder_point, safety_stock, params, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id)
		DO UPDATE SET strategy = EXCLUDED.strategy, reorder_point = EXCLUDED.reorder_point,
			safety_stock = EXCLUDED.safety_stock, params = EXCLUDED.params, updated_at = EXCLUDED.updated_at`
	_, err = r.q.Exec(context.Background(), query,
		policy.ProductID, policy.Strategy, policy.ReorderPoint, policy.SafetyStock,
		raw, policy.CreatedAt, policy.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert replenishment policy: %w", err)
	}
	return nil
}
