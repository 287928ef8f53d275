package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ApprovalDecisionRepository = (*ApprovalDecisionRepo)(nil)

// ApprovalDecisionRepo implementación sobre PostgreSQL (usable con pool o tx).
type ApprovalDecisionRepo struct {
	q Querier
}

// NewApprovalDecisionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApprovalDecisionRepository(q Querier) *ApprovalDecisionRepo {
	return &ApprovalDecisionRepo{q: q}
}

// Create persiste una decisión de aprobación. El índice único
// (request_id, level) garantiza una sola fila por nivel alcanzado.
func (r *ApprovalDecisionRepo) Create(decision *entity.ApprovalDecision) error {
	query := `
		INSERT INTO approval_decisions (id, request_id, level, decider_id, outcome, comment, created_at, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	deciderID := (*string)(nil)
	if decision.DeciderID != "" {
		deciderID = &decision.DeciderID
	}
	_, err := r.q.Exec(context.Background(), query,
		decision.ID, decision.RequestID, decision.Level, deciderID,
		decision.Outcome, decision.Comment, decision.CreatedAt, decision.DecidedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("decision level already exists: %w", err)
		}
		return fmt.Errorf("insert approval decision: %w", err)
	}
	return nil
}

// GetByID obtiene una decisión por ID.
func (r *ApprovalDecisionRepo) GetByID(id string) (*entity.ApprovalDecision, error) {
	query := `
		SELECT id, request_id, level, decider_id, outcome, comment, created_at, decided_at
		FROM approval_decisions WHERE id = $1`
	d, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval decision: %w", err)
	}
	return d, nil
}

// ListByRequest lista las decisiones de una solicitud ordenadas por nivel.
func (r *ApprovalDecisionRepo) ListByRequest(requestID string) ([]*entity.ApprovalDecision, error) {
	query := `
		SELECT id, request_id, level, decider_id, outcome, comment, created_at, decided_at
		FROM approval_decisions WHERE request_id = $1 ORDER BY level ASC`
	rows, err := r.q.Query(context.Background(), query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ApprovalDecision
	for rows.Next() {
		d, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Decide registra el resultado con precondición optimista: el UPDATE solo
// aplica si la fila sigue PENDING. RowsAffected == 0 significa que una
// decisión concurrente ganó la carrera.
func (r *ApprovalDecisionRepo) Decide(id, deciderID, outcome, comment string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE approval_decisions
		SET decider_id = $2, outcome = $3, comment = $4, decided_at = $5
		WHERE id = $1 AND outcome = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		id, deciderID, outcome, comment, decidedAt, entity.OutcomePending,
	)
	if err != nil {
		return false, fmt.Errorf("decide approval: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ApprovalDecisionRepo) scanOne(row rowScanner) (*entity.ApprovalDecision, error) {
	var d entity.ApprovalDecision
	var deciderID *string
	if err := row.Scan(&d.ID, &d.RequestID, &d.Level, &deciderID, &d.Outcome,
		&d.Comment, &d.CreatedAt, &d.DecidedAt); err != nil {
		return nil, err
	}
	if deciderID != nil {
		d.DeciderID = *deciderID
	}
	return &d, nil
}
