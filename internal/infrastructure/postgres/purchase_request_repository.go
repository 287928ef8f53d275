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

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

// Create persiste una solicitud de compra.
func (r *PurchaseRequestRepo) Create(request *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (id, product_id, quantity, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ProductID, request.Quantity, request.Status,
		request.CreatedBy, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *PurchaseRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	return r.get(`
		SELECT id, product_id, quantity, status, created_by, created_at, updated_at
		FROM purchase_requests WHERE id = $1`, id)
}

// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE).
// Serializa transiciones concurrentes sobre la misma solicitud.
func (r *PurchaseRequestRepo) GetForUpdate(id string) (*entity.PurchaseRequest, error) {
	return r.get(`
		SELECT id, product_id, quantity, status, created_by, created_at, updated_at
		FROM purchase_requests WHERE id = $1
		FOR UPDATE`, id)
}

// UpdateStatus actualiza el estado de la solicitud (solo desde el motor de aprobación).
func (r *PurchaseRequestRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_requests SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// AppendLog agrega una línea al historial append-only de la solicitud.
func (r *PurchaseRequestRepo) AppendLog(log *entity.RequestLogEntry) error {
	query := `
		INSERT INTO purchase_request_log (id, request_id, action, actor_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.RequestID, log.Action, log.ActorID, log.Detail, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append request log: %w", err)
	}
	return nil
}

// ListLog devuelve el historial de la solicitud en orden cronológico.
func (r *PurchaseRequestRepo) ListLog(requestID string) ([]*entity.RequestLogEntry, error) {
	query := `
		SELECT id, request_id, action, actor_id, detail, created_at
		FROM purchase_request_log WHERE request_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list request log: %w", err)
	}
	defer rows.Close()
	var list []*entity.RequestLogEntry
	for rows.Next() {
		var e entity.RequestLogEntry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Action, &e.ActorID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// List lista solicitudes, opcionalmente por estado, con paginación.
func (r *PurchaseRequestRepo) List(status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `
		SELECT id, product_id, quantity, status, created_by, created_at, updated_at
		FROM purchase_requests`
	var args []any
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseRequest
	for rows.Next() {
		var pr entity.PurchaseRequest
		if err := rows.Scan(&pr.ID, &pr.ProductID, &pr.Quantity, &pr.Status,
			&pr.CreatedBy, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		list = append(list, &pr)
	}
	return list, rows.Err()
}

func (r *PurchaseRequestRepo) get(query, id string) (*entity.PurchaseRequest, error) {
	var pr entity.PurchaseRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pr.ID, &pr.ProductID, &pr.Quantity, &pr.Status, &pr.CreatedBy, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	return &pr, nil
}
