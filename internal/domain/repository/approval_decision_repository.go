package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ApprovalDecisionRepository define el puerto de persistencia para decisiones de aprobación.
type ApprovalDecisionRepository interface {
	Create(decision *entity.ApprovalDecision) error
	GetByID(id string) (*entity.ApprovalDecision, error)
	ListByRequest(requestID string) ([]*entity.ApprovalDecision, error)
	// Decide registra el resultado solo si la fila sigue PENDING
	// (UPDATE ... WHERE outcome = 'PENDING'). Devuelve false si otra
	// decisión concurrente ganó la carrera.
	Decide(id, deciderID, outcome, comment string, decidedAt time.Time) (bool, error)
}
