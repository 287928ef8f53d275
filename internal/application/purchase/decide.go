package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DecideInput entrada para decidir sobre una aprobación pendiente.
type DecideInput struct {
	DecisionID string
	ActorID    string
	ActorRole  entity.Role
	Outcome    string // APPROVED, REJECTED
	Comment    string
}

// Decide procesa una decisión de aprobación con la cadena de handlers.
//
// Dentro de una sola transacción: bloquea la solicitud, verifica que siga
// PENDING_APPROVAL (terminalidad), busca el primer handler elegible
// (ninguno ⇒ ErrForbidden), escribe la decisión con precondición optimista
// (sigue PENDING ⇒ ok; si no, ErrAlreadyDecided), aplica la transición y,
// si corresponde, crea la decisión PENDING del nivel siguiente.
func (uc *UseCase) Decide(ctx context.Context, input DecideInput) error {
	if input.DecisionID == "" || input.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if input.Outcome != entity.OutcomeApproved && input.Outcome != entity.OutcomeRejected {
		return domain.ErrInvalidInput
	}
	if _, ok := entity.ParseRole(string(input.ActorRole)); !ok {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	var requestID, toStatus string

	err := uc.txRunner.Run(ctx, func(
		reqRepo repository.PurchaseRequestRepository,
		decRepo repository.ApprovalDecisionRepository,
	) error {
		decision, err := decRepo.GetByID(input.DecisionID)
		if err != nil {
			return err
		}
		if decision == nil {
			return domain.ErrNotFound
		}
		if decision.Outcome != entity.OutcomePending {
			return domain.ErrAlreadyDecided
		}

		req, err := reqRepo.GetForUpdate(decision.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPendingApproval {
			return domain.ErrInvalidStateTransition
		}

		dc := &decisionContext{
			request:   req,
			decision:  decision,
			actorID:   input.ActorID,
			actorRole: input.ActorRole,
			outcome:   input.Outcome,
			comment:   input.Comment,
		}
		handler := uc.firstEligible(dc)
		if handler == nil {
			return domain.ErrForbidden
		}
		result := handler.process(dc)

		// Precondición optimista: la fila debe seguir PENDING en el momento
		// del UPDATE. El perdedor de una carrera concurrente falla aquí.
		ok, err := decRepo.Decide(decision.ID, input.ActorID, input.Outcome, input.Comment, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyDecided
		}

		if err := reqRepo.UpdateStatus(req.ID, result.requestStatus, now); err != nil {
			return err
		}

		if result.escalate {
			// Nivel siguiente: única decisión PENDING de la solicitud a partir de aquí.
			if err := decRepo.Create(&entity.ApprovalDecision{
				ID:        uuid.New().String(),
				RequestID: req.ID,
				Level:     decision.Level + 1,
				Outcome:   entity.OutcomePending,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			if err := reqRepo.AppendLog(&entity.RequestLogEntry{
				ID:        uuid.New().String(),
				RequestID: req.ID,
				Action:    entity.LogActionEscalated,
				ActorID:   input.ActorID,
				Detail:    fmt.Sprintf("aprobada en nivel %d, escalada a nivel %d", decision.Level, decision.Level+1),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		} else {
			action := entity.LogActionApproved
			if input.Outcome == entity.OutcomeRejected {
				action = entity.LogActionRejected
			}
			if err := reqRepo.AppendLog(&entity.RequestLogEntry{
				ID:        uuid.New().String(),
				RequestID: req.ID,
				Action:    action,
				ActorID:   input.ActorID,
				Detail:    "decidida por " + handler.name() + ": " + input.Comment,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}

		requestID = req.ID
		toStatus = result.requestStatus
		return nil
	})
	if err != nil {
		return err
	}

	uc.bus.PublishAsync(event.RequestStateChanged{
		RequestID:  requestID,
		FromStatus: entity.RequestStatusPendingApproval,
		ToStatus:   toStatus,
		DeciderID:  input.ActorID,
		At:         now,
	})
	return nil
}

// firstEligible recorre la cadena en orden y devuelve el primer handler
// elegible, o nil si ninguno lo es.
func (uc *UseCase) firstEligible(dc *decisionContext) approvalHandler {
	for _, h := range uc.chain {
		if h.eligible(dc) {
			return h
		}
	}
	return nil
}
