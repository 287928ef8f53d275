package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/events"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase es el motor de aprobación de compras: ciclo de vida de la
// solicitud (DRAFT → PENDING_APPROVAL → APPROVED/REJECTED, DRAFT → CANCELLED)
// y decisión multi-nivel vía cadena de responsabilidad. Emite
// RequestStateChanged después de cada commit.
type UseCase struct {
	txRunner    TxRunner
	reqRepo     repository.PurchaseRequestRepository
	decRepo     repository.ApprovalDecisionRepository
	productRepo repository.ProductRepository
	suggester   QuantitySuggester
	bus         *events.Bus
	chain       []approvalHandler
}

// NewUseCase construye el motor de aprobación. suggester puede ser nil si no
// se quiere dimensionado automático de solicitudes.
func NewUseCase(
	txRunner TxRunner,
	reqRepo repository.PurchaseRequestRepository,
	decRepo repository.ApprovalDecisionRepository,
	productRepo repository.ProductRepository,
	suggester QuantitySuggester,
	bus *events.Bus,
	escalationThreshold int64,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		reqRepo:     reqRepo,
		decRepo:     decRepo,
		productRepo: productRepo,
		suggester:   suggester,
		bus:         bus,
		chain:       newApprovalChain(escalationThreshold),
	}
}

// CreateInput entrada para crear una solicitud en borrador.
// Quantity = 0 pide dimensionado automático al motor de reposición.
type CreateInput struct {
	ProductID string
	Quantity  int64
	ActorID   string
	Notes     string
}

// Create crea la solicitud en DRAFT a nombre del solicitante.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.PurchaseRequest, error) {
	if input.ProductID == "" || input.ActorID == "" || input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}

	qty := input.Quantity
	if qty == 0 && uc.suggester != nil {
		qty, err = uc.suggester.SuggestQuantity(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	req := &entity.PurchaseRequest{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Quantity:  qty,
		Status:    entity.RequestStatusDraft,
		CreatedBy: input.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(
		reqRepo repository.PurchaseRequestRepository,
		_ repository.ApprovalDecisionRepository,
	) error {
		if err := reqRepo.Create(req); err != nil {
			return err
		}
		return reqRepo.AppendLog(&entity.RequestLogEntry{
			ID:        uuid.New().String(),
			RequestID: req.ID,
			Action:    entity.LogActionCreated,
			ActorID:   input.ActorID,
			Detail:    input.Notes,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Submit pasa la solicitud de DRAFT a PENDING_APPROVAL y crea la decisión
// PENDING de nivel 1. Solo el creador puede enviar.
func (uc *UseCase) Submit(ctx context.Context, requestID, actorID string) error {
	if requestID == "" || actorID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		reqRepo repository.PurchaseRequestRepository,
		decRepo repository.ApprovalDecisionRepository,
	) error {
		req, err := reqRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.CreatedBy != actorID {
			return domain.ErrForbidden
		}
		if req.Status != entity.RequestStatusDraft {
			return domain.ErrInvalidStateTransition
		}

		if err := reqRepo.UpdateStatus(req.ID, entity.RequestStatusPendingApproval, now); err != nil {
			return err
		}
		// Decisión de nivel 1: la única PENDING de la solicitud en este punto.
		if err := decRepo.Create(&entity.ApprovalDecision{
			ID:        uuid.New().String(),
			RequestID: req.ID,
			Level:     1,
			Outcome:   entity.OutcomePending,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return reqRepo.AppendLog(&entity.RequestLogEntry{
			ID:        uuid.New().String(),
			RequestID: req.ID,
			Action:    entity.LogActionSubmitted,
			ActorID:   actorID,
			Detail:    "enviada a aprobación (nivel 1)",
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	uc.bus.PublishAsync(event.RequestStateChanged{
		RequestID:  requestID,
		FromStatus: entity.RequestStatusDraft,
		ToStatus:   entity.RequestStatusPendingApproval,
		At:         now,
	})
	return nil
}

// Cancel anula una solicitud en DRAFT. Solo el creador puede cancelar;
// CANCELLED es terminal.
func (uc *UseCase) Cancel(ctx context.Context, requestID, actorID string) error {
	if requestID == "" || actorID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		reqRepo repository.PurchaseRequestRepository,
		_ repository.ApprovalDecisionRepository,
	) error {
		req, err := reqRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.CreatedBy != actorID {
			return domain.ErrForbidden
		}
		if req.Status != entity.RequestStatusDraft {
			return domain.ErrInvalidStateTransition
		}
		if err := reqRepo.UpdateStatus(req.ID, entity.RequestStatusCancelled, now); err != nil {
			return err
		}
		return reqRepo.AppendLog(&entity.RequestLogEntry{
			ID:        uuid.New().String(),
			RequestID: req.ID,
			Action:    entity.LogActionCancelled,
			ActorID:   actorID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	uc.bus.PublishAsync(event.RequestStateChanged{
		RequestID:  requestID,
		FromStatus: entity.RequestStatusDraft,
		ToStatus:   entity.RequestStatusCancelled,
		At:         now,
	})
	return nil
}

// RequestDetail solicitud con sus decisiones e historial.
type RequestDetail struct {
	Request   *entity.PurchaseRequest
	Decisions []*entity.ApprovalDecision
	Log       []*entity.RequestLogEntry
}

// Get devuelve la solicitud con decisiones e historial (solo lectura).
func (uc *UseCase) Get(ctx context.Context, requestID string) (*RequestDetail, error) {
	req, err := uc.reqRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	decisions, err := uc.decRepo.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	log, err := uc.reqRepo.ListLog(requestID)
	if err != nil {
		return nil, err
	}
	return &RequestDetail{Request: req, Decisions: decisions, Log: log}, nil
}

// List lista solicitudes, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.reqRepo.List(status, limit, offset)
}
