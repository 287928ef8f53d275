package inventory

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

// LedgerUseCase es el libro de stock: registra movimientos de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y mantiene el
// historial inmutable. Emite StockChanged después del commit.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	bus      *events.Bus
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, bus *events.Bus) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, bus: bus}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Direction string // IN, OUT
	Quantity  int64
	ActorID   string
	Reference string
	Notes     string
}

// MovementResult resultado de un movimiento aceptado.
type MovementResult struct {
	Movement    *entity.StockMovement
	StockBefore int64
	StockAfter  int64
}

// RecordMovement valida, bloquea la fila del producto, verifica el invariante
// de stock (nunca negativo, sin despacho parcial) y persiste movimiento +
// stock en una sola transacción. El evento se emite fire-and-forget tras el
// commit: un observador que falle no revierte el movimiento.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.Quantity <= 0 || !entity.ValidDirection(input.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result *MovementResult

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del producto: dos OUT concurrentes sobre el mismo
		// producto se serializan aquí y el segundo ve el stock ya descontado.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return domain.ErrNotFound
		}

		before := product.StockOnHand
		after := before
		switch input.Direction {
		case entity.MovementIN:
			after = before + input.Quantity
		case entity.MovementOUT:
			if before < input.Quantity {
				return domain.ErrInsufficientStock
			}
			after = before - input.Quantity
		}

		if err := productRepo.UpdateStock(product.ID, after); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Direction: input.Direction,
			Quantity:  input.Quantity,
			Reference: input.Reference,
			Notes:     input.Notes,
			CreatedAt: now,
			CreatedBy: input.ActorID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result = &MovementResult{Movement: mov, StockBefore: before, StockAfter: after}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.bus.PublishAsync(event.StockChanged{
		ProductID:   input.ProductID,
		StockBefore: result.StockBefore,
		StockAfter:  result.StockAfter,
		Direction:   input.Direction,
		Quantity:    input.Quantity,
		At:          now,
	})

	return result, nil
}

// GetHistory consulta el historial de movimientos (solo lectura, sin efectos).
func (uc *LedgerUseCase) GetHistory(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Direction != "" && !entity.ValidDirection(filter.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.movRepo.List(filter)
}
