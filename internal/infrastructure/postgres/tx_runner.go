package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners del ledger y del motor de compras.
var _ inventory.TxRunner = (*LedgerTxRunner)(nil)
var _ purchase.TxRunner = (*PurchaseTxRunner)(nil)

// LedgerTxRunner ejecuta callbacks del ledger dentro de una transacción
// PostgreSQL, con repos de producto y movimiento atados a la tx.
type LedgerTxRunner struct {
	pool *pgxpool.Pool
}

// NewLedgerTxRunner construye el runner con el pool.
func NewLedgerTxRunner(pool *pgxpool.Pool) *LedgerTxRunner {
	return &LedgerTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *LedgerTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PurchaseTxRunner ejecuta callbacks del motor de aprobación dentro de una
// transacción PostgreSQL, con repos de solicitud y decisión atados a la tx.
type PurchaseTxRunner struct {
	pool *pgxpool.Pool
}

// NewPurchaseTxRunner construye el runner con el pool.
func NewPurchaseTxRunner(pool *pgxpool.Pool) *PurchaseTxRunner {
	return &PurchaseTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *PurchaseTxRunner) Run(ctx context.Context, fn func(
	reqRepo repository.PurchaseRequestRepository,
	decRepo repository.ApprovalDecisionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseRequestRepository(tx), NewApprovalDecisionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
