package purchase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de solicitud y decisión atados a esa tx. La transición de
// estado y la escritura de la decisión se confirman juntas o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reqRepo repository.PurchaseRequestRepository,
		decRepo repository.ApprovalDecisionRepository,
	) error) error
}

// QuantitySuggester dimensiona una solicitud cuando el solicitante no indica
// cantidad (lo implementa el motor de reposición).
type QuantitySuggester interface {
	SuggestQuantity(ctx context.Context, productID string) (int64, error)
}
