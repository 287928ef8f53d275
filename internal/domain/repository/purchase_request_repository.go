package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PurchaseRequestRepository define el puerto de persistencia para solicitudes de compra.
type PurchaseRequestRepository interface {
	Create(request *entity.PurchaseRequest) error
	GetByID(id string) (*entity.PurchaseRequest, error)
	// GetForUpdate bloquea la fila de la solicitud para serializar
	// transiciones concurrentes sobre la misma solicitud.
	GetForUpdate(id string) (*entity.PurchaseRequest, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	// AppendLog agrega una línea al historial append-only de la solicitud.
	AppendLog(log *entity.RequestLogEntry) error
	ListLog(requestID string) ([]*entity.RequestLogEntry, error)
	List(status string, limit, offset int) ([]*entity.PurchaseRequest, error)
}
