package entity

import "time"

// Estados del ciclo de vida de una solicitud de compra.
// APPROVED, REJECTED y CANCELLED son terminales e inmutables.
const (
	RequestStatusDraft           = "DRAFT"
	RequestStatusPendingApproval = "PENDING_APPROVAL"
	RequestStatusApproved        = "APPROVED"
	RequestStatusRejected        = "REJECTED"
	RequestStatusCancelled       = "CANCELLED"
)

// IsTerminalStatus indica si el estado no admite más transiciones.
func IsTerminalStatus(s string) bool {
	return s == RequestStatusApproved || s == RequestStatusRejected || s == RequestStatusCancelled
}

// PurchaseRequest es una solicitud de reposición de compra.
// Las transiciones de Status son responsabilidad exclusiva del motor de aprobación.
type PurchaseRequest struct {
	ID        string
	ProductID string
	Quantity  int64 // siempre > 0
	Status    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestLogEntry es una línea del historial append-only de la solicitud
// (quién, cuándo, qué y por qué).
type RequestLogEntry struct {
	ID        string
	RequestID string
	Action    string // CREATED, SUBMITTED, APPROVED, REJECTED, ESCALATED, CANCELLED
	ActorID   string
	Detail    string
	CreatedAt time.Time
}

// Acciones registradas en el historial de la solicitud.
const (
	LogActionCreated   = "CREATED"
	LogActionSubmitted = "SUBMITTED"
	LogActionApproved  = "APPROVED"
	LogActionRejected  = "REJECTED"
	LogActionEscalated = "ESCALATED"
	LogActionCancelled = "CANCELLED"
)
