package dto

import "time"

// CreatePurchaseRequest body para POST /api/purchase-requests.
// Quantity 0 = dimensionar con el motor de reposición.
type CreatePurchaseRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// DecideApprovalRequest body para POST /api/approvals/:id/decide.
type DecideApprovalRequest struct {
	Outcome string `json:"outcome"` // APPROVED, REJECTED
	Comment string `json:"comment,omitempty"`
}

// PurchaseRequestDTO una solicitud de compra.
type PurchaseRequestDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApprovalDecisionDTO una decisión de la cadena de aprobación.
type ApprovalDecisionDTO struct {
	ID        string     `json:"id"`
	RequestID string     `json:"request_id"`
	Level     int        `json:"level"`
	DeciderID string     `json:"decider_id,omitempty"`
	Outcome   string     `json:"outcome"`
	Comment   string     `json:"comment,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// RequestLogEntryDTO una línea del historial de la solicitud.
type RequestLogEntryDTO struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseRequestDetailDTO solicitud con decisiones e historial.
type PurchaseRequestDetailDTO struct {
	Request   PurchaseRequestDTO    `json:"request"`
	Decisions []ApprovalDecisionDTO `json:"decisions"`
	Log       []RequestLogEntryDTO  `json:"log"`
}
