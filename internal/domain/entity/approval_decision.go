package entity

import "time"

// Resultados posibles de una decisión de aprobación.
const (
	OutcomePending  = "PENDING"
	OutcomeApproved = "APPROVED"
	OutcomeRejected = "REJECTED"
)

// ApprovalDecision es la decisión de un nivel de la cadena de aprobación.
// Existe exactamente una fila por (RequestID, Level); la del nivel siguiente
// se crea solo cuando el nivel anterior aprobó y se requiere escalamiento.
// Como máximo una decisión PENDING por solicitud a la vez.
type ApprovalDecision struct {
	ID        string
	RequestID string
	Level     int    // >= 1
	DeciderID string // vacío hasta que un aprobador actúa
	Outcome   string // PENDING, APPROVED, REJECTED
	Comment   string
	CreatedAt time.Time
	DecidedAt *time.Time
}
