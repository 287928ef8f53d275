package purchase

import (
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// decisionContext es lo que ve cada eslabón de la cadena al evaluar una decisión.
type decisionContext struct {
	request   *entity.PurchaseRequest
	decision  *entity.ApprovalDecision
	actorID   string
	actorRole entity.Role
	outcome   string // APPROVED, REJECTED
	comment   string
}

// chainResult es el efecto de procesar una decisión.
type chainResult struct {
	// requestStatus es el estado resultante de la solicitud.
	requestStatus string
	// escalate indica que debe crearse la decisión PENDING del nivel siguiente.
	escalate bool
}

// approvalHandler es un eslabón de la cadena de aprobación. La cadena es una
// lista ordenada e inmutable: cada handler declara su elegibilidad y el
// primero elegible procesa; si ninguno lo es, la operación falla con
// ErrForbidden.
type approvalHandler interface {
	name() string
	eligible(dc *decisionContext) bool
	process(dc *decisionContext) chainResult
}

// overrideHandler: el rol administrativo más alto puede finalizar cualquier
// decisión pendiente, en cualquier nivel, sin pasar por la verificación de
// escalamiento del nivel 1. Se evalúa primero y matchea solo por rol,
// igual que el comportamiento histórico del negocio.
type overrideHandler struct{}

func (overrideHandler) name() string { return "override-admin" }

func (overrideHandler) eligible(dc *decisionContext) bool {
	return dc.actorRole == entity.RoleAdmin
}

func (overrideHandler) process(dc *decisionContext) chainResult {
	if dc.outcome == entity.OutcomeApproved {
		return chainResult{requestStatus: entity.RequestStatusApproved}
	}
	return chainResult{requestStatus: entity.RequestStatusRejected}
}

// levelOneHandler: primer nivel de aprobación (supervisor). Al aprobar,
// escala a nivel 2 solo si la cantidad supera el umbral del negocio.
type levelOneHandler struct {
	escalationThreshold int64
}

func (levelOneHandler) name() string { return "nivel-1-supervisor" }

func (h levelOneHandler) eligible(dc *decisionContext) bool {
	return dc.decision.Level == 1 && dc.actorRole == entity.RoleSupervisor
}

func (h levelOneHandler) process(dc *decisionContext) chainResult {
	if dc.outcome == entity.OutcomeRejected {
		return chainResult{requestStatus: entity.RequestStatusRejected}
	}
	if dc.request.Quantity > h.escalationThreshold {
		return chainResult{requestStatus: entity.RequestStatusPendingApproval, escalate: true}
	}
	return chainResult{requestStatus: entity.RequestStatusApproved}
}

// levelTwoHandler: segundo y último nivel de aprobación (gerente).
// Nunca escala.
type levelTwoHandler struct{}

func (levelTwoHandler) name() string { return "nivel-2-gerente" }

func (levelTwoHandler) eligible(dc *decisionContext) bool {
	return dc.decision.Level == 2 && dc.actorRole == entity.RoleGerente
}

func (levelTwoHandler) process(dc *decisionContext) chainResult {
	if dc.outcome == entity.OutcomeApproved {
		return chainResult{requestStatus: entity.RequestStatusApproved}
	}
	return chainResult{requestStatus: entity.RequestStatusRejected}
}

// newApprovalChain arma la cadena en el orden histórico: override primero,
// luego los niveles en orden.
func newApprovalChain(escalationThreshold int64) []approvalHandler {
	return []approvalHandler{
		overrideHandler{},
		levelOneHandler{escalationThreshold: escalationThreshold},
		levelTwoHandler{},
	}
}
