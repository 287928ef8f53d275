package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// PurchaseHandler maneja las peticiones HTTP del motor de aprobación de
// compras (protegido).
type PurchaseHandler struct {
	uc          *purchase.UseCase
	productRepo repository.ProductRepository
	pdfGen      *pdf.PurchaseOrderGenerator
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase, productRepo repository.ProductRepository, pdfGen *pdf.PurchaseOrderGenerator) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, productRepo: productRepo, pdfGen: pdfGen}
}

// Create godoc
// @Summary      Crear solicitud de compra (DRAFT)
// @Tags         purchase
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "product_id, quantity (0 = dimensionado automático)"
// @Success      201   {object}  dto.PurchaseRequestDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), purchase.CreateInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		ActorID:   userID,
		Notes:     in.Notes,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toRequestDTO(req))
}

// Submit godoc
// @Summary      Enviar solicitud a aprobación
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Solicitud (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/submit [post]
func (h *PurchaseHandler) Submit(c *fiber.Ctx) error {
	if err := h.uc.Submit(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return h.respondLifecycleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud enviada a aprobación"})
}

// Cancel godoc
// @Summary      Cancelar solicitud en borrador
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Solicitud (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return h.respondLifecycleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud cancelada"})
}

// Decide godoc
// @Summary      Decidir una aprobación pendiente
// @Tags         purchase
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Decisión (UUID)"
// @Param        body  body  dto.DecideApprovalRequest  true  "outcome APPROVED/REJECTED, comment"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/approvals/{id}/decide [post]
func (h *PurchaseHandler) Decide(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.DecideApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Decide(c.Context(), purchase.DecideInput{
		DecisionID: c.Params("id"),
		ActorID:    userID,
		ActorRole:  entity.Role(GetRole(c)),
		Outcome:    in.Outcome,
		Comment:    in.Comment,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "outcome debe ser APPROVED o REJECTED"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "decisión o solicitud no encontrada"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin autoridad en este nivel de aprobación"})
		}
		if err == domain.ErrAlreadyDecided {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DECIDED", Message: "la decisión ya fue registrada"})
		}
		if err == domain.ErrInvalidStateTransition {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la solicitud no está pendiente de aprobación"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "decisión registrada"})
}

// GetByID godoc
// @Summary      Detalle de una solicitud
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Solicitud (UUID)"
// @Success      200  {object}  dto.PurchaseRequestDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toDetailDTO(detail))
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "DRAFT, PENDING_APPROVAL, APPROVED, REJECTED, CANCELLED"
// @Param        limit   query  int     false  "Máximo de filas (default 50, tope 200)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.PurchaseRequestDTO
// @Router       /api/purchase-requests [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	requests, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PurchaseRequestDTO, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestDTO(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "requests": out})
}

// DownloadPDF godoc
// @Summary      Orden de compra en PDF
// @Description  Solo para solicitudes APPROVED.
// @Tags         purchase
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Solicitud (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/pdf [get]
func (h *PurchaseHandler) DownloadPDF(c *fiber.Ctx) error {
	detail, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if detail.Request.Status != entity.RequestStatusApproved {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la orden de compra solo existe para solicitudes aprobadas"})
	}
	product, err := h.productRepo.GetByID(detail.Request.ProductID)
	if err != nil || product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto de la solicitud no encontrado"})
	}
	doc, err := h.pdfGen.Generate(detail.Request, product, detail.Decisions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-compra-`+detail.Request.ID+`.pdf"`)
	return c.Send(doc)
}

func (h *PurchaseHandler) respondLifecycleError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	}
	if err == domain.ErrForbidden {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el creador puede operar sobre la solicitud"})
	}
	if err == domain.ErrInvalidStateTransition {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la solicitud no está en borrador"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toRequestDTO(r *entity.PurchaseRequest) dto.PurchaseRequestDTO {
	return dto.PurchaseRequestDTO{
		ID:        r.ID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Status:    r.Status,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toDetailDTO(d *purchase.RequestDetail) dto.PurchaseRequestDetailDTO {
	out := dto.PurchaseRequestDetailDTO{
		Request:   toRequestDTO(d.Request),
		Decisions: make([]dto.ApprovalDecisionDTO, 0, len(d.Decisions)),
		Log:       make([]dto.RequestLogEntryDTO, 0, len(d.Log)),
	}
	for _, dec := range d.Decisions {
		out.Decisions = append(out.Decisions, dto.ApprovalDecisionDTO{
			ID:        dec.ID,
			RequestID: dec.RequestID,
			Level:     dec.Level,
			DeciderID: dec.DeciderID,
			Outcome:   dec.Outcome,
			Comment:   dec.Comment,
			CreatedAt: dec.CreatedAt,
			DecidedAt: dec.DecidedAt,
		})
	}
	for _, l := range d.Log {
		out.Log = append(out.Log, dto.RequestLogEntryDTO{
			Action:    l.Action,
			ActorID:   l.ActorID,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
