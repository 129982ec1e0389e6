package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/application/receiving"
)

// ReceivingHandler maneja las peticiones HTTP del workflow de recepción (protegido).
type ReceivingHandler struct {
	uc *receiving.UseCase
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *receiving.UseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota de recepción
// @Tags         receivings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceivingNoteRequest  true  "supplier_name, warehouse_code, expected_receive_date, lines"
// @Success      201   {object}  dto.ReceivingNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receivings [post]
func (h *ReceivingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceivingNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDetail godoc
// @Summary      Detalle de nota de recepción
// @Tags         receivings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.ReceivingNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivings/{id} [get]
func (h *ReceivingHandler) GetDetail(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Registrar inspección de una línea
// @Tags         receivings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la nota"
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateReceivingLineRequest  true  "inspected_qty, has_issue"
// @Success      200     {object}  dto.ReceivingNoteResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/receivings/{id}/lines/{lineId} [put]
func (h *ReceivingHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateReceivingLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateLine(c.Context(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar nota de recepción
// @Tags         receivings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.CompleteReceivingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receivings/{id}/complete [post]
func (h *ReceivingHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListNotDone godoc
// @Summary      Listar recepciones pendientes
// @Tags         receivings
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  false  "Día KST yyyy-MM-dd (requested_at)"
// @Param        date_from  query  string  false  "Inicio de rango KST"
// @Param        date_to    query  string  false  "Fin de rango KST"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.NoteListResponse
// @Router       /api/receivings [get]
func (h *ReceivingHandler) ListNotDone(c *fiber.Ctx) error {
	filter, page := parseListQuery(c)
	out, err := h.uc.ListNotDone(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDone godoc
// @Summary      Listar recepciones terminadas
// @Tags         receivings
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  false  "Día KST yyyy-MM-dd (completed_at)"
// @Param        date_from  query  string  false  "Inicio de rango KST"
// @Param        date_to    query  string  false  "Fin de rango KST"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.NoteListResponse
// @Router       /api/receivings/done [get]
func (h *ReceivingHandler) ListDone(c *fiber.Ctx) error {
	filter, page := parseListQuery(c)
	out, err := h.uc.ListDone(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar nota de recepción no terminal
// @Tags         receivings
// @Security     Bearer
// @Param        id  path  string  true  "ID de la nota"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receivings/{id} [delete]
func (h *ReceivingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseListQuery extrae filtros de fecha y paginación comunes a los listados.
func parseListQuery(c *fiber.Ctx) (dto.DateFilter, dto.PageRequest) {
	filter := dto.DateFilter{
		Date:     c.Query("date"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return filter, dto.PageRequest{Limit: limit, Offset: offset}
}
