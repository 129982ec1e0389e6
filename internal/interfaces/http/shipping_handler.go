package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/application/export"
	"github.com/hanbit-parts/warehouse-api/internal/application/shipping"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// ShippingHandler maneja las peticiones HTTP del workflow de despacho (protegido).
type ShippingHandler struct {
	uc       *shipping.UseCase
	exporter *export.UseCase
}

// NewShippingHandler construye el handler.
func NewShippingHandler(uc *shipping.UseCase, exporter *export.UseCase) *ShippingHandler {
	return &ShippingHandler{uc: uc, exporter: exporter}
}

// Create godoc
// @Summary      Crear nota de despacho
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShippingNoteRequest  true  "customer_name, branch_name, warehouse_code, expected_ship_date, lines"
// @Success      201   {object}  dto.ShippingNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShippingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShippingNoteRequest
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
// @Summary      Detalle de nota de despacho
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.ShippingNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShippingHandler) GetDetail(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Registrar alistamiento de una línea
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la nota"
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateShippingLineRequest  true  "allocated_qty, picked_qty"
// @Success      200     {object}  dto.ShippingNoteResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/lines/{lineId} [put]
func (h *ShippingHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateShippingLineRequest
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
// @Summary      Cerrar nota de despacho
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.CompleteShippingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/complete [post]
func (h *ShippingHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListNotDone godoc
// @Summary      Listar despachos pendientes
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  false  "Día KST yyyy-MM-dd (requested_at)"
// @Param        date_from  query  string  false  "Inicio de rango KST"
// @Param        date_to    query  string  false  "Fin de rango KST"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.NoteListResponse
// @Router       /api/shipments [get]
func (h *ShippingHandler) ListNotDone(c *fiber.Ctx) error {
	filter, page := parseListQuery(c)
	out, err := h.uc.ListNotDone(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDone godoc
// @Summary      Listar despachos terminados (COMPLETED y DELAYED)
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  false  "Día KST yyyy-MM-dd (completed_at)"
// @Param        date_from  query  string  false  "Inicio de rango KST"
// @Param        date_to    query  string  false  "Fin de rango KST"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.NoteListResponse
// @Router       /api/shipments/done [get]
func (h *ShippingHandler) ListDone(c *fiber.Ctx) error {
	filter, page := parseListQuery(c)
	out, err := h.uc.ListDone(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar nota de despacho no terminal
// @Tags         shipments
// @Security     Bearer
// @Param        id  path  string  true  "ID de la nota"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShippingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PickingList godoc
// @Summary      Lista de picking en PDF
// @Tags         shipments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/picking-list [get]
func (h *ShippingHandler) PickingList(c *fiber.Ctx) error {
	data, filename, err := h.uc.PickingListPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportDone godoc
// @Summary      Exportar notas terminadas a XLSX
// @Tags         exports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type       query  string  true   "IN (recepciones) u OUT (despachos)"
// @Param        date       query  string  false  "Día KST yyyy-MM-dd"
// @Param        date_from  query  string  false  "Inicio de rango KST"
// @Param        date_to    query  string  false  "Fin de rango KST"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/exports/done-notes [get]
func (h *ShippingHandler) ExportDone(c *fiber.Ctx) error {
	filter, _ := parseListQuery(c)
	noteType := entity.NoteType(c.Query("type"))
	data, filename, err := h.exporter.DoneNotesXLSX(c.Context(), noteType, filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
