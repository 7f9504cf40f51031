package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/report"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/metrics"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP para Inventory.
// Incluye la descarga y el envío por correo del informe PDF.
type InventoryHandler struct {
	uc      *usecase.InventoryUseCase
	reports *report.UseCase
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, reports *report.UseCase, m *metrics.Metrics, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, reports: reports, metrics: m, log: log}
}

// Create godoc
// @Summary      Crear registro de inventario
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryRequest  true  "Datos del registro"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.InventoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro de inventario por ID
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del registro"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        company  query  int  false  "Filtrar por empresa"
// @Param        limit    query  int  false  "Límite (máx. 100)"
// @Param        offset   query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	companyID, err := parseCompanyFilter(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.InventoryFilter{CompanyID: companyID}, parsePage(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar registro de inventario
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del registro"
// @Param        body  body  dto.InventoryRequest  true  "Datos completos"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.InventoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Actualizar parcialmente un registro de inventario
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del registro"
// @Param        body  body  dto.PatchInventoryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.InventoryResponse
// @Router       /api/inventories/{id} [patch]
func (h *InventoryHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.PatchInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Patch(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de inventario
// @Tags         inventories
// @Security     Bearer
// @Param        id  path  int  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar informe de inventario en PDF
// @Tags         inventories
// @Security     Bearer
// @Produce      application/pdf
// @Param        company  query  int  false  "Filtrar por empresa"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/download-pdf [get]
func (h *InventoryHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID, err := parseCompanyFilter(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	pdf, err := h.reports.Download(c.UserContext(), repository.InventoryFilter{CompanyID: companyID})
	h.recordReport(metrics.ChannelDownload, err)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+report.AttachmentName+`"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

// SendEmail godoc
// @Summary      Enviar informe de inventario por correo
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendReportRequest  true  "Destinatario y empresa opcional"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventories/send_email [post]
func (h *InventoryHandler) SendEmail(c *fiber.Ctx) error {
	var in dto.SendReportRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	err := h.reports.SendEmail(c.UserContext(), in)
	h.recordReport(metrics.ChannelEmail, err)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "informe enviado a " + in.Email})
}

// recordReport ignora los errores de entrada y el informe vacío: solo cuenta generaciones reales.
func (h *InventoryHandler) recordReport(channel string, err error) {
	if h.metrics == nil {
		return
	}
	if errors.Is(err, domain.ErrNoRecords) || errors.Is(err, domain.ErrInvalidInput) {
		return
	}
	h.metrics.ReportResult(channel, err)
}
