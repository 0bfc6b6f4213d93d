package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/application/summary"
)

// ReportHandler consultas de solo lectura: DoP, audit log y resumen de la organización.
type ReportHandler struct {
	reports *reports.UseCase
	audit   *audit.UseCase
	summary *summary.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportsUC *reports.UseCase, auditUC *audit.UseCase, summaryUC *summary.UseCase) *ReportHandler {
	return &ReportHandler{reports: reportsUC, audit: auditUC, summary: summaryUC}
}

// DopPDF godoc
// @Summary      Declaración de Prestaciones (PDF)
// @Tags         dop
// @Security     ApiKey
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dop/templates/{id}/pdf [get]
func (h *ReportHandler) DopPDF(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	out, err := h.reports.DopPDF(c.UserContext(), scope, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", "dop_"+id+".pdf", out)
}

// Audit godoc
// @Summary      Audit log de la organización
// @Description  Más reciente primero, máximo 200 entradas.
// @Tags         audit
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/audit [get]
func (h *ReportHandler) Audit(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.audit.List(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de la organización
// @Tags         summary
// @Security     ApiKey
// @Produce      json
// @Success      200  {object}  dto.TenantSummaryResponse
// @Router       /api/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.summary.Tenant(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
