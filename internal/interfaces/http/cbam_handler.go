package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/cbam"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/reports"
)

// CbamHandler declaraciones CBAM, factores, proveedores y sus exportaciones.
type CbamHandler struct {
	uc      *cbam.UseCase
	reports *reports.UseCase
}

// NewCbamHandler construye el handler.
func NewCbamHandler(uc *cbam.UseCase, reportsUC *reports.UseCase) *CbamHandler {
	return &CbamHandler{uc: uc, reports: reportsUC}
}

// CreateDeclaration godoc
// @Summary      Crear declaración CBAM
// @Description  Resuelve el factor de cada ítem (verificado, organización, incorporado, proveedor) y calcula totales.
// @Tags         cbam
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCbamDeclarationRequest  true  "Periodo e ítems"
// @Success      201   {object}  dto.CbamDeclarationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations [post]
func (h *CbamHandler) CreateDeclaration(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateCbamDeclarationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateDeclaration(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDeclarations godoc
// @Summary      Listar declaraciones CBAM
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.CbamDeclarationResponse
// @Router       /api/cbam/declarations [get]
func (h *CbamHandler) ListDeclarations(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListDeclarations(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDeclaration godoc
// @Summary      Obtener declaración CBAM
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID de la declaración"
// @Success      200  {object}  dto.CbamDeclarationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id} [get]
func (h *CbamHandler) GetDeclaration(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetDeclaration(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la declaración
// @Tags         cbam
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la declaración"
// @Param        body  body  dto.UpdateCbamStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.CbamDeclarationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id}/status [post]
func (h *CbamHandler) UpdateStatus(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateCbamStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Recalcular emisiones y costo
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID de la declaración"
// @Success      200  {object}  dto.CbamDeclarationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id}/recompute [post]
func (h *CbamHandler) Recompute(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Recompute(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Factores y proveedores ──

// CreateFactor godoc
// @Summary      Registrar factor por prefijo CN
// @Tags         cbam
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCbamFactorRequest  true  "Factor"
// @Success      201   {object}  dto.CbamFactorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cbam/factors [post]
func (h *CbamHandler) CreateFactor(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateCbamFactorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateFactor(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFactors godoc
// @Summary      Listar factores de la organización
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.CbamFactorResponse
// @Router       /api/cbam/factors [get]
func (h *CbamHandler) ListFactors(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListFactors(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BuiltinFactors godoc
// @Summary      Tabla de factores incorporada
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.CbamFactorResponse
// @Router       /api/cbam/factors/builtin [get]
func (h *CbamHandler) BuiltinFactors(c *fiber.Ctx) error {
	return c.JSON(h.uc.BuiltinFactors())
}

// CreateSupplier godoc
// @Summary      Registrar proveedor
// @Tags         cbam
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCbamSupplierRequest  true  "Proveedor"
// @Success      201   {object}  dto.CbamSupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cbam/suppliers [post]
func (h *CbamHandler) CreateSupplier(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateCbamSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateSupplier(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.CbamSupplierResponse
// @Router       /api/cbam/suppliers [get]
func (h *CbamHandler) ListSuppliers(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListSuppliers(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Exportaciones ──

// ExportCSV godoc
// @Summary      Exportar declaración en CSV
// @Tags         cbam
// @Security     ApiKey
// @Produce      text/csv
// @Param        id        path   string  true   "ID de la declaración"
// @Param        encoding  query  string  false  "utf-8 (por defecto) o latin1"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id}/export/csv [get]
func (h *CbamHandler) ExportCSV(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	enc := reports.ParseEncoding(c.Query("encoding"))
	id := c.Params("id")
	out, err := h.reports.CbamCSV(c.UserContext(), scope, id, enc)
	if err != nil {
		return writeError(c, err)
	}
	charset := "utf-8"
	if enc == reports.EncodingLatin1 {
		charset = "iso-8859-1"
	}
	return sendAttachment(c, "text/csv; charset="+charset, "cbam_"+id+".csv", out)
}

// ExportPDF godoc
// @Summary      Exportar declaración en PDF
// @Tags         cbam
// @Security     ApiKey
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la declaración"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id}/export/pdf [get]
func (h *CbamHandler) ExportPDF(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	out, err := h.reports.CbamPDF(c.UserContext(), scope, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", "cbam_"+id+".pdf", out)
}

// ExportXML godoc
// @Summary      Exportar informe trimestral en XML
// @Tags         cbam
// @Security     ApiKey
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la declaración"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id}/export/xml [get]
func (h *CbamHandler) ExportXML(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	out, err := h.reports.CbamXML(c.UserContext(), scope, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/xml; charset=utf-8", "cbam_"+id+".xml", out)
}

// ExportJSON godoc
// @Summary      Exportar declaración en JSON
// @Tags         cbam
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID de la declaración"
// @Success      200  {object}  dto.CbamDeclarationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cbam/declarations/{id}/export/json [get]
func (h *CbamHandler) ExportJSON(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	out, err := h.uc.GetDeclaration(c.UserContext(), scope, id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cbam_%s.json"`, id))
	return c.JSON(out)
}

// sendAttachment responde un archivo descargable.
func sendAttachment(c *fiber.Ctx, contentType, fileName string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(body)
}
