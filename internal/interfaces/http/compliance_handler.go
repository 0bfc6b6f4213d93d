package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/compliance"
	"github.com/jhoicas/passport-api/internal/application/dto"
)

// ComplianceHandler registros regulatorios (CRA, EUDR, AI Act, EPD, NIS2) y su exportación combinada.
type ComplianceHandler struct {
	uc *compliance.UseCase
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(uc *compliance.UseCase) *ComplianceHandler {
	return &ComplianceHandler{uc: uc}
}

// CreateCraProduct godoc
// @Summary      Registrar producto CRA
// @Tags         compliance
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCraProductRequest  true  "Registro"
// @Success      201   {object}  dto.CraProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compliance/cra/products [post]
func (h *ComplianceHandler) CreateCraProduct(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateCraProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateCraProduct(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCraProducts godoc
// @Summary      Listar productos CRA
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.CraProductResponse
// @Router       /api/compliance/cra/products [get]
func (h *ComplianceHandler) ListCraProducts(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListCraProducts(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCraProduct godoc
// @Summary      Obtener producto CRA
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.CraProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compliance/cra/products/{id} [get]
func (h *ComplianceHandler) GetCraProduct(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetCraProduct(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEudrSupplier godoc
// @Summary      Registrar proveedor EUDR
// @Tags         compliance
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEudrSupplierRequest  true  "Registro"
// @Success      201   {object}  dto.EudrSupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compliance/eudr/suppliers [post]
func (h *ComplianceHandler) CreateEudrSupplier(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateEudrSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateEudrSupplier(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEudrSuppliers godoc
// @Summary      Listar proveedores EUDR
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.EudrSupplierResponse
// @Router       /api/compliance/eudr/suppliers [get]
func (h *ComplianceHandler) ListEudrSuppliers(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListEudrSuppliers(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateAiSystem godoc
// @Summary      Registrar sistema de IA
// @Tags         compliance
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAiSystemRequest  true  "Registro"
// @Success      201   {object}  dto.AiSystemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compliance/ai/systems [post]
func (h *ComplianceHandler) CreateAiSystem(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateAiSystemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateAiSystem(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAiSystems godoc
// @Summary      Listar sistemas de IA
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.AiSystemResponse
// @Router       /api/compliance/ai/systems [get]
func (h *ComplianceHandler) ListAiSystems(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListAiSystems(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateAiIncident godoc
// @Summary      Registrar incidente de IA
// @Tags         compliance
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAiIncidentRequest  true  "Registro"
// @Success      201   {object}  dto.AiIncidentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compliance/ai/incidents [post]
func (h *ComplianceHandler) CreateAiIncident(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateAiIncidentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateAiIncident(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAiIncidents godoc
// @Summary      Listar incidentes de IA
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.AiIncidentResponse
// @Router       /api/compliance/ai/incidents [get]
func (h *ComplianceHandler) ListAiIncidents(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListAiIncidents(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEpdRecord godoc
// @Summary      Registrar registro EPD
// @Tags         compliance
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEpdRecordRequest  true  "Registro"
// @Success      201   {object}  dto.EpdRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compliance/epd/records [post]
func (h *ComplianceHandler) CreateEpdRecord(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateEpdRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateEpdRecord(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEpdRecords godoc
// @Summary      Listar registros EPD
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.EpdRecordResponse
// @Router       /api/compliance/epd/records [get]
func (h *ComplianceHandler) ListEpdRecords(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListEpdRecords(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateNis2Attestation godoc
// @Summary      Registrar atestación NIS2
// @Tags         compliance
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNis2AttestationRequest  true  "Registro"
// @Success      201   {object}  dto.Nis2AttestationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compliance/nis2/attestations [post]
func (h *ComplianceHandler) CreateNis2Attestation(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateNis2AttestationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateNis2Attestation(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNis2Attestations godoc
// @Summary      Listar atestaciones NIS2
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.Nis2AttestationResponse
// @Router       /api/compliance/nis2/attestations [get]
func (h *ComplianceHandler) ListNis2Attestations(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListNis2Attestations(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Bundle godoc
// @Summary      Exportación combinada de cumplimiento
// @Tags         compliance
// @Security     ApiKey
// @Produce      json
// @Success      200  {object}  dto.ComplianceBundleResponse
// @Router       /api/compliance/export [get]
func (h *ComplianceHandler) Bundle(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Bundle(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="compliance_%s.json"`, scope.OrgID()))
	return c.JSON(out)
}
