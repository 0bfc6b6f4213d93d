package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/dto"
)

// CatalogHandler componentes, plantillas y sus enlaces.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ── Componentes ──

// CreateComponent godoc
// @Summary      Crear componente
// @Tags         catalog
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComponentRequest  true  "Componente"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/components [post]
func (h *CatalogHandler) CreateComponent(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateComponent(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListComponents godoc
// @Summary      Listar componentes
// @Tags         catalog
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.ComponentResponse
// @Router       /api/catalog/components [get]
func (h *CatalogHandler) ListComponents(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListComponents(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetComponent godoc
// @Summary      Obtener componente
// @Tags         catalog
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del componente"
// @Success      200  {object}  dto.ComponentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/components/{id} [get]
func (h *CatalogHandler) GetComponent(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetComponent(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateComponent godoc
// @Summary      Actualizar componente (parcial)
// @Tags         catalog
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del componente"
// @Param        body  body  dto.UpdateComponentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/components/{id} [patch]
func (h *CatalogHandler) UpdateComponent(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateComponent(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Plantillas ──

// CreateTemplate godoc
// @Summary      Crear plantilla de producto
// @Tags         catalog
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TemplateRequest  true  "Plantilla"
// @Success      201   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/templates [post]
func (h *CatalogHandler) CreateTemplate(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateTemplate(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTemplates godoc
// @Summary      Listar plantillas
// @Tags         catalog
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.TemplateResponse
// @Router       /api/catalog/templates [get]
func (h *CatalogHandler) ListTemplates(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListTemplates(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetTemplate godoc
// @Summary      Obtener plantilla
// @Tags         catalog
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/templates/{id} [get]
func (h *CatalogHandler) GetTemplate(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetTemplate(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateTemplate godoc
// @Summary      Actualizar plantilla (parcial)
// @Tags         catalog
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la plantilla"
// @Param        body  body  dto.TemplateRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/templates/{id} [patch]
func (h *CatalogHandler) UpdateTemplate(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateTemplate(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AttachComponent godoc
// @Summary      Enlazar componente a plantilla
// @Tags         catalog
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la plantilla"
// @Param        body  body  dto.AttachComponentRequest  true  "Componente y cantidad"
// @Success      201   {object}  dto.TemplateComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/templates/{id}/components [post]
func (h *CatalogHandler) AttachComponent(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AttachComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AttachComponent(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTemplateComponents godoc
// @Summary      Listar componentes de una plantilla
// @Tags         catalog
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {array}   dto.TemplateComponentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/templates/{id}/components [get]
func (h *CatalogHandler) ListTemplateComponents(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListTemplateComponents(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
