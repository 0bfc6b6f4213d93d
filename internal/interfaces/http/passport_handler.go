package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/passport"
)

// PassportHandler pasaportes de batería: gestión autenticada y vistas públicas de escaneo.
type PassportHandler struct {
	uc *passport.UseCase
}

// NewPassportHandler construye el handler.
func NewPassportHandler(uc *passport.UseCase) *PassportHandler {
	return &PassportHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pasaporte
// @Description  Valida todos los campos obligatorios y devuelve la lista completa de faltantes.
// @Tags         passports
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PassportFieldsRequest  true  "Atributos del pasaporte"
// @Success      201   {object}  dto.PassportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/passports [post]
func (h *PassportHandler) Create(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PassportFieldsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Instantiate godoc
// @Summary      Crear pasaporte desde plantilla
// @Description  Los campos del cuerpo prevalecen sobre los de la plantilla.
// @Tags         passports
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la plantilla"
// @Param        body  body  dto.InstantiateRequest  true  "Overrides"
// @Success      201   {object}  dto.PassportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalog/templates/{id}/passports [post]
func (h *PassportHandler) Instantiate(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.InstantiateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.InstantiateFromTemplate(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pasaportes
// @Tags         passports
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.PassportResponse
// @Router       /api/passports [get]
func (h *PassportHandler) List(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener pasaporte
// @Tags         passports
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del pasaporte"
// @Success      200  {object}  dto.PassportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/passports/{id} [get]
func (h *PassportHandler) Get(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar pasaporte (parcial)
// @Tags         passports
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del pasaporte"
// @Param        body  body  dto.PassportFieldsRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.PassportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/passports/{id} [patch]
func (h *PassportHandler) Update(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PassportFieldsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Vistas públicas (sin X-API-Key) ──

// Public godoc
// @Summary      Vista pública del pasaporte
// @Tags         passports
// @Produce      json
// @Param        id   path  string  true  "ID del pasaporte"
// @Success      200  {object}  dto.PublicPassportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/passports/{id}/public [get]
func (h *PassportHandler) Public(c *fiber.Ctx) error {
	out, err := h.uc.Public(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// JSONLD godoc
// @Summary      Vista pública en JSON-LD
// @Tags         passports
// @Produce      application/ld+json
// @Param        id   path  string  true  "ID del pasaporte"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/passports/{id}/jsonld [get]
func (h *PassportHandler) JSONLD(c *fiber.Ctx) error {
	out, err := h.uc.JSONLD(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := c.JSON(out); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/ld+json")
	return nil
}

// QR godoc
// @Summary      Código QR con la URL pública
// @Tags         passports
// @Produce      image/png
// @Param        id   path  string  true  "ID del pasaporte"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/passports/{id}/qr [get]
func (h *PassportHandler) QR(c *fiber.Ctx) error {
	png, err := h.uc.QR(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
