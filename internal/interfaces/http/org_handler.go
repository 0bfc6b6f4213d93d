package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/org"
)

// OrgHandler rutas administrativas: organizaciones, usuarios y API keys (X-Admin-Token).
type OrgHandler struct {
	uc *org.UseCase
}

// NewOrgHandler construye el handler.
func NewOrgHandler(uc *org.UseCase) *OrgHandler {
	return &OrgHandler{uc: uc}
}

// CreateOrg godoc
// @Summary      Crear organización
// @Tags         orgs
// @Security     AdminToken
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrgRequest  true  "Organización"
// @Success      201   {object}  dto.OrgResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orgs [post]
func (h *OrgHandler) CreateOrg(c *fiber.Ctx) error {
	var in dto.CreateOrgRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateOrg(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrgs godoc
// @Summary      Listar organizaciones
// @Tags         orgs
// @Security     AdminToken
// @Produce      json
// @Success      200  {array}  dto.OrgResponse
// @Router       /api/orgs [get]
func (h *OrgHandler) ListOrgs(c *fiber.Ctx) error {
	out, err := h.uc.ListOrgs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario en una organización
// @Tags         orgs
// @Security     AdminToken
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la organización"
// @Param        body  body  dto.CreateUserRequest  true  "Usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orgs/{id}/users [post]
func (h *OrgHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateUser(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios de una organización
// @Tags         orgs
// @Security     AdminToken
// @Produce      json
// @Param        id   path  string  true  "ID de la organización"
// @Success      200  {array}   dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orgs/{id}/users [get]
func (h *OrgHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// IssueKey godoc
// @Summary      Emitir API key
// @Description  El secreto solo se devuelve en esta respuesta.
// @Tags         api-keys
// @Security     AdminToken
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAPIKeyRequest  true  "Organización y nombre"
// @Success      201   {object}  dto.APIKeyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/keys [post]
func (h *OrgHandler) IssueKey(c *fiber.Ctx) error {
	var in dto.CreateAPIKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.IssueKey(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListKeys godoc
// @Summary      Listar API keys
// @Tags         api-keys
// @Security     AdminToken
// @Produce      json
// @Param        org_id  query  string  false  "Filtrar por organización"
// @Success      200     {array}  dto.APIKeyResponse
// @Router       /api/keys [get]
func (h *OrgHandler) ListKeys(c *fiber.Ctx) error {
	out, err := h.uc.ListKeys(c.UserContext(), c.Query("org_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RevokeKey godoc
// @Summary      Revocar API key
// @Tags         api-keys
// @Security     AdminToken
// @Produce      json
// @Param        id   path  string  true  "ID de la key"
// @Success      200  {object}  dto.APIKeyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/keys/{id}/revoke [post]
func (h *OrgHandler) RevokeKey(c *fiber.Ctx) error {
	out, err := h.uc.RevokeKey(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
