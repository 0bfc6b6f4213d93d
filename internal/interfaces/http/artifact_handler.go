package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/artifacts"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
)

// ArtifactHandler archivos restringidos de pasaportes (fichas técnicas, ensayos, certificados).
type ArtifactHandler struct {
	uc *artifacts.UseCase
}

// NewArtifactHandler construye el handler.
func NewArtifactHandler(uc *artifacts.UseCase) *ArtifactHandler {
	return &ArtifactHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar artefacto (solo metadatos)
// @Tags         artifacts
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArtifactRequest  true  "Artefacto"
// @Success      201   {object}  dto.ArtifactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/artifacts [post]
func (h *ArtifactHandler) Create(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateArtifactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Upload godoc
// @Summary      Subir archivo de un pasaporte
// @Tags         artifacts
// @Security     ApiKey
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true   "ID del pasaporte"
// @Param        file   formData  file    true   "Archivo"
// @Param        kind   formData  string  true   "Tipo de artefacto"
// @Param        title  formData  string  false  "Título"
// @Success      201    {object}  dto.ArtifactResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/artifacts/passport/{id}/upload [post]
func (h *ArtifactHandler) Upload(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, domain.NewValidationError("archivo requerido", "file"))
	}
	if fh.Size > artifacts.MaxUploadBytes {
		return writeError(c, domain.NewValidationError("archivo demasiado grande", "file"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, artifacts.MaxUploadBytes+1))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upload(c.UserContext(), scope, c.Params("id"), dto.UploadArtifactRequest{
		Kind:        c.FormValue("kind"),
		Title:       c.FormValue("title"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Presign godoc
// @Summary      URL de subida temporal
// @Description  El archivo se sube a upload_url y después se registra con POST /api/artifacts usando storage_key.
// @Tags         artifacts
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del pasaporte"
// @Param        body  body  dto.PresignRequest  true  "Nombre del archivo"
// @Success      200   {object}  dto.PresignResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/artifacts/passport/{id}/presign [post]
func (h *ArtifactHandler) Presign(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PresignRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Presign(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artefactos de la organización
// @Tags         artifacts
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.ArtifactResponse
// @Router       /api/artifacts [get]
func (h *ArtifactHandler) List(c *fiber.Ctx) error {
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

// ListByPassport godoc
// @Summary      Listar artefactos de un pasaporte
// @Tags         artifacts
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del pasaporte"
// @Success      200  {array}   dto.ArtifactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/artifacts/passport/{id} [get]
func (h *ArtifactHandler) ListByPassport(c *fiber.Ctx) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByPassport(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Subidas prefirmadas en disco local ──

// tokenWriter lo implementa *storage.LocalStore.
type tokenWriter interface {
	WriteWithToken(ctx context.Context, token, contentType string, data []byte) (string, error)
}

// UploadHandler recibe el PUT de una URL prefirmada por el almacenamiento local.
type UploadHandler struct {
	store tokenWriter
}

// NewUploadHandler construye el handler.
func NewUploadHandler(store tokenWriter) *UploadHandler {
	return &UploadHandler{store: store}
}

// Put godoc
// @Summary      Subida a URL prefirmada
// @Description  Autenticada solo por el token de la ruta.
// @Tags         artifacts
// @Accept       application/octet-stream
// @Produce      json
// @Param        token  path  string  true  "Token de subida"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /api/uploads/{token} [put]
func (h *UploadHandler) Put(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 || len(body) > artifacts.MaxUploadBytes {
		return writeError(c, domain.NewValidationError("cuerpo de subida inválido", "file"))
	}
	key, err := h.store.WriteWithToken(c.UserContext(), c.Params("token"), c.Get(fiber.HeaderContentType), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"storage_key": key})
}
