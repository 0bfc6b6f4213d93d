package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/jobs"
	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// JobHandler trabajos de importación y exportación. Cada dirección monta las mismas
// cuatro rutas con su propio prefijo.
type JobHandler struct {
	uc *jobs.UseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *jobs.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// CreateImport godoc
// @Summary      Crear job de importación
// @Description  payload.records contiene la lista de registros (components, templates o passports).
// @Tags         jobs
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Tipo y payload"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/jobs/imports [post]
func (h *JobHandler) CreateImport(c *fiber.Ctx) error { return h.create(c, entity.JobDirectionImport) }

// ListImports godoc
// @Summary      Listar jobs de importación
// @Tags         jobs
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs/imports [get]
func (h *JobHandler) ListImports(c *fiber.Ctx) error { return h.list(c, entity.JobDirectionImport) }

// GetImport godoc
// @Summary      Obtener job de importación
// @Tags         jobs
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del job"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/imports/{id} [get]
func (h *JobHandler) GetImport(c *fiber.Ctx) error { return h.get(c, entity.JobDirectionImport) }

// RunImport godoc
// @Summary      Ejecutar job de importación
// @Description  Todo o nada. Un fallo queda registrado en el job y la respuesta sigue siendo 200.
// @Tags         jobs
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del job"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/imports/{id}/run [post]
func (h *JobHandler) RunImport(c *fiber.Ctx) error { return h.run(c, entity.JobDirectionImport) }

// CreateExport godoc
// @Summary      Crear job de exportación
// @Tags         jobs
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Tipo (passports, cbam, components, templates)"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/jobs/exports [post]
func (h *JobHandler) CreateExport(c *fiber.Ctx) error { return h.create(c, entity.JobDirectionExport) }

// ListExports godoc
// @Summary      Listar jobs de exportación
// @Tags         jobs
// @Security     ApiKey
// @Produce      json
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs/exports [get]
func (h *JobHandler) ListExports(c *fiber.Ctx) error { return h.list(c, entity.JobDirectionExport) }

// GetExport godoc
// @Summary      Obtener job de exportación
// @Tags         jobs
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del job"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/exports/{id} [get]
func (h *JobHandler) GetExport(c *fiber.Ctx) error { return h.get(c, entity.JobDirectionExport) }

// RunExport godoc
// @Summary      Ejecutar job de exportación
// @Tags         jobs
// @Security     ApiKey
// @Produce      json
// @Param        id   path  string  true  "ID del job"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/exports/{id}/run [post]
func (h *JobHandler) RunExport(c *fiber.Ctx) error { return h.run(c, entity.JobDirectionExport) }

func (h *JobHandler) create(c *fiber.Ctx, direction string) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, direction, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *JobHandler) list(c *fiber.Ctx, direction string) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), scope, direction)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *JobHandler) get(c *fiber.Ctx, direction string) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), scope, direction, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *JobHandler) run(c *fiber.Ctx, direction string) error {
	scope, err := requireScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Run(c.UserContext(), scope, direction, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
