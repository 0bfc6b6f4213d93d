package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/passport-api/pkg/logger"
)

const localLogger = "request_logger"

// RequestLogger registra una línea por petición: método, ruta, estado, latencia,
// request id y organización (si la petición pasó por TenantMiddleware).
// Debe montarse después de requestid.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals("requestid").(string)
		c.Locals(localLogger, log.WithField("request_id", reqID))

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de fiber fije el estado final antes de registrar.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", reqID).
			Str("org_id", GetOrgID(c)).
			Msg("request")
		return nil
	}
}

// requestLog logger de la petición en curso; Nop si RequestLogger no está montado.
func requestLog(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
