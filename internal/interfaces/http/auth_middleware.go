package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// Cabeceras de credenciales.
const (
	HeaderAPIKey     = "X-API-Key"
	HeaderAdminToken = "X-Admin-Token"
)

// LocalScope clave de c.Locals donde queda el tenant.Scope resuelto.
const LocalScope = "tenant_scope"

// scopeResolver lo implementa *tenancy.Resolver.
type scopeResolver interface {
	Resolve(ctx context.Context, credential string) (tenant.Scope, error)
}

// TenantMiddleware resuelve la API key de X-API-Key y deja el Scope en c.Locals.
// Cualquier fallo de credencial responde 401 sin indicar la causa.
func TenantMiddleware(resolver scopeResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderAPIKey)
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_API_KEY", Message: "cabecera X-API-Key requerida"})
		}
		scope, err := resolver.Resolve(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credencial inválida o revocada"})
			}
			return writeError(c, err)
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// AdminMiddleware compara X-Admin-Token con el hash bcrypt configurado.
// Con hash vacío las rutas administrativas quedan deshabilitadas (403).
func AdminMiddleware(tokenHash string) fiber.Handler {
	hash := []byte(tokenHash)
	return func(c *fiber.Ctx) error {
		if len(hash) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ADMIN_DISABLED", Message: "rutas administrativas deshabilitadas"})
		}
		token := c.Get(HeaderAdminToken)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ADMIN_TOKEN", Message: "cabecera X-Admin-Token requerida"})
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token administrativo inválido"})
		}
		return c.Next()
	}
}

// GetScope devuelve el Scope del contexto (después de TenantMiddleware).
func GetScope(c *fiber.Ctx) (tenant.Scope, bool) {
	scope, ok := c.Locals(LocalScope).(tenant.Scope)
	return scope, ok
}

// GetOrgID atajo para logs y respuestas.
func GetOrgID(c *fiber.Ctx) string {
	scope, _ := GetScope(c)
	return scope.OrgID()
}

// requireScope lo usan los handlers protegidos; sin Scope la ruta quedó mal montada.
func requireScope(c *fiber.Ctx) (tenant.Scope, error) {
	scope, ok := GetScope(c)
	if !ok || scope.IsSystem() {
		return tenant.Scope{}, domain.ErrUnauthorized
	}
	return scope, nil
}
