package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	apphttp "github.com/jhoicas/passport-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testAPIKey = "dpp_valid-key"

// fakeResolver acepta solo testAPIKey; failWith simula un fallo de infraestructura.
type fakeResolver struct {
	failWith error
}

func (f fakeResolver) Resolve(_ context.Context, credential string) (tenant.Scope, error) {
	if f.failWith != nil {
		return tenant.Scope{}, f.failWith
	}
	if credential != testAPIKey {
		return tenant.Scope{}, domain.ErrUnauthorized
	}
	return tenant.New("org-a", "Acme", "k-1", "ci"), nil
}

// buildTestApp monta una ruta protegida por TenantMiddleware que devuelve la organización resuelta.
func buildTestApp(resolver fakeResolver) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.TenantMiddleware(resolver), func(c *fiber.Ctx) error {
		scope, ok := apphttp.GetScope(c)
		return c.JSON(fiber.Map{"ok": ok, "org_id": scope.OrgID()})
	})
	return app
}

func buildAdminApp(hash string) *fiber.App {
	app := fiber.New()
	app.Get("/admin", apphttp.AdminMiddleware(hash), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, header, value string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), "cuerpo: %s", body)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// TenantMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestTenantMiddleware_KeyValidaCargaScope(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeResolver{}), "/protected", apphttp.HeaderAPIKey, testAPIKey)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "org-a", body["org_id"])
}

func TestTenantMiddleware_SinCabecera401(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeResolver{}), "/protected", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_API_KEY", decodeError(t, resp).Code)
}

func TestTenantMiddleware_KeyDesconocida401(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeResolver{}), "/protected", apphttp.HeaderAPIKey, "dpp_otra")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)
}

func TestTenantMiddleware_FalloInterno500(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeResolver{failWith: errors.New("db caída")}), "/protected", apphttp.HeaderAPIKey, testAPIKey)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdminMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func adminHash(t *testing.T, token string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAdminMiddleware_TokenCorrecto(t *testing.T) {
	resp := doRequest(t, buildAdminApp(adminHash(t, "s3cret")), "/admin", apphttp.HeaderAdminToken, "s3cret")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAdminMiddleware_TokenIncorrecto401(t *testing.T) {
	app := buildAdminApp(adminHash(t, "s3cret"))

	resp := doRequest(t, app, "/admin", apphttp.HeaderAdminToken, "otro")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "/admin", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ADMIN_TOKEN", decodeError(t, resp).Code)
}

func TestAdminMiddleware_SinHashDeshabilitado(t *testing.T) {
	resp := doRequest(t, buildAdminApp(""), "/admin", apphttp.HeaderAdminToken, "lo-que-sea")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ADMIN_DISABLED", decodeError(t, resp).Code)
}
