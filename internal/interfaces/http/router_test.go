package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/artifacts"
	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/cbam"
	"github.com/jhoicas/passport-api/internal/application/compliance"
	"github.com/jhoicas/passport-api/internal/application/jobs"
	"github.com/jhoicas/passport-api/internal/application/org"
	"github.com/jhoicas/passport-api/internal/application/passport"
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/application/summary"
	"github.com/jhoicas/passport-api/internal/application/tenancy"
	"github.com/jhoicas/passport-api/internal/infrastructure/export"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
	"github.com/jhoicas/passport-api/internal/infrastructure/pdf"
	"github.com/jhoicas/passport-api/internal/infrastructure/qr"
	"github.com/jhoicas/passport-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/passport-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAdminToken = "admin-s3cret"
	testAPIURL     = "http://api.test"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore(nil)
	csv := export.NewCSVRenderer()
	gen := pdf.NewMarotoPDFGenerator()
	local, err := storage.NewLocalStore(t.TempDir(), testAPIURL, "upload-secret", 10*time.Minute, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: artifacts.MaxUploadBytes * 2})
	apphttp.Router(app, apphttp.RouterDeps{
		Resolver:       tenancy.NewResolver(store),
		AdminTokenHash: adminHash(t, testAdminToken),
		OrgUC:          org.NewUseCase(store, nil),
		CatalogUC:      catalog.NewUseCase(store),
		PassportUC:     passport.NewUseCase(store, export.NewLinkedData(), qr.NewGenerator(), "https://dpp.example/p", nil),
		ArtifactUC:     artifacts.NewUseCase(store, local, nil),
		CbamUC:         cbam.NewUseCase(store, decimal.NewFromInt(80), nil),
		ComplianceUC:   compliance.NewUseCase(store),
		JobUC:          jobs.NewUseCase(store, csv, nil),
		ReportUC:       reports.NewUseCase(store, reports.Renderers{CbamCSV: csv, CbamXML: export.NewCbamXMLRenderer(), CbamPDF: gen, DopPDF: gen}, nil),
		AuditUC:        audit.NewUseCase(store),
		SummaryUC:      summary.NewUseCase(store),
		Uploads:        local,
	})
	return &testServer{t: t, app: app}
}

// do envía body como JSON (si no es nil) y devuelve estado y cuerpo.
func (s *testServer) do(method, path string, headers map[string]string, body any) (*http.Response, []byte) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return s.send(req)
}

func (s *testServer) send(req *http.Request) (*http.Response, []byte) {
	s.t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, out
}

func (s *testServer) admin(method, path string, body any) (*http.Response, []byte) {
	return s.do(method, path, map[string]string{apphttp.HeaderAdminToken: testAdminToken}, body)
}

func (s *testServer) as(key, method, path string, body any) (*http.Response, []byte) {
	return s.do(method, path, map[string]string{apphttp.HeaderAPIKey: key}, body)
}

// newTenant crea una organización vía rutas administrativas y devuelve una API key nueva.
func (s *testServer) newTenant(name string) (orgID, key string) {
	s.t.Helper()
	resp, body := s.admin(http.MethodPost, "/api/orgs", map[string]any{"name": name})
	require.Equal(s.t, fiber.StatusCreated, resp.StatusCode, string(body))
	orgID = jsonMap(s.t, body)["id"].(string)

	resp, body = s.admin(http.MethodPost, "/api/keys", map[string]any{"org_id": orgID, "name": "ci"})
	require.Equal(s.t, fiber.StatusCreated, resp.StatusCode, string(body))
	key = jsonMap(s.t, body)["key"].(string)
	require.NotEmpty(s.t, key)
	return orgID, key
}

func jsonMap(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "cuerpo: %s", body)
	return out
}

func jsonList(t *testing.T, body []byte) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.Unmarshal(body, &out), "cuerpo: %s", body)
	return out
}

func passportBody(serial string) map[string]any {
	return map[string]any{
		"manufacturer_name":           "Acme Cells",
		"manufacturer_address":        "Calle 1, Bogotá",
		"battery_model":               "X1",
		"battery_category":            "ev",
		"manufacturing_date":          "2026-03-01",
		"manufacturing_place":         "Medellín",
		"serial_number":               serial,
		"gtin":                        "04012345678901",
		"battery_weight_kg":           320,
		"carbon_footprint_kg_per_kwh": 61.5,
		"rated_capacity_kwh":          75,
		"restricted_data":             map[string]any{"supplier_contract": "C-9"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Pasaportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PasaporteYVistasPublicas(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")

	resp, body := s.as(key, http.MethodPost, "/api/passports", passportBody("SN-1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	id := jsonMap(t, body)["id"].(string)

	resp, body = s.as(key, http.MethodGet, "/api/passports/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "C-9", jsonMap(t, body)["restricted_data"].(map[string]any)["supplier_contract"])

	// La vista pública no requiere credencial ni expone datos restringidos.
	resp, body = s.do(http.MethodGet, "/api/passports/"+id+"/public", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	pub := jsonMap(t, body)
	assert.NotContains(t, pub, "restricted_data")
	assert.Equal(t, "https://dpp.example/p/"+id, pub["public_url"])

	resp, body = s.do(http.MethodGet, "/api/passports/"+id+"/jsonld", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/ld+json")
	assert.Equal(t, "Product", jsonMap(t, body)["@type"])

	resp, body = s.do(http.MethodGet, "/api/passports/"+id+"/qr", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, _ = s.do(http.MethodGet, "/api/passports/no-existe/qr", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_ValidacionListaTodosLosCampos(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")

	body := passportBody("SN-1")
	delete(body, "manufacturer_name")
	delete(body, "gtin")
	resp, out := s.as(key, http.MethodPost, "/api/passports", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	e := decodeErrorBody(t, out)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.ElementsMatch(t, []string{"manufacturer_name", "gtin"}, e.Fields)

	resp, out = s.do(http.MethodPost, "/api/passports", map[string]string{apphttp.HeaderAPIKey: key, fiber.HeaderContentType: fiber.MIMEApplicationJSON}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(out))
}

func TestRouter_AislamientoEntreOrganizaciones(t *testing.T) {
	s := newTestServer(t)
	_, keyA := s.newTenant("Acme")
	_, keyB := s.newTenant("Beta")

	_, body := s.as(keyA, http.MethodPost, "/api/passports", passportBody("SN-1"))
	id := jsonMap(t, body)["id"].(string)

	resp, out := s.as(keyB, http.MethodGet, "/api/passports/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeErrorBody(t, out).Code)

	resp, _ = s.as(keyB, http.MethodPatch, "/api/passports/"+id, map[string]any{"battery_status": "repurposed"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, out = s.as(keyB, http.MethodGet, "/api/passports", nil)
	assert.Empty(t, jsonList(t, out))

	// El número de serie es único entre organizaciones.
	resp, out = s.as(keyB, http.MethodPost, "/api/passports", passportBody("SN-1"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeErrorBody(t, out).Code)
}

func TestRouter_InstanciarDesdePlantilla(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")

	resp, body := s.as(key, http.MethodPost, "/api/catalog/templates", map[string]any{
		"name":                        "Pack EV 50",
		"manufacturer_name":           "Acme Cells",
		"manufacturer_address":        "Calle 1",
		"battery_category":            "ev",
		"rated_capacity_kwh":          50,
		"battery_weight_kg":           300,
		"carbon_footprint_kg_per_kwh": 60,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	tplID := jsonMap(t, body)["id"].(string)

	resp, body = s.as(key, http.MethodPost, "/api/catalog/templates/"+tplID+"/passports", map[string]any{
		"serial_number":       "SN-T1",
		"manufacturing_date":  "2026-05-01",
		"manufacturing_place": "Cali",
		"gtin":                "04012345678901",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	p := jsonMap(t, body)
	assert.EqualValues(t, 50, p["rated_capacity_kwh"])
	assert.Equal(t, tplID, p["template_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Credenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_KeyRevocadaDeja401(t *testing.T) {
	s := newTestServer(t)
	orgID, key := s.newTenant("Acme")

	resp, _ := s.as(key, http.MethodGet, "/api/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body := s.admin(http.MethodGet, "/api/keys?org_id="+orgID, nil)
	keys := jsonList(t, body)
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0].(map[string]any), "key")
	keyID := keys[0].(map[string]any)["id"].(string)

	resp, _ = s.admin(http.MethodPost, "/api/keys/"+keyID+"/revoke", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = s.as(key, http.MethodGet, "/api/summary", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RutasAdminRequierenToken(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(http.MethodGet, "/api/orgs", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.admin(http.MethodPost, "/api/orgs", map[string]any{"name": "Acme"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, out := s.admin(http.MethodPost, "/api/orgs", map[string]any{"name": "Acme"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, string(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// CBAM
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CbamDeclaracionYExportaciones(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")

	resp, body := s.as(key, http.MethodPost, "/api/cbam/declarations", map[string]any{
		"period": "2026-Q3",
		"items": []map[string]any{
			{"cn_code": "99990000", "product_description": "Tubos", "quantity_tonnes": 10, "default_emission_factor": 2, "supplier_name": "Aceros Núñez", "country_of_origin": "CO"},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	d := jsonMap(t, body)
	id := d["id"].(string)
	assert.Equal(t, "draft", d["status"])
	assert.True(t, decimalField(t, d["total_emissions"]).Equal(decimal.NewFromInt(20)))
	assert.True(t, decimalField(t, d["certificate_cost_estimate"]).Equal(decimal.NewFromInt(1600)))

	resp, body = s.as(key, http.MethodGet, "/api/cbam/declarations/"+id+"/export/csv", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "cbam_"+id+".csv")
	assert.Contains(t, string(body), "Aceros Núñez")
	assert.Contains(t, string(body), "1600.00")

	resp, body = s.as(key, http.MethodGet, "/api/cbam/declarations/"+id+"/export/csv?encoding=latin1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "iso-8859-1")
	assert.Contains(t, string(body), "Aceros N\xfa\xf1ez")

	resp, body = s.as(key, http.MethodGet, "/api/cbam/declarations/"+id+"/export/xml", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<QReport")

	resp, body = s.as(key, http.MethodGet, "/api/cbam/declarations/"+id+"/export/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = s.as(key, http.MethodGet, "/api/cbam/declarations/"+id+"/export/json", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id, jsonMap(t, body)["id"])

	resp, body = s.as(key, http.MethodPost, "/api/cbam/declarations/"+id+"/status", map[string]any{"status": "submitted"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "submitted", jsonMap(t, body)["status"])

	resp, body = s.as(key, http.MethodGet, "/api/cbam/factors/builtin", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, jsonList(t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Jobs, artefactos y audit
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_JobFallidoResponde200(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")

	resp, body := s.as(key, http.MethodPost, "/api/jobs/imports", map[string]any{"kind": "unicorns"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	id := jsonMap(t, body)["id"].(string)

	resp, body = s.as(key, http.MethodPost, "/api/jobs/imports/"+id+"/run", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	job := jsonMap(t, body)
	assert.Equal(t, "failed", job["status"])
	assert.Contains(t, job["error"], "unicorns")

	// Un job de importación no es visible como exportación.
	resp, _ = s.as(key, http.MethodGet, "/api/jobs/exports/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, body = s.as(key, http.MethodGet, "/api/summary", nil)
	assert.EqualValues(t, 1, jsonMap(t, body)["failed_jobs"])
}

func TestRouter_SubidaMultipartYPrefirmada(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")
	_, body := s.as(key, http.MethodPost, "/api/passports", passportBody("SN-1"))
	pid := jsonMap(t, body)["id"].(string)

	// ── Multipart ──
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("kind", "test_report"))
	fw, err := mw.CreateFormFile("file", "ensayo.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.7 contenido"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/artifacts/passport/"+pid+"/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(apphttp.HeaderAPIKey, key)
	resp, body := s.send(req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	art := jsonMap(t, body)
	assert.Equal(t, "ensayo.pdf", art["title"])
	assert.True(t, strings.HasSuffix(art["storage_key"].(string), "ensayo.pdf"))

	// ── Prefirmada ──
	resp, body = s.as(key, http.MethodPost, "/api/artifacts/passport/"+pid+"/presign", map[string]any{"file_name": "sds.pdf"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	pre := jsonMap(t, body)
	uploadPath := strings.TrimPrefix(pre["upload_url"].(string), testAPIURL)
	require.True(t, strings.HasPrefix(uploadPath, "/api/uploads/"))

	req = httptest.NewRequest(http.MethodPut, uploadPath, strings.NewReader("hoja de seguridad"))
	req.Header.Set(fiber.HeaderContentType, "application/pdf")
	resp, body = s.send(req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, pre["storage_key"], jsonMap(t, body)["storage_key"])

	req = httptest.NewRequest(http.MethodPut, "/api/uploads/token-falso", strings.NewReader("x"))
	resp, _ = s.send(req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	_, body = s.as(key, http.MethodGet, "/api/artifacts/passport/"+pid, nil)
	assert.Len(t, jsonList(t, body), 1)
}

func TestRouter_AuditRegistraOperaciones(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")
	s.as(key, http.MethodPost, "/api/catalog/components", map[string]any{"name": "Celda NMC", "kind": "cell"})

	resp, body := s.as(key, http.MethodGet, "/api/audit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	entries := jsonList(t, body)
	require.NotEmpty(t, entries)
	assert.Equal(t, "api_key:ci", entries[0].(map[string]any)["actor"])
}

// decimalField shopspring/decimal serializa como string JSON.
func decimalField(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "se esperaba string, llegó %T", v)
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decodeErrorBody(t *testing.T, body []byte) (out struct {
	Code   string   `json:"code"`
	Fields []string `json:"fields"`
}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, &out), "cuerpo: %s", body)
	return out
}

func TestRouter_IDMalFormadoEsNotFound(t *testing.T) {
	s := newTestServer(t)
	_, key := s.newTenant("Acme")

	for _, path := range []string{
		"/api/passports/abc",
		"/api/catalog/templates/abc",
		"/api/cbam/declarations/abc",
		"/api/compliance/cra/products/abc",
		"/api/jobs/imports/abc",
	} {
		resp, out := s.as(key, http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", decodeErrorBody(t, out).Code, path)
	}
	resp, _ := s.do(http.MethodGet, "/api/passports/abc/public", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Un supplier_id mal escrito se trata como proveedor desconocido.
	resp, body := s.as(key, http.MethodPost, "/api/cbam/declarations", map[string]any{
		"period": "2026-Q3",
		"items": []map[string]any{
			{"cn_code": "72081000", "quantity_tonnes": 1, "supplier_id": "no-es-un-uuid", "supplier_name": "Aceros"},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	items := jsonMap(t, body)["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Empty(t, item["supplier_id"])
	assert.Equal(t, "Aceros", item["supplier_name"])
}
