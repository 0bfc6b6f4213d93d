package http

import (
	"github.com/gofiber/fiber/v2"

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
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver       scopeResolver
	AdminTokenHash string

	OrgUC        *org.UseCase
	CatalogUC    *catalog.UseCase
	PassportUC   *passport.UseCase
	ArtifactUC   *artifacts.UseCase
	CbamUC       *cbam.UseCase
	ComplianceUC *compliance.UseCase
	JobUC        *jobs.UseCase
	ReportUC     *reports.UseCase
	AuditUC      *audit.UseCase
	SummaryUC    *summary.UseCase

	// Uploads solo con almacenamiento local; nil deshabilita PUT /api/uploads/:token.
	Uploads tokenWriter
}

// Router registra las rutas de la API. Las rutas públicas van primero: el middleware de
// cada grupo solo corre para las rutas registradas después de él.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	passportHandler := NewPassportHandler(deps.PassportUC)

	// Público (escaneo del QR)
	api.Get("/passports/:id/public", passportHandler.Public)
	api.Get("/passports/:id/jsonld", passportHandler.JSONLD)
	api.Get("/passports/:id/qr", passportHandler.QR)
	if deps.Uploads != nil {
		api.Put("/uploads/:token", NewUploadHandler(deps.Uploads).Put)
	}

	// Administración (X-Admin-Token)
	admin := AdminMiddleware(deps.AdminTokenHash)
	orgHandler := NewOrgHandler(deps.OrgUC)
	orgs := api.Group("/orgs", admin)
	orgs.Post("/", orgHandler.CreateOrg)
	orgs.Get("/", orgHandler.ListOrgs)
	orgs.Post("/:id/users", orgHandler.CreateUser)
	orgs.Get("/:id/users", orgHandler.ListUsers)
	keys := api.Group("/keys", admin)
	keys.Post("/", orgHandler.IssueKey)
	keys.Get("/", orgHandler.ListKeys)
	keys.Post("/:id/revoke", orgHandler.RevokeKey)

	// Rutas de la organización (X-API-Key)
	tenantMW := TenantMiddleware(deps.Resolver)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	cat := api.Group("/catalog", tenantMW)
	cat.Post("/components", catalogHandler.CreateComponent)
	cat.Get("/components", catalogHandler.ListComponents)
	cat.Get("/components/:id", catalogHandler.GetComponent)
	cat.Patch("/components/:id", catalogHandler.UpdateComponent)
	cat.Post("/templates", catalogHandler.CreateTemplate)
	cat.Get("/templates", catalogHandler.ListTemplates)
	cat.Get("/templates/:id", catalogHandler.GetTemplate)
	cat.Patch("/templates/:id", catalogHandler.UpdateTemplate)
	cat.Post("/templates/:id/components", catalogHandler.AttachComponent)
	cat.Get("/templates/:id/components", catalogHandler.ListTemplateComponents)
	cat.Post("/templates/:id/passports", passportHandler.Instantiate)

	passports := api.Group("/passports", tenantMW)
	passports.Post("/", passportHandler.Create)
	passports.Get("/", passportHandler.List)
	passports.Get("/:id", passportHandler.Get)
	passports.Patch("/:id", passportHandler.Update)

	artifactHandler := NewArtifactHandler(deps.ArtifactUC)
	arts := api.Group("/artifacts", tenantMW)
	arts.Post("/", artifactHandler.Create)
	arts.Get("/", artifactHandler.List)
	arts.Get("/passport/:id", artifactHandler.ListByPassport)
	arts.Post("/passport/:id/upload", artifactHandler.Upload)
	arts.Post("/passport/:id/presign", artifactHandler.Presign)

	cbamHandler := NewCbamHandler(deps.CbamUC, deps.ReportUC)
	cb := api.Group("/cbam", tenantMW)
	cb.Post("/declarations", cbamHandler.CreateDeclaration)
	cb.Get("/declarations", cbamHandler.ListDeclarations)
	cb.Get("/declarations/:id", cbamHandler.GetDeclaration)
	cb.Post("/declarations/:id/status", cbamHandler.UpdateStatus)
	cb.Post("/declarations/:id/recompute", cbamHandler.Recompute)
	cb.Get("/declarations/:id/export/csv", cbamHandler.ExportCSV)
	cb.Get("/declarations/:id/export/pdf", cbamHandler.ExportPDF)
	cb.Get("/declarations/:id/export/xml", cbamHandler.ExportXML)
	cb.Get("/declarations/:id/export/json", cbamHandler.ExportJSON)
	cb.Post("/factors", cbamHandler.CreateFactor)
	cb.Get("/factors", cbamHandler.ListFactors)
	cb.Get("/factors/builtin", cbamHandler.BuiltinFactors)
	cb.Post("/suppliers", cbamHandler.CreateSupplier)
	cb.Get("/suppliers", cbamHandler.ListSuppliers)

	complianceHandler := NewComplianceHandler(deps.ComplianceUC)
	comp := api.Group("/compliance", tenantMW)
	comp.Post("/cra/products", complianceHandler.CreateCraProduct)
	comp.Get("/cra/products", complianceHandler.ListCraProducts)
	comp.Get("/cra/products/:id", complianceHandler.GetCraProduct)
	comp.Post("/eudr/suppliers", complianceHandler.CreateEudrSupplier)
	comp.Get("/eudr/suppliers", complianceHandler.ListEudrSuppliers)
	comp.Post("/ai/systems", complianceHandler.CreateAiSystem)
	comp.Get("/ai/systems", complianceHandler.ListAiSystems)
	comp.Post("/ai/incidents", complianceHandler.CreateAiIncident)
	comp.Get("/ai/incidents", complianceHandler.ListAiIncidents)
	comp.Post("/epd/records", complianceHandler.CreateEpdRecord)
	comp.Get("/epd/records", complianceHandler.ListEpdRecords)
	comp.Post("/nis2/attestations", complianceHandler.CreateNis2Attestation)
	comp.Get("/nis2/attestations", complianceHandler.ListNis2Attestations)
	comp.Get("/export", complianceHandler.Bundle)

	jobHandler := NewJobHandler(deps.JobUC)
	jb := api.Group("/jobs", tenantMW)
	jb.Post("/imports", jobHandler.CreateImport)
	jb.Get("/imports", jobHandler.ListImports)
	jb.Get("/imports/:id", jobHandler.GetImport)
	jb.Post("/imports/:id/run", jobHandler.RunImport)
	jb.Post("/exports", jobHandler.CreateExport)
	jb.Get("/exports", jobHandler.ListExports)
	jb.Get("/exports/:id", jobHandler.GetExport)
	jb.Post("/exports/:id/run", jobHandler.RunExport)

	reportHandler := NewReportHandler(deps.ReportUC, deps.AuditUC, deps.SummaryUC)
	api.Get("/dop/templates/:id/pdf", tenantMW, reportHandler.DopPDF)
	api.Get("/audit", tenantMW, reportHandler.Audit)
	api.Get("/summary", tenantMW, reportHandler.Summary)
}
