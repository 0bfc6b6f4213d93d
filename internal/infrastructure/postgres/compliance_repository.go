package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.ComplianceRepository = (*ComplianceRepo)(nil)

// ComplianceRepo registros regulatorios adyacentes (CRA, EUDR, AI Act, EPD, NIS2).
type ComplianceRepo struct {
	q Querier
}

// NewComplianceRepository construye el adaptador.
func NewComplianceRepository(q Querier) *ComplianceRepo {
	return &ComplianceRepo{q: q}
}

// ── CRA ──────────────────────────────────────────────────────────────────────

const craColumns = `id, COALESCE(org_id::text, ''), name, classification, version, sbom_url, support_end_date, created_at`

func scanCra(row pgx.Row) (*entity.CraProduct, error) {
	var p entity.CraProduct
	return &p, row.Scan(&p.ID, &p.OrgID, &p.Name, &p.Classification, &p.Version, &p.SbomURL, &p.SupportEndDate, &p.CreatedAt)
}

func (r *ComplianceRepo) CreateCraProduct(ctx context.Context, p *entity.CraProduct) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO cra_products (id, org_id, name, classification, version, sbom_url, support_end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, nullID(p.OrgID), p.Name, p.Classification, p.Version, p.SbomURL, p.SupportEndDate, p.CreatedAt,
	)
	return writeErr("insert cra product", err)
}

func (r *ComplianceRepo) GetCraProduct(ctx context.Context, id string) (*entity.CraProduct, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanCra(r.q.QueryRow(ctx, `SELECT `+craColumns+` FROM cra_products WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.CraProduct]("get cra product", err)
	}
	return p, nil
}

func (r *ComplianceRepo) ListCraProducts(ctx context.Context, orgID string) ([]*entity.CraProduct, error) {
	rows, err := r.q.Query(ctx, `SELECT `+craColumns+` FROM cra_products WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list cra products: %w", err)
	}
	return collect(rows, "cra product", func(row pgx.Rows) (*entity.CraProduct, error) { return scanCra(row) })
}

// ── EUDR ─────────────────────────────────────────────────────────────────────

func (r *ComplianceRepo) CreateEudrSupplier(ctx context.Context, s *entity.EudrSupplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO eudr_suppliers (id, org_id, name, country, commodity, geolocation_ref, risk_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, nullID(s.OrgID), s.Name, s.Country, s.Commodity, s.GeolocationRef, s.RiskLevel, s.CreatedAt,
	)
	return writeErr("insert eudr supplier", err)
}

func (r *ComplianceRepo) ListEudrSuppliers(ctx context.Context, orgID string) ([]*entity.EudrSupplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(org_id::text, ''), name, country, commodity, geolocation_ref, risk_level, created_at
		FROM eudr_suppliers WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list eudr suppliers: %w", err)
	}
	return collect(rows, "eudr supplier", func(row pgx.Rows) (*entity.EudrSupplier, error) {
		var s entity.EudrSupplier
		return &s, row.Scan(&s.ID, &s.OrgID, &s.Name, &s.Country, &s.Commodity, &s.GeolocationRef, &s.RiskLevel, &s.CreatedAt)
	})
}

// ── AI Act ───────────────────────────────────────────────────────────────────

const aiSystemColumns = `id, COALESCE(org_id::text, ''), name, risk_level, purpose, provider, created_at`

func scanAiSystem(row pgx.Row) (*entity.AiSystem, error) {
	var s entity.AiSystem
	return &s, row.Scan(&s.ID, &s.OrgID, &s.Name, &s.RiskLevel, &s.Purpose, &s.Provider, &s.CreatedAt)
}

func (r *ComplianceRepo) CreateAiSystem(ctx context.Context, s *entity.AiSystem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ai_systems (id, org_id, name, risk_level, purpose, provider, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, nullID(s.OrgID), s.Name, s.RiskLevel, s.Purpose, s.Provider, s.CreatedAt,
	)
	return writeErr("insert ai system", err)
}

func (r *ComplianceRepo) GetAiSystem(ctx context.Context, id string) (*entity.AiSystem, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanAiSystem(r.q.QueryRow(ctx, `SELECT `+aiSystemColumns+` FROM ai_systems WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.AiSystem]("get ai system", err)
	}
	return s, nil
}

func (r *ComplianceRepo) ListAiSystems(ctx context.Context, orgID string) ([]*entity.AiSystem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+aiSystemColumns+` FROM ai_systems WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list ai systems: %w", err)
	}
	return collect(rows, "ai system", func(row pgx.Rows) (*entity.AiSystem, error) { return scanAiSystem(row) })
}

func (r *ComplianceRepo) CreateAiIncident(ctx context.Context, i *entity.AiIncident) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ai_incidents (id, org_id, system_id, severity, description, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		i.ID, nullID(i.OrgID), i.SystemID, i.Severity, i.Description, i.OccurredAt, i.CreatedAt,
	)
	return writeErr("insert ai incident", err)
}

func (r *ComplianceRepo) ListAiIncidents(ctx context.Context, orgID string) ([]*entity.AiIncident, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(org_id::text, ''), system_id, severity, description, occurred_at, created_at
		FROM ai_incidents WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list ai incidents: %w", err)
	}
	return collect(rows, "ai incident", func(row pgx.Rows) (*entity.AiIncident, error) {
		var i entity.AiIncident
		return &i, row.Scan(&i.ID, &i.OrgID, &i.SystemID, &i.Severity, &i.Description, &i.OccurredAt, &i.CreatedAt)
	})
}

// ── EPD ──────────────────────────────────────────────────────────────────────

func (r *ComplianceRepo) CreateEpdRecord(ctx context.Context, e *entity.EpdRecord) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO epd_records (id, org_id, product_name, pcr_reference, gwp_total, valid_until, document_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, nullID(e.OrgID), e.ProductName, e.PCRReference, e.GWPTotal, e.ValidUntil, e.DocumentURL, e.CreatedAt,
	)
	return writeErr("insert epd record", err)
}

func (r *ComplianceRepo) ListEpdRecords(ctx context.Context, orgID string) ([]*entity.EpdRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(org_id::text, ''), product_name, pcr_reference, gwp_total, valid_until, document_url, created_at
		FROM epd_records WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list epd records: %w", err)
	}
	return collect(rows, "epd record", func(row pgx.Rows) (*entity.EpdRecord, error) {
		var e entity.EpdRecord
		return &e, row.Scan(&e.ID, &e.OrgID, &e.ProductName, &e.PCRReference, &e.GWPTotal, &e.ValidUntil, &e.DocumentURL, &e.CreatedAt)
	})
}

// ── NIS2 ─────────────────────────────────────────────────────────────────────

func (r *ComplianceRepo) CreateNis2Attestation(ctx context.Context, a *entity.Nis2Attestation) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO nis2_attestations (id, org_id, supplier_name, status, attested_at, evidence_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, nullID(a.OrgID), a.SupplierName, a.Status, a.AttestedAt, a.EvidenceURL, a.CreatedAt,
	)
	return writeErr("insert nis2 attestation", err)
}

func (r *ComplianceRepo) ListNis2Attestations(ctx context.Context, orgID string) ([]*entity.Nis2Attestation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(org_id::text, ''), supplier_name, status, attested_at, evidence_url, created_at
		FROM nis2_attestations WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list nis2 attestations: %w", err)
	}
	return collect(rows, "nis2 attestation", func(row pgx.Rows) (*entity.Nis2Attestation, error) {
		var a entity.Nis2Attestation
		return &a, row.Scan(&a.ID, &a.OrgID, &a.SupplierName, &a.Status, &a.AttestedAt, &a.EvidenceURL, &a.CreatedAt)
	})
}
