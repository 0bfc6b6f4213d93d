package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.ComponentRepository = (*ComponentRepo)(nil)
	_ repository.TemplateRepository  = (*TemplateRepo)(nil)
)

// ComponentRepo catálogo de componentes sobre PostgreSQL.
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentColumns = `id, COALESCE(org_id::text, ''), name, kind, description, specs, recycled_content,
	hazardous_substances, carbon_footprint_ref, created_at, updated_at`

func scanComponent(row pgx.Row) (*entity.Component, error) {
	var c entity.Component
	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Kind, &c.Description, &c.Specs, &c.RecycledContent,
		&c.HazardousSubstances, &c.CarbonFootprintRef, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// Create persiste un componente.
func (r *ComponentRepo) Create(ctx context.Context, c *entity.Component) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO components (id, org_id, name, kind, description, specs, recycled_content,
			hazardous_substances, carbon_footprint_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, nullID(c.OrgID), c.Name, c.Kind, c.Description, c.Specs, c.RecycledContent,
		c.HazardousSubstances, c.CarbonFootprintRef, c.CreatedAt, c.UpdatedAt,
	)
	return writeErr("insert component", err)
}

// GetByID obtiene un componente por ID (sin filtrar organización: la regla de propiedad la aplica el use case).
func (r *ComponentRepo) GetByID(ctx context.Context, id string) (*entity.Component, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanComponent(r.q.QueryRow(ctx, `SELECT `+componentColumns+` FROM components WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.Component]("get component", err)
	}
	return c, nil
}

// ListByOrg componentes de la organización, más reciente primero.
func (r *ComponentRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Component, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+componentColumns+` FROM components WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	return collect(rows, "component", func(row pgx.Rows) (*entity.Component, error) { return scanComponent(row) })
}

// Update reescribe los atributos editables. org_id nunca cambia.
func (r *ComponentRepo) Update(ctx context.Context, c *entity.Component) error {
	_, err := r.q.Exec(ctx, `
		UPDATE components SET name = $2, kind = $3, description = $4, specs = $5, recycled_content = $6,
			hazardous_substances = $7, carbon_footprint_ref = $8, updated_at = $9
		WHERE id = $1`,
		c.ID, c.Name, c.Kind, c.Description, c.Specs, c.RecycledContent,
		c.HazardousSubstances, c.CarbonFootprintRef, c.UpdatedAt,
	)
	return writeErr("update component", err)
}

// TemplateRepo plantillas y enlaces plantilla-componente sobre PostgreSQL.
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `id, COALESCE(org_id::text, ''), name, description, manufacturer_name, manufacturer_address,
	battery_model, battery_category, gtin, battery_weight_kg, rated_capacity_kwh, carbon_footprint_kg_per_kwh,
	carbon_footprint_class, recycled_content_cobalt, recycled_content_lead, recycled_content_lithium,
	recycled_content_nickel, expected_lifetime_cycles, expected_lifetime_years, hazardous_substances,
	performance_class, additional_public_data, created_at, updated_at`

func scanTemplate(row pgx.Row) (*entity.ProductTemplate, error) {
	var t entity.ProductTemplate
	err := row.Scan(&t.ID, &t.OrgID, &t.Name, &t.Description, &t.ManufacturerName, &t.ManufacturerAddress,
		&t.BatteryModel, &t.BatteryCategory, &t.GTIN, &t.BatteryWeightKg, &t.RatedCapacityKwh, &t.CarbonFootprintKgPerKwh,
		&t.CarbonFootprintClass, &t.RecycledContentCobalt, &t.RecycledContentLead, &t.RecycledContentLithium,
		&t.RecycledContentNickel, &t.ExpectedLifetimeCycles, &t.ExpectedLifetimeYears, &t.HazardousSubstances,
		&t.PerformanceClass, &t.AdditionalPublicData, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func templateInsertArgs(t *entity.ProductTemplate) []any {
	return []any{
		t.ID, nullID(t.OrgID), t.Name, t.Description, t.ManufacturerName, t.ManufacturerAddress,
		t.BatteryModel, t.BatteryCategory, t.GTIN, t.BatteryWeightKg, t.RatedCapacityKwh, t.CarbonFootprintKgPerKwh,
		t.CarbonFootprintClass, t.RecycledContentCobalt, t.RecycledContentLead, t.RecycledContentLithium,
		t.RecycledContentNickel, t.ExpectedLifetimeCycles, t.ExpectedLifetimeYears, t.HazardousSubstances,
		t.PerformanceClass, t.AdditionalPublicData, t.CreatedAt, t.UpdatedAt,
	}
}

// Create persiste una plantilla.
func (r *TemplateRepo) Create(ctx context.Context, t *entity.ProductTemplate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_templates (id, org_id, name, description, manufacturer_name, manufacturer_address,
			battery_model, battery_category, gtin, battery_weight_kg, rated_capacity_kwh, carbon_footprint_kg_per_kwh,
			carbon_footprint_class, recycled_content_cobalt, recycled_content_lead, recycled_content_lithium,
			recycled_content_nickel, expected_lifetime_cycles, expected_lifetime_years, hazardous_substances,
			performance_class, additional_public_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		templateInsertArgs(t)...,
	)
	return writeErr("insert template", err)
}

// GetByID obtiene una plantilla por ID.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.ProductTemplate, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTemplate(r.q.QueryRow(ctx, `SELECT `+templateColumns+` FROM product_templates WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.ProductTemplate]("get template", err)
	}
	return t, nil
}

// ListByOrg plantillas de la organización, más reciente primero.
func (r *TemplateRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.ProductTemplate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+templateColumns+` FROM product_templates WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return collect(rows, "template", func(row pgx.Rows) (*entity.ProductTemplate, error) { return scanTemplate(row) })
}

// Update reescribe los atributos editables. org_id nunca cambia.
func (r *TemplateRepo) Update(ctx context.Context, t *entity.ProductTemplate) error {
	_, err := r.q.Exec(ctx, `
		UPDATE product_templates SET name = $2, description = $3, manufacturer_name = $4, manufacturer_address = $5,
			battery_model = $6, battery_category = $7, gtin = $8, battery_weight_kg = $9, rated_capacity_kwh = $10,
			carbon_footprint_kg_per_kwh = $11, carbon_footprint_class = $12, recycled_content_cobalt = $13,
			recycled_content_lead = $14, recycled_content_lithium = $15, recycled_content_nickel = $16,
			expected_lifetime_cycles = $17, expected_lifetime_years = $18, hazardous_substances = $19,
			performance_class = $20, additional_public_data = $21, updated_at = $22
		WHERE id = $1`,
		t.ID, t.Name, t.Description, t.ManufacturerName, t.ManufacturerAddress,
		t.BatteryModel, t.BatteryCategory, t.GTIN, t.BatteryWeightKg, t.RatedCapacityKwh,
		t.CarbonFootprintKgPerKwh, t.CarbonFootprintClass, t.RecycledContentCobalt,
		t.RecycledContentLead, t.RecycledContentLithium, t.RecycledContentNickel,
		t.ExpectedLifetimeCycles, t.ExpectedLifetimeYears, t.HazardousSubstances,
		t.PerformanceClass, t.AdditionalPublicData, t.UpdatedAt,
	)
	return writeErr("update template", err)
}

// AddComponent persiste un enlace plantilla-componente.
func (r *TemplateRepo) AddComponent(ctx context.Context, l *entity.TemplateComponent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO template_components (id, org_id, template_id, component_id, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, nullID(l.OrgID), l.TemplateID, l.ComponentID, l.Quantity, l.Notes, l.CreatedAt,
	)
	return writeErr("insert template component", err)
}

// ListComponents enlaces de la plantilla, del más reciente al más antiguo.
func (r *TemplateRepo) ListComponents(ctx context.Context, templateID string) ([]*entity.TemplateComponent, error) {
	if !validID(templateID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(org_id::text, ''), template_id, component_id, quantity, notes, created_at
		FROM template_components WHERE template_id = $1 ORDER BY created_at DESC, id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template components: %w", err)
	}
	return collect(rows, "template component", func(row pgx.Rows) (*entity.TemplateComponent, error) {
		var l entity.TemplateComponent
		return &l, row.Scan(&l.ID, &l.OrgID, &l.TemplateID, &l.ComponentID, &l.Quantity, &l.Notes, &l.CreatedAt)
	})
}
