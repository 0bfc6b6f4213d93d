package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.PassportRepository = (*PassportRepo)(nil)

// PassportRepo implementación del puerto PassportRepository sobre PostgreSQL (usable con pool o tx).
type PassportRepo struct {
	q Querier
}

// NewPassportRepository construye el adaptador de persistencia para pasaportes.
func NewPassportRepository(q Querier) *PassportRepo {
	return &PassportRepo{q: q}
}

const passportColumns = `id, COALESCE(org_id::text, ''), COALESCE(template_id::text, ''),
	manufacturer_name, manufacturer_address, battery_model, battery_category, manufacturing_date,
	manufacturing_place, serial_number, gtin, battery_status, battery_weight_kg, carbon_footprint_kg_per_kwh,
	carbon_footprint_class, recycled_content_cobalt, recycled_content_lead, recycled_content_lithium,
	recycled_content_nickel, rated_capacity_kwh, expected_lifetime_cycles, expected_lifetime_years,
	hazardous_substances, performance_class, additional_public_data, restricted_data, end_of_life,
	component_snapshot, created_at, updated_at`

func scanPassport(row pgx.Row) (*entity.BatteryPassport, error) {
	var p entity.BatteryPassport
	err := row.Scan(&p.ID, &p.OrgID, &p.TemplateID,
		&p.ManufacturerName, &p.ManufacturerAddress, &p.BatteryModel, &p.BatteryCategory, &p.ManufacturingDate,
		&p.ManufacturingPlace, &p.SerialNumber, &p.GTIN, &p.BatteryStatus, &p.BatteryWeightKg, &p.CarbonFootprintKgPerKwh,
		&p.CarbonFootprintClass, &p.RecycledContentCobalt, &p.RecycledContentLead, &p.RecycledContentLithium,
		&p.RecycledContentNickel, &p.RatedCapacityKwh, &p.ExpectedLifetimeCycles, &p.ExpectedLifetimeYears,
		&p.HazardousSubstances, &p.PerformanceClass, &p.AdditionalPublicData, &p.RestrictedData, &p.EndOfLife,
		&p.ComponentSnapshot, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Create persiste un pasaporte. Número de serie repetido (en cualquier organización) -> domain.ErrConflict.
func (r *PassportRepo) Create(ctx context.Context, p *entity.BatteryPassport) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO battery_passports (id, org_id, template_id,
			manufacturer_name, manufacturer_address, battery_model, battery_category, manufacturing_date,
			manufacturing_place, serial_number, gtin, battery_status, battery_weight_kg, carbon_footprint_kg_per_kwh,
			carbon_footprint_class, recycled_content_cobalt, recycled_content_lead, recycled_content_lithium,
			recycled_content_nickel, rated_capacity_kwh, expected_lifetime_cycles, expected_lifetime_years,
			hazardous_substances, performance_class, additional_public_data, restricted_data, end_of_life,
			component_snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`,
		p.ID, nullID(p.OrgID), nullID(p.TemplateID),
		p.ManufacturerName, p.ManufacturerAddress, p.BatteryModel, p.BatteryCategory, p.ManufacturingDate,
		p.ManufacturingPlace, p.SerialNumber, p.GTIN, p.BatteryStatus, p.BatteryWeightKg, p.CarbonFootprintKgPerKwh,
		p.CarbonFootprintClass, p.RecycledContentCobalt, p.RecycledContentLead, p.RecycledContentLithium,
		p.RecycledContentNickel, p.RatedCapacityKwh, p.ExpectedLifetimeCycles, p.ExpectedLifetimeYears,
		p.HazardousSubstances, p.PerformanceClass, p.AdditionalPublicData, p.RestrictedData, p.EndOfLife,
		p.ComponentSnapshot, p.CreatedAt, p.UpdatedAt,
	)
	return writeErr("insert passport", err)
}

// GetByID obtiene un pasaporte por ID.
func (r *PassportRepo) GetByID(ctx context.Context, id string) (*entity.BatteryPassport, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanPassport(r.q.QueryRow(ctx, `SELECT `+passportColumns+` FROM battery_passports WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.BatteryPassport]("get passport", err)
	}
	return p, nil
}

// ListByOrg pasaportes de la organización, más reciente primero.
func (r *PassportRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.BatteryPassport, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+passportColumns+` FROM battery_passports WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list passports: %w", err)
	}
	return collect(rows, "passport", func(row pgx.Rows) (*entity.BatteryPassport, error) { return scanPassport(row) })
}

// Update reescribe los atributos editables. org_id, template_id y component_snapshot nunca cambian.
func (r *PassportRepo) Update(ctx context.Context, p *entity.BatteryPassport) error {
	_, err := r.q.Exec(ctx, `
		UPDATE battery_passports SET
			manufacturer_name = $2, manufacturer_address = $3, battery_model = $4, battery_category = $5,
			manufacturing_date = $6, manufacturing_place = $7, serial_number = $8, gtin = $9, battery_status = $10,
			battery_weight_kg = $11, carbon_footprint_kg_per_kwh = $12, carbon_footprint_class = $13,
			recycled_content_cobalt = $14, recycled_content_lead = $15, recycled_content_lithium = $16,
			recycled_content_nickel = $17, rated_capacity_kwh = $18, expected_lifetime_cycles = $19,
			expected_lifetime_years = $20, hazardous_substances = $21, performance_class = $22,
			additional_public_data = $23, restricted_data = $24, end_of_life = $25, updated_at = $26
		WHERE id = $1`,
		p.ID,
		p.ManufacturerName, p.ManufacturerAddress, p.BatteryModel, p.BatteryCategory,
		p.ManufacturingDate, p.ManufacturingPlace, p.SerialNumber, p.GTIN, p.BatteryStatus,
		p.BatteryWeightKg, p.CarbonFootprintKgPerKwh, p.CarbonFootprintClass,
		p.RecycledContentCobalt, p.RecycledContentLead, p.RecycledContentLithium,
		p.RecycledContentNickel, p.RatedCapacityKwh, p.ExpectedLifetimeCycles,
		p.ExpectedLifetimeYears, p.HazardousSubstances, p.PerformanceClass,
		p.AdditionalPublicData, p.RestrictedData, p.EndOfLife, p.UpdatedAt,
	)
	return writeErr("update passport", err)
}
