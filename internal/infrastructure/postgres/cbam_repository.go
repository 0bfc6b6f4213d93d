package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.CbamRepository = (*CbamRepo)(nil)

// CbamRepo declaraciones, ítems, factores y proveedores CBAM sobre PostgreSQL.
// Los NUMERIC se leen y escriben como decimal.Decimal gracias al codec registrado en NewPool.
type CbamRepo struct {
	q Querier
}

// NewCbamRepository construye el adaptador.
func NewCbamRepository(q Querier) *CbamRepo {
	return &CbamRepo{q: q}
}

const declarationColumns = `id, COALESCE(org_id::text, ''), period, status, certificate_price_per_tonne, price_pinned,
	total_emissions, certificate_cost_estimate, created_at, updated_at`

const itemColumns = `id, COALESCE(org_id::text, ''), declaration_id, cn_code, product_description, quantity_tonnes,
	default_emission_factor, verified_emission_factor, COALESCE(supplier_id::text, ''), supplier_name,
	country_of_origin, calculated_emissions, created_at`

func scanDeclaration(row pgx.Row) (*entity.CbamDeclaration, error) {
	var d entity.CbamDeclaration
	err := row.Scan(&d.ID, &d.OrgID, &d.Period, &d.Status, &d.CertificatePricePerTonne, &d.PricePinned,
		&d.TotalEmissions, &d.CertificateCostEstimate, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func scanItem(row pgx.Rows) (*entity.CbamItem, error) {
	var i entity.CbamItem
	return &i, row.Scan(&i.ID, &i.OrgID, &i.DeclarationID, &i.CNCode, &i.ProductDescription, &i.QuantityTonnes,
		&i.DefaultEmissionFactor, &i.VerifiedEmissionFactor, &i.SupplierID, &i.SupplierName,
		&i.CountryOfOrigin, &i.CalculatedEmissions, &i.CreatedAt)
}

// CreateDeclaration inserta cabecera e ítems; debe ejecutarse dentro de la tx del TxRunner.
func (r *CbamRepo) CreateDeclaration(ctx context.Context, d *entity.CbamDeclaration) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cbam_declarations (id, org_id, period, status, certificate_price_per_tonne, price_pinned,
			total_emissions, certificate_cost_estimate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, nullID(d.OrgID), d.Period, d.Status, d.CertificatePricePerTonne, d.PricePinned,
		d.TotalEmissions, d.CertificateCostEstimate, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert cbam declaration", err)
	}
	for _, i := range d.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO cbam_items (id, org_id, declaration_id, cn_code, product_description, quantity_tonnes,
				default_emission_factor, verified_emission_factor, supplier_id, supplier_name,
				country_of_origin, calculated_emissions, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			i.ID, nullID(i.OrgID), i.DeclarationID, i.CNCode, i.ProductDescription, i.QuantityTonnes,
			i.DefaultEmissionFactor, i.VerifiedEmissionFactor, nullID(i.SupplierID), i.SupplierName,
			i.CountryOfOrigin, i.CalculatedEmissions, i.CreatedAt,
		)
		if err != nil {
			return writeErr("insert cbam item", err)
		}
	}
	return nil
}

func (r *CbamRepo) loadItems(ctx context.Context, d *entity.CbamDeclaration) error {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM cbam_items WHERE declaration_id = $1 ORDER BY created_at, id`, d.ID)
	if err != nil {
		return fmt.Errorf("list cbam items: %w", err)
	}
	items, err := collect(rows, "cbam item", scanItem)
	if err != nil {
		return err
	}
	d.Items = items
	return nil
}

// GetDeclaration carga la declaración y sus ítems.
func (r *CbamRepo) GetDeclaration(ctx context.Context, id string) (*entity.CbamDeclaration, error) {
	if !validID(id) {
		return nil, nil
	}
	d, err := scanDeclaration(r.q.QueryRow(ctx, `SELECT `+declarationColumns+` FROM cbam_declarations WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.CbamDeclaration]("get cbam declaration", err)
	}
	if err := r.loadItems(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListDeclarations declaraciones de la organización con sus ítems, más reciente primero.
func (r *CbamRepo) ListDeclarations(ctx context.Context, orgID string) ([]*entity.CbamDeclaration, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+declarationColumns+` FROM cbam_declarations WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list cbam declarations: %w", err)
	}
	list, err := collect(rows, "cbam declaration", func(row pgx.Rows) (*entity.CbamDeclaration, error) { return scanDeclaration(row) })
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		if err := r.loadItems(ctx, d); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateDeclaration actualiza estado, precio y agregados.
func (r *CbamRepo) UpdateDeclaration(ctx context.Context, d *entity.CbamDeclaration) error {
	_, err := r.q.Exec(ctx, `
		UPDATE cbam_declarations SET status = $2, certificate_price_per_tonne = $3, price_pinned = $4,
			total_emissions = $5, certificate_cost_estimate = $6, updated_at = $7
		WHERE id = $1`,
		d.ID, d.Status, d.CertificatePricePerTonne, d.PricePinned, d.TotalEmissions, d.CertificateCostEstimate, d.UpdatedAt,
	)
	return writeErr("update cbam declaration", err)
}

// UpdateItem reescribe factores y emisiones calculadas de un ítem.
func (r *CbamRepo) UpdateItem(ctx context.Context, i *entity.CbamItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE cbam_items SET default_emission_factor = $2, verified_emission_factor = $3, calculated_emissions = $4
		WHERE id = $1`,
		i.ID, i.DefaultEmissionFactor, i.VerifiedEmissionFactor, i.CalculatedEmissions,
	)
	return writeErr("update cbam item", err)
}

// CreateFactor persiste un factor. Prefijo repetido en la organización -> domain.ErrConflict.
func (r *CbamRepo) CreateFactor(ctx context.Context, f *entity.CbamFactor) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO cbam_factors (id, org_id, cn_prefix, emission_factor, source, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, nullID(f.OrgID), f.CNPrefix, f.EmissionFactor, f.Source, f.CreatedAt,
	)
	return writeErr("insert cbam factor", err)
}

const factorColumns = `id, COALESCE(org_id::text, ''), cn_prefix, emission_factor, source, created_at`

func scanFactor(row pgx.Row) (*entity.CbamFactor, error) {
	var f entity.CbamFactor
	return &f, row.Scan(&f.ID, &f.OrgID, &f.CNPrefix, &f.EmissionFactor, &f.Source, &f.CreatedAt)
}

// ListFactors tabla de factores de la organización.
func (r *CbamRepo) ListFactors(ctx context.Context, orgID string) ([]*entity.CbamFactor, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+factorColumns+` FROM cbam_factors WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list cbam factors: %w", err)
	}
	return collect(rows, "cbam factor", func(row pgx.Rows) (*entity.CbamFactor, error) { return scanFactor(row) })
}

// FactorByPrefix factor de la organización para el prefijo CN.
func (r *CbamRepo) FactorByPrefix(ctx context.Context, orgID, cnPrefix string) (*entity.CbamFactor, error) {
	f, err := scanFactor(r.q.QueryRow(ctx,
		`SELECT `+factorColumns+` FROM cbam_factors WHERE org_id = $1 AND cn_prefix = $2`, orgID, cnPrefix))
	if err != nil {
		return notFound[entity.CbamFactor]("get cbam factor", err)
	}
	return f, nil
}

const supplierColumns = `id, COALESCE(org_id::text, ''), name, country, contact, default_emission_factor, created_at`

func scanSupplier(row pgx.Row) (*entity.CbamSupplier, error) {
	var s entity.CbamSupplier
	return &s, row.Scan(&s.ID, &s.OrgID, &s.Name, &s.Country, &s.Contact, &s.DefaultEmissionFactor, &s.CreatedAt)
}

// CreateSupplier persiste un proveedor.
func (r *CbamRepo) CreateSupplier(ctx context.Context, s *entity.CbamSupplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO cbam_suppliers (id, org_id, name, country, contact, default_emission_factor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, nullID(s.OrgID), s.Name, s.Country, s.Contact, s.DefaultEmissionFactor, s.CreatedAt,
	)
	return writeErr("insert cbam supplier", err)
}

// GetSupplier obtiene un proveedor por ID.
func (r *CbamRepo) GetSupplier(ctx context.Context, id string) (*entity.CbamSupplier, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM cbam_suppliers WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.CbamSupplier]("get cbam supplier", err)
	}
	return s, nil
}

// ListSuppliers proveedores de la organización.
func (r *CbamRepo) ListSuppliers(ctx context.Context, orgID string) ([]*entity.CbamSupplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM cbam_suppliers WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list cbam suppliers: %w", err)
	}
	return collect(rows, "cbam supplier", func(row pgx.Rows) (*entity.CbamSupplier, error) { return scanSupplier(row) })
}
