package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/passport-api/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema crea las tablas que falten. Lo invoca cmd/bootstrap con -schema.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}

// rlsTables tablas con columna org_id protegidas por política de fila.
// organizations, users y api_keys quedan fuera: el lookup de credenciales ocurre antes de conocer la organización.
var rlsTables = []string{
	"components",
	"product_templates",
	"template_components",
	"battery_passports",
	"restricted_artifacts",
	"audit_logs",
	"jobs",
	"cbam_declarations",
	"cbam_items",
	"cbam_factors",
	"cbam_suppliers",
	"cra_products",
	"eudr_suppliers",
	"ai_systems",
	"ai_incidents",
	"epd_records",
	"nis2_attestations",
}

// EnsureRLSPolicies habilita RLS y crea <tabla>_org_policy donde no exista. Las filas sin organización
// siguen visibles. Best-effort: cada fallo se registra como warning y se continúa con la siguiente tabla.
// Devuelve cuántas tablas quedaron protegidas.
func EnsureRLSPolicies(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) int {
	ok := 0
	for _, table := range rlsTables {
		if err := enableRLS(ctx, pool, table); err != nil {
			log.Warn().Err(err).Str("table", table).Msg("postgres: política RLS no aplicada")
			continue
		}
		ok++
	}
	log.Info().Int("tables", ok).Msg("postgres: políticas RLS verificadas")
	return ok
}

func enableRLS(ctx context.Context, pool *pgxpool.Pool, table string) error {
	stmts := []string{
		fmt.Sprintf(`ALTER TABLE IF EXISTS %s ENABLE ROW LEVEL SECURITY`, table),
		fmt.Sprintf(`ALTER TABLE IF EXISTS %s FORCE ROW LEVEL SECURITY`, table),
		fmt.Sprintf(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_policies
        WHERE schemaname = current_schema() AND tablename = '%[1]s' AND policyname = '%[1]s_org_policy'
    ) THEN
        CREATE POLICY %[1]s_org_policy ON %[1]s
            USING (org_id IS NULL OR org_id::text = current_setting('%[2]s', true))
            WITH CHECK (org_id IS NULL OR org_id::text = current_setting('%[2]s', true));
    END IF;
END
$$`, table, tenantSetting),
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
