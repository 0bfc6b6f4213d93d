package jobs_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/jobs"
	"github.com/jhoicas/passport-api/internal/application/passport"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/export"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

var (
	orgA = tenant.New("org-a", "Acme", "k-a", "ci")
	orgB = tenant.New("org-b", "Beta", "k-b", "ci")
)

func newUseCase() (*jobs.UseCase, *memory.Store) {
	store := memory.NewStore(nil)
	return jobs.NewUseCase(store, export.NewCSVRenderer(), nil), store
}

func passportRecord(serial string) map[string]any {
	return map[string]any{
		"manufacturer_name":           "Acme Cells",
		"manufacturer_address":        "Calle 1",
		"battery_model":               "X1",
		"battery_category":            "ev",
		"manufacturing_date":          "2026-03-01",
		"manufacturing_place":         "Cali",
		"serial_number":               serial,
		"gtin":                        "04012345678901",
		"battery_weight_kg":           320.0,
		"carbon_footprint_kg_per_kwh": 61.5,
		"rated_capacity_kwh":          75.0,
		"expected_lifetime_cycles":    3000.0,
	}
}

func TestImport_ComponentesYReejecucionIdempotente(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()

	job, err := uc.Create(ctx, orgA, entity.JobDirectionImport, dto.CreateJobRequest{
		Kind: jobs.KindComponents,
		Payload: entity.JSONMap{"records": []any{
			map[string]any{"name": "Celda", "kind": "cell"},
			map[string]any{"name": "BMS", "specs": map[string]any{"channels": 16.0}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusPending, job.Status)

	done, err := uc.Run(ctx, orgA, entity.JobDirectionImport, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, done.Status)
	assert.EqualValues(t, 2, done.Result["created"])

	again, err := uc.Run(ctx, orgA, entity.JobDirectionImport, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, again.Status)
	assert.Equal(t, done.UpdatedAt, again.UpdatedAt)

	list, err := catalog.NewUseCase(store).ListComponents(ctx, orgA)
	require.NoError(t, err)
	assert.Len(t, list, 2, "la segunda ejecución no duplica registros")
}

func TestImport_TodoONada(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()

	bad := passportRecord("SN-2")
	delete(bad, "gtin")
	job, err := uc.Create(ctx, orgA, entity.JobDirectionImport, dto.CreateJobRequest{
		Kind:    jobs.KindPassports,
		Payload: entity.JSONMap{"records": []any{passportRecord("SN-1"), bad}},
	})
	require.NoError(t, err)

	failed, err := uc.Run(ctx, orgA, entity.JobDirectionImport, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "registro 1")
	assert.Contains(t, failed.Error, "gtin")
	assert.Empty(t, failed.Result)

	list, err := passport.NewUseCase(store, nil, nil, "", nil).List(ctx, orgA)
	require.NoError(t, err)
	assert.Empty(t, list, "el primer registro válido también se descarta")

	stored, err := uc.Get(ctx, orgA, entity.JobDirectionImport, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, stored.Status)
}

func TestImport_PasaportesConFecha(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()

	job, err := uc.Create(ctx, orgA, entity.JobDirectionImport, dto.CreateJobRequest{
		Kind:    jobs.KindPassports,
		Payload: entity.JSONMap{"records": []any{passportRecord("SN-1"), passportRecord("SN-2")}},
	})
	require.NoError(t, err)
	done, err := uc.Run(ctx, orgA, entity.JobDirectionImport, job.ID)
	require.NoError(t, err)
	require.Equal(t, entity.JobStatusCompleted, done.Status, done.Error)

	list, err := passport.NewUseCase(store, nil, nil, "", nil).List(ctx, orgA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-03-01", list[0].ManufacturingDate.Format(dto.DateLayout))
	require.NotNil(t, list[0].ExpectedLifetimeCycles)
	assert.Equal(t, 3000, *list[0].ExpectedLifetimeCycles)
}

func TestImport_ClaveDesconocidaFalla(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	job, err := uc.Create(ctx, orgA, entity.JobDirectionImport, dto.CreateJobRequest{
		Kind:    jobs.KindComponents,
		Payload: entity.JSONMap{"records": []any{map[string]any{"name": "Celda", "colour": "azul"}}},
	})
	require.NoError(t, err)
	failed, err := uc.Run(ctx, orgA, entity.JobDirectionImport, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "colour")
}

func TestRun_TipoDesconocido(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	for _, dir := range []string{entity.JobDirectionImport, entity.JobDirectionExport} {
		job, err := uc.Create(ctx, orgA, dir, dto.CreateJobRequest{Kind: "invoices"})
		require.NoError(t, err)
		failed, err := uc.Run(ctx, orgA, dir, job.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.JobStatusFailed, failed.Status, dir)
		assert.Contains(t, failed.Error, "invoices")
	}
}

func TestExport_PasaportesCSVYComponentesJSON(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()

	imp, err := uc.Create(ctx, orgA, entity.JobDirectionImport, dto.CreateJobRequest{
		Kind:    jobs.KindPassports,
		Payload: entity.JSONMap{"records": []any{passportRecord("SN-1")}},
	})
	require.NoError(t, err)
	_, err = uc.Run(ctx, orgA, entity.JobDirectionImport, imp.ID)
	require.NoError(t, err)
	_, err = catalog.NewUseCase(store).CreateComponent(ctx, orgA, dto.CreateComponentRequest{Name: "Celda"})
	require.NoError(t, err)

	exp, err := uc.Create(ctx, orgA, entity.JobDirectionExport, dto.CreateJobRequest{Kind: jobs.KindPassports})
	require.NoError(t, err)
	done, err := uc.Run(ctx, orgA, entity.JobDirectionExport, exp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.JobStatusCompleted, done.Status, done.Error)
	assert.EqualValues(t, 1, done.Result["count"])
	csv, ok := done.Result["csv"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(csv, "id,battery_model"))
	assert.Contains(t, csv, "SN-1")

	comps, err := uc.Create(ctx, orgA, entity.JobDirectionExport, dto.CreateJobRequest{Kind: jobs.KindComponents})
	require.NoError(t, err)
	done, err = uc.Run(ctx, orgA, entity.JobDirectionExport, comps.ID)
	require.NoError(t, err)
	rows, ok := done.Result["json"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "Celda", rows[0].(map[string]any)["name"])

	other, err := uc.Create(ctx, orgB, entity.JobDirectionExport, dto.CreateJobRequest{Kind: jobs.KindPassports})
	require.NoError(t, err)
	done, err = uc.Run(ctx, orgB, entity.JobDirectionExport, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, done.Result["count"], "la exportación solo incluye la organización del scope")
}

func TestJobs_AislamientoYDireccion(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	job, err := uc.Create(ctx, orgA, entity.JobDirectionExport, dto.CreateJobRequest{Kind: jobs.KindComponents})
	require.NoError(t, err)

	_, err = uc.Get(ctx, orgB, entity.JobDirectionExport, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Run(ctx, orgB, entity.JobDirectionExport, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Get(ctx, orgA, entity.JobDirectionImport, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un export no se ve como import")
	_, err = uc.Get(ctx, orgA, "sideways", job.ID)
	assert.ErrorIs(t, err, domain.ErrUnsupported)

	_, err = uc.Create(ctx, orgA, entity.JobDirectionExport, dto.CreateJobRequest{Kind: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, orgA, entity.JobDirectionExport)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	listImports, err := uc.List(ctx, orgA, entity.JobDirectionImport)
	require.NoError(t, err)
	assert.Empty(t, listImports)
}

// lockstepTx retiene a cada llamador tras su primera transacción hasta que todos hayan hecho la suya,
// así las dos ejecuciones leen el job pendiente antes de que cualquiera lo procese.
type lockstepTx struct {
	inner  repository.TxRunner
	calls  atomic.Int32
	first  int32
	loaded sync.WaitGroup
}

func newLockstepTx(inner repository.TxRunner, callers int) *lockstepTx {
	l := &lockstepTx{inner: inner, first: int32(callers)}
	l.loaded.Add(callers)
	return l
}

func (l *lockstepTx) Run(ctx context.Context, scope tenant.Scope, fn func(repository.Repos) error) error {
	err := l.inner.Run(ctx, scope, fn)
	if l.calls.Add(1) <= l.first {
		l.loaded.Done()
		l.loaded.Wait()
	}
	return err
}

func TestRun_EjecucionesSimultaneasProcesanUnaVez(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)

	job, err := jobs.NewUseCase(store, export.NewCSVRenderer(), nil).Create(ctx, orgA, entity.JobDirectionImport, dto.CreateJobRequest{
		Kind:    jobs.KindComponents,
		Payload: entity.JSONMap{"records": []any{map[string]any{"name": "Celda", "kind": "cell"}}},
	})
	require.NoError(t, err)

	uc := jobs.NewUseCase(newLockstepTx(store, 2), export.NewCSVRenderer(), nil)
	results := make([]*dto.JobResponse, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = uc.Run(ctx, orgA, entity.JobDirectionImport, job.ID)
		}()
	}
	wg.Wait()

	for i := range 2 {
		require.NoError(t, errs[i])
		assert.Equal(t, entity.JobStatusCompleted, results[i].Status)
	}
	list, err := catalog.NewUseCase(store).ListComponents(ctx, orgA)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
