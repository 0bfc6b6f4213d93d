// bootstrap prepara una instalación nueva: aplica el esquema, crea la primera organización
// y emite su API key inicial. La key solo se muestra una vez.
//
// Uso: go run ./cmd/bootstrap -org "Acme Baterías" [-key-name ci] [-schema=false]
//
//	go run ./cmd/bootstrap -hash-admin-token "<token>"   imprime el valor de ADMIN_TOKEN_HASH
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/org"
	"github.com/jhoicas/passport-api/internal/infrastructure/postgres"
	"github.com/jhoicas/passport-api/pkg/config"
	"github.com/jhoicas/passport-api/pkg/logger"
)

func main() {
	orgName := flag.String("org", "", "nombre de la organización a crear")
	keyName := flag.String("key-name", "bootstrap", "nombre de la API key inicial")
	schema := flag.Bool("schema", true, "aplicar el esquema antes de crear datos")
	adminToken := flag.String("hash-admin-token", "", "imprime el hash bcrypt de un token de administración y termina")
	flag.Parse()

	if *adminToken != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(*adminToken), bcrypt.DefaultCost)
		if err != nil {
			fail("hash del token", err)
		}
		fmt.Println(string(h))
		return
	}
	if *orgName == "" {
		fmt.Fprintln(os.Stderr, "falta -org")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	if *schema {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			fail("aplicar esquema", err)
		}
		if cfg.DB.EnforceRLS {
			postgres.EnsureRLSPolicies(ctx, pool, log)
		}
	}

	uc := org.NewUseCase(postgres.NewTxRunner(pool, log), log)
	o, err := uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: *orgName})
	if err != nil {
		fail("crear organización", err)
	}
	key, err := uc.IssueKey(ctx, dto.CreateAPIKeyRequest{OrgID: o.ID, Name: *keyName})
	if err != nil {
		fail("emitir API key", err)
	}

	fmt.Printf("org_id:  %s\n", o.ID)
	fmt.Printf("key_id:  %s\n", key.ID)
	fmt.Printf("api_key: %s\n", key.Key)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
