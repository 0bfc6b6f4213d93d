// Package tenancy resuelve la credencial de una petición en el alcance de organización.
package tenancy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// HashKey hash de una credencial tal como se almacena (SHA-256 en hexadecimal).
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Resolver traduce una API key en tenant.Scope.
type Resolver struct {
	tx repository.TxRunner
}

// NewResolver construye el resolver.
func NewResolver(tx repository.TxRunner) *Resolver {
	return &Resolver{tx: tx}
}

// Resolve falla con domain.ErrUnauthorized si la credencial está vacía, no existe, fue revocada
// o su organización ya no existe.
func (r *Resolver) Resolve(ctx context.Context, credential string) (tenant.Scope, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return tenant.Scope{}, domain.ErrUnauthorized
	}
	var scope tenant.Scope
	err := r.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		key, err := repos.APIKeys.GetActiveByHash(ctx, HashKey(credential))
		if err != nil {
			return fmt.Errorf("tenancy: buscar credencial: %w", err)
		}
		if key == nil || !key.Active() {
			return domain.ErrUnauthorized
		}
		org, err := repos.Organizations.GetByID(ctx, key.OrgID)
		if err != nil {
			return fmt.Errorf("tenancy: obtener organización: %w", err)
		}
		if org == nil {
			return domain.ErrUnauthorized
		}
		scope = tenant.New(org.ID, org.Name, key.ID, key.Name)
		return nil
	})
	if err != nil {
		return tenant.Scope{}, err
	}
	return scope, nil
}
