// Package org administra organizaciones, usuarios y API keys (rutas de administración).
package org

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/tenancy"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

const (
	// KeyPrefix marca visible de las credenciales emitidas por este servicio.
	KeyPrefix    = "dpp_"
	keyBytes     = 32
	displayChars = 12
)

// UseCase organizaciones, usuarios y credenciales.
type UseCase struct {
	tx  repository.TxRunner
	log *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, log: log.Component("org")}
}

// ── Organizaciones ───────────────────────────────────────────────────────────

// CreateOrg crea una organización. Nombre duplicado → domain.ErrConflict.
func (uc *UseCase) CreateOrg(ctx context.Context, in dto.CreateOrgRequest) (*dto.OrgResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("nombre de organización requerido", "name")
	}
	org := &entity.Organization{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		if err := repos.Organizations.Create(ctx, org); err != nil {
			return err
		}
		scope := tenant.New(org.ID, org.Name, "", "")
		return audit.Record(ctx, repos, scope, "org.create", "organization", org.ID, entity.JSONMap{"name": org.Name})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("org_id", org.ID).Msg("organización creada")
	return toOrgResponse(org), nil
}

// ListOrgs todas las organizaciones, de la más reciente a la más antigua.
func (uc *UseCase) ListOrgs(ctx context.Context) ([]dto.OrgResponse, error) {
	var out []dto.OrgResponse
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		orgs, err := repos.Organizations.List(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.OrgResponse, 0, len(orgs))
		for _, o := range orgs {
			out = append(out, *toOrgResponse(o))
		}
		return nil
	})
	return out, err
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

// CreateUser crea un usuario en la organización. Rol vacío = viewer.
func (uc *UseCase) CreateUser(ctx context.Context, orgID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email inválido", "email")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleViewer
	}
	switch role {
	case entity.RoleAdmin, entity.RoleEditor, entity.RoleViewer:
	default:
		return nil, domain.NewValidationError("rol inválido", "role")
	}
	user := &entity.User{ID: uuid.New().String(), OrgID: orgID, Email: email, Role: role, CreatedAt: time.Now().UTC()}
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		org, err := repos.Organizations.GetByID(ctx, orgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.ErrNotFound
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		scope := tenant.New(org.ID, org.Name, "", "")
		return audit.Record(ctx, repos, scope, "user.create", "user", user.ID, entity.JSONMap{"email": email, "role": role})
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers usuarios de una organización existente.
func (uc *UseCase) ListUsers(ctx context.Context, orgID string) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		org, err := repos.Organizations.GetByID(ctx, orgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.ErrNotFound
		}
		users, err := repos.Users.ListByOrg(ctx, orgID)
		if err != nil {
			return err
		}
		out = make([]dto.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, *toUserResponse(u))
		}
		return nil
	})
	return out, err
}

// ── API keys ─────────────────────────────────────────────────────────────────

// IssueKey emite una credencial. El secreto se devuelve una sola vez; solo se guarda su hash.
func (uc *UseCase) IssueKey(ctx context.Context, in dto.CreateAPIKeyRequest) (*dto.APIKeyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("nombre de la credencial requerido", "name")
	}
	raw, err := generateKey()
	if err != nil {
		return nil, fmt.Errorf("org: generar credencial: %w", err)
	}
	key := &entity.APIKey{
		ID:        uuid.New().String(),
		OrgID:     in.OrgID,
		Name:      name,
		KeyHash:   tenancy.HashKey(raw),
		KeyPrefix: raw[:displayChars],
		CreatedAt: time.Now().UTC(),
	}
	err = uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		org, err := repos.Organizations.GetByID(ctx, in.OrgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.ErrNotFound
		}
		if err := repos.APIKeys.Create(ctx, key); err != nil {
			return err
		}
		scope := tenant.New(org.ID, org.Name, "", "")
		return audit.Record(ctx, repos, scope, "api_key.create", "api_key", key.ID, entity.JSONMap{"name": name, "prefix": key.KeyPrefix})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("org_id", key.OrgID).Str("key_id", key.ID).Msg("credencial emitida")
	resp := toKeyResponse(key)
	resp.Key = raw
	return resp, nil
}

// ListKeys credenciales (nunca el secreto). orgID vacío = todas.
func (uc *UseCase) ListKeys(ctx context.Context, orgID string) ([]dto.APIKeyResponse, error) {
	var out []dto.APIKeyResponse
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		keys, err := repos.APIKeys.List(ctx, orgID)
		if err != nil {
			return err
		}
		out = make([]dto.APIKeyResponse, 0, len(keys))
		for _, k := range keys {
			out = append(out, *toKeyResponse(k))
		}
		return nil
	})
	return out, err
}

// RevokeKey revoca una credencial. Revocar dos veces conserva la fecha original.
func (uc *UseCase) RevokeKey(ctx context.Context, id string) (*dto.APIKeyResponse, error) {
	var key *entity.APIKey
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		var err error
		key, err = repos.APIKeys.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if key == nil {
			return domain.ErrNotFound
		}
		if !key.Active() {
			return nil
		}
		now := time.Now().UTC()
		if err := repos.APIKeys.Revoke(ctx, id, now); err != nil {
			return err
		}
		key.RevokedAt = &now
		scope := tenant.New(key.OrgID, "", "", "")
		return audit.Record(ctx, repos, scope, "api_key.revoke", "api_key", key.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toKeyResponse(key), nil
}

func generateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

func toOrgResponse(o *entity.Organization) *dto.OrgResponse {
	return &dto.OrgResponse{ID: o.ID, Name: o.Name, CreatedAt: o.CreatedAt}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{ID: u.ID, OrgID: u.OrgID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func toKeyResponse(k *entity.APIKey) *dto.APIKeyResponse {
	return &dto.APIKeyResponse{
		ID:        k.ID,
		OrgID:     k.OrgID,
		Name:      k.Name,
		Prefix:    k.KeyPrefix,
		Revoked:   !k.Active(),
		RevokedAt: k.RevokedAt,
		CreatedAt: k.CreatedAt,
	}
}
