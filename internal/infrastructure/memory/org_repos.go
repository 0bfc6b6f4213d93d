package memory

import (
	"context"
	"time"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*orgRepo)(nil)
	_ repository.UserRepository         = (*userRepo)(nil)
	_ repository.APIKeyRepository       = (*apiKeyRepo)(nil)
)

type orgRepo struct{ st *state }

func (r *orgRepo) Create(_ context.Context, org *entity.Organization) error {
	if r.st.orgs.exists(func(o *entity.Organization) bool { return o.Name == org.Name }) {
		return domain.ErrConflict
	}
	r.st.orgs.insert(*org)
	return nil
}

func (r *orgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	return r.st.orgs.find(func(o *entity.Organization) bool { return o.ID == id }), nil
}

func (r *orgRepo) List(_ context.Context) ([]*entity.Organization, error) {
	return r.st.orgs.newestFirst(func(*entity.Organization) bool { return true }), nil
}

type userRepo struct{ st *state }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	if r.st.users.exists(func(x *entity.User) bool { return x.OrgID == u.OrgID && x.Email == u.Email }) {
		return domain.ErrConflict
	}
	r.st.users.insert(*u)
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, orgID, email string) (*entity.User, error) {
	return r.st.users.find(func(x *entity.User) bool { return x.OrgID == orgID && x.Email == email }), nil
}

func (r *userRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.User, error) {
	return r.st.users.newestFirst(func(x *entity.User) bool { return x.OrgID == orgID }), nil
}

type apiKeyRepo struct{ st *state }

func (r *apiKeyRepo) Create(_ context.Context, k *entity.APIKey) error {
	if r.st.apiKeys.exists(func(x *entity.APIKey) bool { return x.KeyHash == k.KeyHash }) {
		return domain.ErrConflict
	}
	r.st.apiKeys.insert(*k)
	return nil
}

func (r *apiKeyRepo) GetByID(_ context.Context, id string) (*entity.APIKey, error) {
	return r.st.apiKeys.find(func(x *entity.APIKey) bool { return x.ID == id }), nil
}

func (r *apiKeyRepo) GetActiveByHash(_ context.Context, keyHash string) (*entity.APIKey, error) {
	return r.st.apiKeys.find(func(x *entity.APIKey) bool { return x.KeyHash == keyHash && x.RevokedAt == nil }), nil
}

func (r *apiKeyRepo) List(_ context.Context, orgID string) ([]*entity.APIKey, error) {
	return r.st.apiKeys.newestFirst(func(x *entity.APIKey) bool { return orgID == "" || x.OrgID == orgID }), nil
}

func (r *apiKeyRepo) Revoke(_ context.Context, id string, at time.Time) error {
	k := r.st.apiKeys.find(func(x *entity.APIKey) bool { return x.ID == id })
	if k == nil {
		return nil
	}
	if k.RevokedAt == nil {
		k.RevokedAt = &at
	}
	r.st.apiKeys.replace(func(x *entity.APIKey) bool { return x.ID == id }, *k)
	return nil
}
