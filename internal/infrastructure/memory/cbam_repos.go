package memory

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.CbamRepository = (*cbamRepo)(nil)

type cbamRepo struct{ st *state }

func (r *cbamRepo) CreateDeclaration(_ context.Context, d *entity.CbamDeclaration) error {
	row := *d
	row.Items = nil
	r.st.declarations.insert(row)
	for _, item := range d.Items {
		r.st.items.insert(*item)
	}
	return nil
}

func (r *cbamRepo) withItems(d *entity.CbamDeclaration) *entity.CbamDeclaration {
	d.Items = r.st.items.oldestFirst(func(x *entity.CbamItem) bool { return x.DeclarationID == d.ID })
	return d
}

func (r *cbamRepo) GetDeclaration(_ context.Context, id string) (*entity.CbamDeclaration, error) {
	d := r.st.declarations.find(func(x *entity.CbamDeclaration) bool { return x.ID == id })
	if d == nil {
		return nil, nil
	}
	return r.withItems(d), nil
}

func (r *cbamRepo) ListDeclarations(_ context.Context, orgID string) ([]*entity.CbamDeclaration, error) {
	list := r.st.declarations.newestFirst(func(x *entity.CbamDeclaration) bool { return x.OrgID == orgID })
	for _, d := range list {
		r.withItems(d)
	}
	return list, nil
}

func (r *cbamRepo) UpdateDeclaration(_ context.Context, d *entity.CbamDeclaration) error {
	row := *d
	row.Items = nil
	r.st.declarations.replace(func(x *entity.CbamDeclaration) bool { return x.ID == d.ID }, row)
	return nil
}

func (r *cbamRepo) UpdateItem(_ context.Context, item *entity.CbamItem) error {
	r.st.items.replace(func(x *entity.CbamItem) bool { return x.ID == item.ID }, *item)
	return nil
}

func (r *cbamRepo) CreateFactor(_ context.Context, f *entity.CbamFactor) error {
	if r.st.factors.exists(func(x *entity.CbamFactor) bool { return x.OrgID == f.OrgID && x.CNPrefix == f.CNPrefix }) {
		return domain.ErrConflict
	}
	r.st.factors.insert(*f)
	return nil
}

func (r *cbamRepo) ListFactors(_ context.Context, orgID string) ([]*entity.CbamFactor, error) {
	return r.st.factors.newestFirst(func(x *entity.CbamFactor) bool { return x.OrgID == orgID }), nil
}

func (r *cbamRepo) FactorByPrefix(_ context.Context, orgID, cnPrefix string) (*entity.CbamFactor, error) {
	return r.st.factors.find(func(x *entity.CbamFactor) bool { return x.OrgID == orgID && x.CNPrefix == cnPrefix }), nil
}

func (r *cbamRepo) CreateSupplier(_ context.Context, s *entity.CbamSupplier) error {
	r.st.suppliers.insert(*s)
	return nil
}

func (r *cbamRepo) GetSupplier(_ context.Context, id string) (*entity.CbamSupplier, error) {
	return r.st.suppliers.find(func(x *entity.CbamSupplier) bool { return x.ID == id }), nil
}

func (r *cbamRepo) ListSuppliers(_ context.Context, orgID string) ([]*entity.CbamSupplier, error) {
	return r.st.suppliers.newestFirst(func(x *entity.CbamSupplier) bool { return x.OrgID == orgID }), nil
}
