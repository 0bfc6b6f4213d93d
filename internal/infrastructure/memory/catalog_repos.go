package memory

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.ComponentRepository = (*componentRepo)(nil)
	_ repository.TemplateRepository  = (*templateRepo)(nil)
)

type componentRepo struct{ st *state }

func (r *componentRepo) Create(_ context.Context, c *entity.Component) error {
	r.st.components.insert(*c)
	return nil
}

func (r *componentRepo) GetByID(_ context.Context, id string) (*entity.Component, error) {
	return r.st.components.find(func(x *entity.Component) bool { return x.ID == id }), nil
}

func (r *componentRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Component, error) {
	return r.st.components.newestFirst(func(x *entity.Component) bool { return x.OrgID == orgID }), nil
}

func (r *componentRepo) Update(_ context.Context, c *entity.Component) error {
	r.st.components.replace(func(x *entity.Component) bool { return x.ID == c.ID }, *c)
	return nil
}

type templateRepo struct{ st *state }

func (r *templateRepo) Create(_ context.Context, t *entity.ProductTemplate) error {
	r.st.templates.insert(*t)
	return nil
}

func (r *templateRepo) GetByID(_ context.Context, id string) (*entity.ProductTemplate, error) {
	return r.st.templates.find(func(x *entity.ProductTemplate) bool { return x.ID == id }), nil
}

func (r *templateRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.ProductTemplate, error) {
	return r.st.templates.newestFirst(func(x *entity.ProductTemplate) bool { return x.OrgID == orgID }), nil
}

func (r *templateRepo) Update(_ context.Context, t *entity.ProductTemplate) error {
	r.st.templates.replace(func(x *entity.ProductTemplate) bool { return x.ID == t.ID }, *t)
	return nil
}

func (r *templateRepo) AddComponent(_ context.Context, link *entity.TemplateComponent) error {
	r.st.links.insert(*link)
	return nil
}

func (r *templateRepo) ListComponents(_ context.Context, templateID string) ([]*entity.TemplateComponent, error) {
	return r.st.links.newestFirst(func(x *entity.TemplateComponent) bool { return x.TemplateID == templateID }), nil
}
