package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// ComponentRepository catálogo de componentes.
type ComponentRepository interface {
	Create(ctx context.Context, c *entity.Component) error
	GetByID(ctx context.Context, id string) (*entity.Component, error)
	// ListByOrg ordena del más reciente al más antiguo. No incluye filas globales.
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Component, error)
	Update(ctx context.Context, c *entity.Component) error
}

// TemplateRepository plantillas de pasaporte y sus enlaces a componentes.
type TemplateRepository interface {
	Create(ctx context.Context, t *entity.ProductTemplate) error
	GetByID(ctx context.Context, id string) (*entity.ProductTemplate, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.ProductTemplate, error)
	Update(ctx context.Context, t *entity.ProductTemplate) error
	AddComponent(ctx context.Context, link *entity.TemplateComponent) error
	// ListComponents devuelve los enlaces del más reciente al más antiguo.
	ListComponents(ctx context.Context, templateID string) ([]*entity.TemplateComponent, error)
}
