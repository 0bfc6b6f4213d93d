package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// CbamRepository declaraciones CBAM, sus ítems, la tabla de factores y el registro de proveedores.
type CbamRepository interface {
	// CreateDeclaration persiste la declaración y todos sus ítems.
	CreateDeclaration(ctx context.Context, d *entity.CbamDeclaration) error
	// GetDeclaration carga la declaración con sus ítems (orden de creación).
	GetDeclaration(ctx context.Context, id string) (*entity.CbamDeclaration, error)
	// ListDeclarations carga cada declaración con sus ítems, de la más reciente a la más antigua.
	ListDeclarations(ctx context.Context, orgID string) ([]*entity.CbamDeclaration, error)
	// UpdateDeclaration actualiza estado, precio y totales. Los ítems no se tocan.
	UpdateDeclaration(ctx context.Context, d *entity.CbamDeclaration) error
	UpdateItem(ctx context.Context, item *entity.CbamItem) error

	CreateFactor(ctx context.Context, f *entity.CbamFactor) error
	ListFactors(ctx context.Context, orgID string) ([]*entity.CbamFactor, error)
	// FactorByPrefix factor de la organización para un prefijo CN, o (nil, nil).
	FactorByPrefix(ctx context.Context, orgID, cnPrefix string) (*entity.CbamFactor, error)

	CreateSupplier(ctx context.Context, s *entity.CbamSupplier) error
	GetSupplier(ctx context.Context, id string) (*entity.CbamSupplier, error)
	ListSuppliers(ctx context.Context, orgID string) ([]*entity.CbamSupplier, error)
}
