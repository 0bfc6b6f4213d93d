package artifacts

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/passport"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// MaxUploadBytes tamaño máximo de un archivo subido directamente.
const MaxUploadBytes = 20 << 20

// UseCase artefactos restringidos. La organización del artefacto es siempre la del scope,
// y el pasaporte debe ser visible para ella.
type UseCase struct {
	tx    repository.TxRunner
	store ObjectStore
	log   *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, store ObjectStore, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, store: store, log: log.Component("artifacts")}
}

// Create registra los metadatos de un archivo ya alojado (URL externa o clave prefirmada).
func (uc *UseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateArtifactRequest) (*dto.ArtifactResponse, error) {
	var bad []string
	if strings.TrimSpace(in.PassportID) == "" {
		bad = append(bad, "passport_id")
	}
	if strings.TrimSpace(in.Kind) == "" {
		bad = append(bad, "kind")
	}
	if len(bad) > 0 {
		return nil, domain.NewValidationError("artefacto inválido", bad...)
	}
	a := &entity.RestrictedArtifact{
		ID:         uuid.New().String(),
		OrgID:      scope.OrgID(),
		PassportID: in.PassportID,
		Kind:       strings.TrimSpace(in.Kind),
		Title:      in.Title,
		URL:        in.URL,
		StorageKey: in.StorageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.persist(ctx, scope, a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Upload guarda el contenido en el ObjectStore y registra el artefacto con la URL resultante.
func (uc *UseCase) Upload(ctx context.Context, scope tenant.Scope, passportID string, in dto.UploadArtifactRequest) (*dto.ArtifactResponse, error) {
	var bad []string
	if strings.TrimSpace(in.Kind) == "" {
		bad = append(bad, "kind")
	}
	if len(in.Content) == 0 || len(in.Content) > MaxUploadBytes {
		bad = append(bad, "file")
	}
	if len(bad) > 0 {
		return nil, domain.NewValidationError("archivo inválido", bad...)
	}

	// El pasaporte se valida antes de escribir en el almacenamiento.
	if err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		_, err := passport.Visible(ctx, repos, scope, passportID)
		return err
	}); err != nil {
		return nil, err
	}

	key := StorageKey(scope.OrgID(), passportID, in.FileName)
	url, err := uc.store.Put(ctx, key, in.ContentType, in.Content)
	if err != nil {
		return nil, fmt.Errorf("artifacts: guardar archivo: %w", err)
	}
	title := in.Title
	if title == "" {
		title = in.FileName
	}
	a := &entity.RestrictedArtifact{
		ID:         uuid.New().String(),
		OrgID:      scope.OrgID(),
		PassportID: passportID,
		Kind:       strings.TrimSpace(in.Kind),
		Title:      title,
		URL:        url,
		StorageKey: key,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.persist(ctx, scope, a); err != nil {
		return nil, err
	}
	uc.log.Info().Str("org_id", scope.OrgID()).Str("passport_id", passportID).Str("key", key).Int("bytes", len(in.Content)).Msg("artefacto subido")
	return toResponse(a), nil
}

// Presign URL de subida temporal. El caller sube el archivo y después registra el artefacto con Create.
func (uc *UseCase) Presign(ctx context.Context, scope tenant.Scope, passportID string, in dto.PresignRequest) (*dto.PresignResponse, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, domain.NewValidationError("nombre de archivo requerido", "file_name")
	}
	if err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		_, err := passport.Visible(ctx, repos, scope, passportID)
		return err
	}); err != nil {
		return nil, err
	}
	key := StorageKey(scope.OrgID(), passportID, in.FileName)
	url, ttl, err := uc.store.Presign(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("artifacts: prefirmar: %w", err)
	}
	return &dto.PresignResponse{UploadURL: url, StorageKey: key, ExpiresIn: int(ttl.Seconds())}, nil
}

// List artefactos de la organización.
func (uc *UseCase) List(ctx context.Context, scope tenant.Scope) ([]dto.ArtifactResponse, error) {
	var out []dto.ArtifactResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Artifacts.ListByOrg(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = toResponses(list)
		return nil
	})
	return out, err
}

// ListByPassport artefactos visibles para el scope de un pasaporte visible.
func (uc *UseCase) ListByPassport(ctx context.Context, scope tenant.Scope, passportID string) ([]dto.ArtifactResponse, error) {
	var out []dto.ArtifactResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if _, err := passport.Visible(ctx, repos, scope, passportID); err != nil {
			return err
		}
		list, err := repos.Artifacts.ListByPassport(ctx, passportID)
		if err != nil {
			return err
		}
		own := list[:0]
		for _, a := range list {
			if scope.CanSee(a.OrgID) {
				own = append(own, a)
			}
		}
		out = toResponses(own)
		return nil
	})
	return out, err
}

func (uc *UseCase) persist(ctx context.Context, scope tenant.Scope, a *entity.RestrictedArtifact) error {
	return uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if _, err := passport.Visible(ctx, repos, scope, a.PassportID); err != nil {
			return err
		}
		if err := repos.Artifacts.Create(ctx, a); err != nil {
			return err
		}
		detail := entity.JSONMap{"passport_id": a.PassportID, "kind": a.Kind}
		return audit.Record(ctx, repos, scope, "artifact.create", "restricted_artifact", a.ID, detail)
	})
}

// StorageKey clave de almacenamiento: org/pasaporte/uuid-nombre. El nombre se reduce a su base
// y a caracteres seguros para URL.
func StorageKey(orgID, passportID, fileName string) string {
	name := sanitize(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	org := orgID
	if org == "" {
		org = "global"
	}
	return org + "/" + passportID + "/" + uuid.New().String()[:8] + "-" + name
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

func toResponse(a *entity.RestrictedArtifact) *dto.ArtifactResponse {
	return &dto.ArtifactResponse{
		ID:         a.ID,
		PassportID: a.PassportID,
		Kind:       a.Kind,
		Title:      a.Title,
		URL:        a.URL,
		StorageKey: a.StorageKey,
		CreatedAt:  a.CreatedAt,
	}
}

func toResponses(list []*entity.RestrictedArtifact) []dto.ArtifactResponse {
	out := make([]dto.ArtifactResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toResponse(a))
	}
	return out
}
