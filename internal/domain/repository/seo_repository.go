package repository

import (
	"context"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

// SEORepository metadatos SEO por objeto de contenido.
type SEORepository interface {
	Get(ctx context.Context, contentType, objectID string) (*entity.SEOMeta, error)
	// Upsert crea o reemplaza el registro de (ContentType, ObjectID).
	Upsert(ctx context.Context, meta *entity.SEOMeta) error
}
