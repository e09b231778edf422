package repository

import (
	"context"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para artículos del blog.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	// ExistsSlug informa si el slug está en uso por otro artículo (excludeID se ignora).
	ExistsSlug(ctx context.Context, slug, excludeID string) (bool, error)
	// List todos los artículos (borradores incluidos) para el panel.
	List(ctx context.Context, limit, offset int) ([]entity.Article, error)
	Count(ctx context.Context) (int, error)
	// ListPublished artículos publicados ordenados por fecha de publicación descendente.
	ListPublished(ctx context.Context) ([]entity.Article, error)
}
