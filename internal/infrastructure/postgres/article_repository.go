package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, title, slug, COALESCE(author_id::TEXT, ''), author_name, summary, body, featured_image,
	published, meta_description, meta_keywords, tags, canonical_url, created_at, published_at, updated_at`

// ArticleRepo implementación de ArticleRepository.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de artículos.
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

func scanArticle(s scanner) (entity.Article, error) {
	var a entity.Article
	err := s.Scan(&a.ID, &a.Title, &a.Slug, &a.AuthorID, &a.AuthorName, &a.Summary, &a.Body, &a.FeaturedImage,
		&a.Published, &a.MetaDescription, &a.MetaKeywords, &a.Tags, &a.CanonicalURL,
		&a.CreatedAt, &a.PublishedAt, &a.UpdatedAt)
	return a, err
}

func nullableUUID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// Create persiste un artículo. Slug repetido → ErrDuplicate.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (id, title, slug, author_id, author_name, summary, body, featured_image,
			published, meta_description, meta_keywords, tags, canonical_url, created_at, published_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Title, a.Slug, nullableUUID(a.AuthorID), a.AuthorName, a.Summary, a.Body, a.FeaturedImage,
		a.Published, a.MetaDescription, a.MetaKeywords, a.Tags, a.CanonicalURL, a.CreatedAt, a.PublishedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Update reemplaza el contenido y el estado de publicación.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	query := `
		UPDATE articles SET title = $2, slug = $3, author_name = $4, summary = $5, body = $6, featured_image = $7,
			published = $8, meta_description = $9, meta_keywords = $10, tags = $11, canonical_url = $12,
			published_at = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Title, a.Slug, a.AuthorName, a.Summary, a.Body, a.FeaturedImage,
		a.Published, a.MetaDescription, a.MetaKeywords, a.Tags, a.CanonicalURL, a.PublishedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepo) getOne(ctx context.Context, where string, arg any) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetBySlug obtiene un artículo por slug.
func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

// ExistsSlug informa si otro artículo usa el slug.
func (r *ArticleRepo) ExistsSlug(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1 AND ($2 = '' OR id::TEXT <> $2))`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists slug: %w", err)
	}
	return exists, nil
}

// List todos los artículos, más recientes primero.
func (r *ArticleRepo) List(ctx context.Context, limit, offset int) ([]entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles
		ORDER BY published_at DESC NULLS FIRST, created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// Count total de artículos.
func (r *ArticleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// ListPublished artículos publicados, más recientes primero.
func (r *ArticleRepo) ListPublished(ctx context.Context) ([]entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE published AND published_at IS NOT NULL
		ORDER BY published_at DESC, created_at DESC`
	return r.list(ctx, query)
}

func (r *ArticleRepo) list(ctx context.Context, query string, args ...any) ([]entity.Article, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var list []entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
