package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

var _ repository.SEORepository = (*SEORepo)(nil)

// SEORepo implementación de SEORepository.
type SEORepo struct {
	q Querier
}

// NewSEORepository construye el adaptador de metadatos SEO.
func NewSEORepository(q Querier) *SEORepo {
	return &SEORepo{q: q}
}

// Get metadatos de un objeto de contenido; (nil, nil) si no hay registro.
func (r *SEORepo) Get(ctx context.Context, contentType, objectID string) (*entity.SEOMeta, error) {
	query := `
		SELECT id, content_type, object_id, title, description, keywords, canonical_url, noindex, nofollow,
			og_title, og_description, og_image, og_type, twitter_card, twitter_title, twitter_description,
			twitter_image, schema_markup, created_at, updated_at
		FROM seo_meta WHERE content_type = $1 AND object_id = $2`
	var m entity.SEOMeta
	err := r.q.QueryRow(ctx, query, contentType, objectID).Scan(
		&m.ID, &m.ContentType, &m.ObjectID, &m.Title, &m.Description, &m.Keywords, &m.CanonicalURL,
		&m.NoIndex, &m.NoFollow, &m.OGTitle, &m.OGDescription, &m.OGImage, &m.OGType, &m.TwitterCard,
		&m.TwitterTitle, &m.TwitterDescription, &m.TwitterImage, &m.SchemaMarkup, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seo meta: %w", err)
	}
	return &m, nil
}

// Upsert inserta o reemplaza los metadatos de (content_type, object_id); conserva id y created_at existentes.
func (r *SEORepo) Upsert(ctx context.Context, m *entity.SEOMeta) error {
	query := `
		INSERT INTO seo_meta (id, content_type, object_id, title, description, keywords, canonical_url, noindex, nofollow,
			og_title, og_description, og_image, og_type, twitter_card, twitter_title, twitter_description,
			twitter_image, schema_markup, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (content_type, object_id) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description, keywords = EXCLUDED.keywords,
			canonical_url = EXCLUDED.canonical_url, noindex = EXCLUDED.noindex, nofollow = EXCLUDED.nofollow,
			og_title = EXCLUDED.og_title, og_description = EXCLUDED.og_description, og_image = EXCLUDED.og_image,
			og_type = EXCLUDED.og_type, twitter_card = EXCLUDED.twitter_card, twitter_title = EXCLUDED.twitter_title,
			twitter_description = EXCLUDED.twitter_description, twitter_image = EXCLUDED.twitter_image,
			schema_markup = EXCLUDED.schema_markup, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ContentType, m.ObjectID, m.Title, m.Description, m.Keywords, m.CanonicalURL, m.NoIndex, m.NoFollow,
		m.OGTitle, m.OGDescription, m.OGImage, m.OGType, m.TwitterCard, m.TwitterTitle, m.TwitterDescription,
		m.TwitterImage, m.SchemaMarkup, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert seo meta: %w", err)
	}
	return nil
}
