package dto

import (
	"time"

	"github.com/jhoicas/prisma-api/internal/domain/seo"
)

// ArticleRequest alta o edición de un artículo. Slug vacío = se genera desde el título.
type ArticleRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Slug            string `json:"slug" validate:"omitempty,max=200"`
	AuthorName      string `json:"author_name" validate:"required,max=100"`
	Summary         string `json:"summary" validate:"required,max=300"`
	Body            string `json:"body" validate:"required"`
	FeaturedImage   string `json:"featured_image" validate:"omitempty,max=255"`
	MetaDescription string `json:"meta_description" validate:"omitempty,max=160"`
	MetaKeywords    string `json:"meta_keywords" validate:"omitempty,max=255"`
	Tags            string `json:"tags" validate:"omitempty,max=200"`
	CanonicalURL    string `json:"canonical_url" validate:"omitempty,url"`
	Published       bool   `json:"published"`
}

// ArticleResponse artículo completo.
type ArticleResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	AuthorName      string     `json:"author_name"`
	Summary         string     `json:"summary"`
	Body            string     `json:"body,omitempty"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	Published       bool       `json:"published"`
	MetaDescription string     `json:"meta_description,omitempty"`
	MetaKeywords    string     `json:"meta_keywords,omitempty"`
	Tags            []string   `json:"tags"`
	CanonicalURL    string     `json:"canonical_url,omitempty"`
	ReadingMinutes  int        `json:"reading_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
	PublishedAt     *time.Time `json:"published_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ArticleCardDTO artículo en listados (resumen truncado, sin contenido).
type ArticleCardDTO struct {
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	AuthorName     string     `json:"author_name"`
	Summary        string     `json:"summary"`
	FeaturedImage  string     `json:"featured_image,omitempty"`
	Tags           []string   `json:"tags"`
	ReadingMinutes int        `json:"reading_minutes"`
	PublishedAt    *time.Time `json:"published_at"`
}

// ArticleListResponse página de artículos publicados.
type ArticleListResponse struct {
	Items      []ArticleCardDTO `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
	Query      string           `json:"query,omitempty"`
	Tag        string           `json:"tag,omitempty"`
	SEO        seo.Page         `json:"seo"`
}

// ArticleDetailResponse artículo publicado con navegación y metadatos.
type ArticleDetailResponse struct {
	Article  ArticleResponse  `json:"article"`
	Related  []ArticleCardDTO `json:"related"`
	Previous *ArticleCardDTO  `json:"previous"`
	Next     *ArticleCardDTO  `json:"next"`
	SEO      seo.Page         `json:"seo"`
}

// ArticleAdminListResponse listado del panel (incluye borradores).
type ArticleAdminListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SEOMetaRequest metadatos SEO editables de un artículo.
type SEOMetaRequest struct {
	Title              string `json:"title" validate:"omitempty,max=60"`
	Description        string `json:"description" validate:"omitempty,max=160"`
	Keywords           string `json:"keywords" validate:"omitempty,max=255"`
	CanonicalURL       string `json:"canonical_url" validate:"omitempty,url"`
	NoIndex            bool   `json:"noindex"`
	NoFollow           bool   `json:"nofollow"`
	OGTitle            string `json:"og_title" validate:"omitempty,max=60"`
	OGDescription      string `json:"og_description" validate:"omitempty,max=160"`
	OGImage            string `json:"og_image"`
	OGType             string `json:"og_type" validate:"omitempty,oneof=website article blog product business"`
	TwitterCard        string `json:"twitter_card" validate:"omitempty,oneof=summary summary_large_image app player"`
	TwitterTitle       string `json:"twitter_title" validate:"omitempty,max=60"`
	TwitterDescription string `json:"twitter_description" validate:"omitempty,max=160"`
	TwitterImage       string `json:"twitter_image"`
	SchemaMarkup       string `json:"schema_markup"`
}
