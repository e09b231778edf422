// Package seo metadatos de páginas: fallbacks, robots y validación.
package seo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/blog"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

// Límites de longitud de los campos.
const (
	MaxTitle       = 60
	MaxDescription = 160
)

// Valores por defecto de Open Graph y Twitter.
const (
	DefaultOGType      = "website"
	DefaultTwitterCard = "summary_large_image"
)

var (
	ogTypes      = map[string]bool{"website": true, "article": true, "blog": true, "product": true, "business": true}
	twitterCards = map[string]bool{"summary": true, "summary_large_image": true, "app": true, "player": true}
)

// Site configuración SEO del sitio; valores estáticos inyectados al arrancar.
type Site struct {
	Name            string
	Domain          string
	Description     string
	DefaultKeywords string
	AnalyticsID     string
	Phone           string
	Email           string
}

// FullDomain dominio con protocolo https.
func (s Site) FullDomain() string {
	if s.Domain == "" {
		return ""
	}
	return "https://" + s.Domain
}

// Page metadatos resueltos de una página, listos para serializar.
type Page struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords,omitempty"`
	CanonicalURL       string `json:"canonical_url,omitempty"`
	Robots             string `json:"robots"`
	OGTitle            string `json:"og_title"`
	OGDescription      string `json:"og_description"`
	OGImage            string `json:"og_image,omitempty"`
	OGType             string `json:"og_type"`
	TwitterCard        string `json:"twitter_card"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image,omitempty"`
	SchemaMarkup       string `json:"schema_markup,omitempty"`
}

// RobotsContent contenido de la meta tag robots.
func RobotsContent(noIndex, noFollow bool) string {
	index, follow := "index", "follow"
	if noIndex {
		index = "noindex"
	}
	if noFollow {
		follow = "nofollow"
	}
	return index + ", " + follow
}

// Normalize completa los valores por defecto de OG type y Twitter card.
func Normalize(m *entity.SEOMeta) {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	if m.OGType == "" {
		m.OGType = DefaultOGType
	}
	if m.TwitterCard == "" {
		m.TwitterCard = DefaultTwitterCard
	}
}

// Validate longitudes, valores permitidos y JSON-LD bien formado.
func Validate(m *entity.SEOMeta) error {
	if m.ContentType == "" || m.ObjectID == "" {
		return fmt.Errorf("%w: content_type y object_id son obligatorios", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(m.Title) > MaxTitle || utf8.RuneCountInString(m.OGTitle) > MaxTitle ||
		utf8.RuneCountInString(m.TwitterTitle) > MaxTitle {
		return fmt.Errorf("%w: título supera %d caracteres", domain.ErrInvalidInput, MaxTitle)
	}
	if utf8.RuneCountInString(m.Description) > MaxDescription || utf8.RuneCountInString(m.OGDescription) > MaxDescription ||
		utf8.RuneCountInString(m.TwitterDescription) > MaxDescription {
		return fmt.Errorf("%w: descripción supera %d caracteres", domain.ErrInvalidInput, MaxDescription)
	}
	if m.OGType != "" && !ogTypes[m.OGType] {
		return fmt.Errorf("%w: og_type %q no soportado", domain.ErrInvalidInput, m.OGType)
	}
	if m.TwitterCard != "" && !twitterCards[m.TwitterCard] {
		return fmt.Errorf("%w: twitter_card %q no soportado", domain.ErrInvalidInput, m.TwitterCard)
	}
	if s := strings.TrimSpace(m.SchemaMarkup); s != "" && !json.Valid([]byte(s)) {
		return fmt.Errorf("%w: schema markup no es JSON válido", domain.ErrInvalidInput)
	}
	return nil
}

// Resolve aplica los fallbacks: OG y Twitter heredan título y descripción SEO;
// el título cae en fallbackTitle si está vacío.
func Resolve(m *entity.SEOMeta, fallbackTitle string) Page {
	title := m.Title
	if title == "" {
		title = fallbackTitle
	}
	p := Page{
		Title:              title,
		Description:        m.Description,
		Keywords:           m.Keywords,
		CanonicalURL:       m.CanonicalURL,
		Robots:             RobotsContent(m.NoIndex, m.NoFollow),
		OGTitle:            firstNonEmpty(m.OGTitle, title),
		OGDescription:      firstNonEmpty(m.OGDescription, m.Description),
		OGImage:            m.OGImage,
		OGType:             firstNonEmpty(m.OGType, DefaultOGType),
		TwitterCard:        firstNonEmpty(m.TwitterCard, DefaultTwitterCard),
		TwitterTitle:       firstNonEmpty(m.TwitterTitle, title),
		TwitterDescription: firstNonEmpty(m.TwitterDescription, m.Description),
		TwitterImage:       firstNonEmpty(m.TwitterImage, m.OGImage),
	}
	if json.Valid([]byte(m.SchemaMarkup)) {
		p.SchemaMarkup = m.SchemaMarkup
	}
	return p
}

// ForArticle metadatos de la página de un artículo.
// meta puede ser nil; la descripción cae en la meta description del artículo y luego en los
// primeros 160 caracteres del resumen.
func ForArticle(a *entity.Article, meta *entity.SEOMeta, site Site) Page {
	fallbackTitle := a.Title
	if site.Name != "" {
		fallbackTitle = a.Title + " - " + site.Name
	}
	if meta == nil {
		meta = &entity.SEOMeta{}
	}
	m := *meta
	if m.Description == "" {
		m.Description = firstNonEmpty(a.MetaDescription, truncateRunes(a.Summary, MaxDescription))
	}
	if m.Keywords == "" {
		m.Keywords = firstNonEmpty(a.MetaKeywords, a.Tags, site.DefaultKeywords)
	}
	if m.CanonicalURL == "" {
		m.CanonicalURL = a.CanonicalURL
		if m.CanonicalURL == "" && site.Domain != "" {
			m.CanonicalURL = site.FullDomain() + "/blog/" + a.Slug + "/"
		}
	}
	if m.OGType == "" {
		m.OGType = "article"
	}
	if m.OGImage == "" {
		m.OGImage = a.FeaturedImage
	}
	p := Resolve(&m, fallbackTitle)
	if p.SchemaMarkup == "" {
		p.SchemaMarkup = articleSchema(a, site)
	}
	return p
}

// ForListing metadatos de listados del blog (portada o tag).
func ForListing(tag string, site Site) Page {
	title := "Blog - " + site.Name
	desc := site.Description
	if tag != "" {
		title = "Artigos sobre " + tag + " - " + site.Name
		desc = "Artigos sobre " + tag + " no blog da " + site.Name + "."
	}
	return Resolve(&entity.SEOMeta{Description: truncateRunes(desc, MaxDescription), Keywords: site.DefaultKeywords}, title)
}

// OrganizationSchema JSON-LD de la empresa (RealEstateAgent).
func OrganizationSchema(site Site) string {
	schema := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "RealEstateAgent",
		"name":        site.Name,
		"url":         site.FullDomain(),
		"description": site.Description,
	}
	if site.Phone != "" {
		schema["telephone"] = site.Phone
	}
	if site.Email != "" {
		schema["email"] = site.Email
	}
	b, _ := json.Marshal(schema)
	return string(b)
}

func articleSchema(a *entity.Article, site Site) string {
	schema := map[string]any{
		"@context":     "https://schema.org",
		"@type":        "BlogPosting",
		"headline":     a.Title,
		"description":  firstNonEmpty(a.MetaDescription, a.Summary),
		"author":       map[string]any{"@type": "Person", "name": a.AuthorName},
		"publisher":    map[string]any{"@type": "Organization", "name": site.Name},
		"wordCount":    len(strings.Fields(a.Body)),
		"timeRequired": fmt.Sprintf("PT%dM", blog.ReadingTime(a.Body)),
	}
	if a.PublishedAt != nil {
		schema["datePublished"] = a.PublishedAt.Format(time.RFC3339)
	}
	if !a.UpdatedAt.IsZero() {
		schema["dateModified"] = a.UpdatedAt.Format(time.RFC3339)
	}
	if tags := blog.Tags(a); len(tags) > 0 {
		schema["keywords"] = strings.Join(tags, ", ")
	}
	b, _ := json.Marshal(schema)
	return string(b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
