package entity

import "time"

// Tipos de contenido con metadatos SEO.
const (
	ContentTypeArticle = "article"
	ContentTypePage    = "page"
)

// SEOMeta metadatos SEO asociados a un objeto de contenido (ContentType + ObjectID).
type SEOMeta struct {
	ID                 string
	ContentType        string
	ObjectID           string
	Title              string // <= 60
	Description        string // <= 160
	Keywords           string
	CanonicalURL       string
	NoIndex            bool
	NoFollow           bool
	OGTitle            string
	OGDescription      string
	OGImage            string
	OGType             string
	TwitterCard        string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
	SchemaMarkup       string // JSON-LD
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
