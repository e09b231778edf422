package entity

import "time"

// Article artículo del blog. Draft mientras Published=false.
// PublishedAt se fija al publicar y se limpia al despublicar.
type Article struct {
	ID              string
	Title           string
	Slug            string
	AuthorID        string
	AuthorName      string
	Summary         string
	Body            string
	FeaturedImage   string
	Published       bool
	MetaDescription string
	MetaKeywords    string
	Tags            string // separados por coma: "avaliação, mercado"
	CanonicalURL    string
	CreatedAt       time.Time
	PublishedAt     *time.Time
	UpdatedAt       time.Time
}
