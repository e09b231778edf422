package seo_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/seo"
)

var site = seo.Site{
	Name:            "Prisma Avaliações",
	Domain:          "prismaavaliacoes.com.br",
	Description:     "Avaliações imobiliárias profissionais",
	DefaultKeywords: "avaliação imobiliária",
}

func TestRobotsContent_Combinaciones(t *testing.T) {
	assert.Equal(t, "index, follow", seo.RobotsContent(false, false))
	assert.Equal(t, "noindex, follow", seo.RobotsContent(true, false))
	assert.Equal(t, "index, nofollow", seo.RobotsContent(false, true))
	assert.Equal(t, "noindex, nofollow", seo.RobotsContent(true, true))
}

func TestResolve_OGYTwitterHeredanTituloYDescripcion(t *testing.T) {
	m := &entity.SEOMeta{Title: "Laudos", Description: "Laudos técnicos", OGImage: "/media/og.png"}

	p := seo.Resolve(m, "fallback")
	assert.Equal(t, "Laudos", p.OGTitle)
	assert.Equal(t, "Laudos técnicos", p.OGDescription)
	assert.Equal(t, "Laudos", p.TwitterTitle)
	assert.Equal(t, "Laudos técnicos", p.TwitterDescription)
	assert.Equal(t, "/media/og.png", p.TwitterImage)
	assert.Equal(t, seo.DefaultOGType, p.OGType)
	assert.Equal(t, seo.DefaultTwitterCard, p.TwitterCard)

	p = seo.Resolve(&entity.SEOMeta{}, "fallback")
	assert.Equal(t, "fallback", p.Title)
	assert.Equal(t, "fallback", p.OGTitle)
}

func TestValidate_RechazaCamposLargosYJSONInvalido(t *testing.T) {
	valid := entity.SEOMeta{ContentType: entity.ContentTypeArticle, ObjectID: "1", Title: "ok", SchemaMarkup: `{"@type":"Thing"}`}
	require.NoError(t, seo.Validate(&valid))

	long := valid
	long.Title = strings.Repeat("á", seo.MaxTitle+1)
	assert.ErrorIs(t, seo.Validate(&long), domain.ErrInvalidInput)

	desc := valid
	desc.Description = strings.Repeat("x", seo.MaxDescription+1)
	assert.ErrorIs(t, seo.Validate(&desc), domain.ErrInvalidInput)

	schema := valid
	schema.SchemaMarkup = `{"@type": `
	assert.ErrorIs(t, seo.Validate(&schema), domain.ErrInvalidInput)

	card := valid
	card.TwitterCard = "gallery"
	assert.ErrorIs(t, seo.Validate(&card), domain.ErrInvalidInput)

	orphan := valid
	orphan.ObjectID = ""
	assert.ErrorIs(t, seo.Validate(&orphan), domain.ErrInvalidInput)
}

func TestForArticle_SinMetaUsaResumoYDominio(t *testing.T) {
	at := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	a := &entity.Article{
		Title:       "Mercado em 2025",
		Slug:        "mercado-em-2025",
		Summary:     strings.Repeat("r", 200),
		Body:        "texto",
		Tags:        "mercado",
		Published:   true,
		PublishedAt: &at,
	}

	p := seo.ForArticle(a, nil, site)
	assert.Equal(t, "Mercado em 2025 - Prisma Avaliações", p.Title)
	assert.Len(t, p.Description, seo.MaxDescription)
	assert.Equal(t, "mercado", p.Keywords)
	assert.Equal(t, "https://prismaavaliacoes.com.br/blog/mercado-em-2025/", p.CanonicalURL)
	assert.Equal(t, "article", p.OGType)
	assert.Equal(t, "index, follow", p.Robots)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(p.SchemaMarkup), &schema))
	assert.Equal(t, "BlogPosting", schema["@type"])
	assert.Equal(t, "2025-05-10T09:00:00Z", schema["datePublished"])
}

func TestForArticle_MetaTienePrioridad(t *testing.T) {
	a := &entity.Article{Title: "T", Slug: "t", MetaDescription: "meta do artigo"}
	meta := &entity.SEOMeta{Title: "Título SEO", NoIndex: true}

	p := seo.ForArticle(a, meta, site)
	assert.Equal(t, "Título SEO", p.Title)
	assert.Equal(t, "meta do artigo", p.Description)
	assert.Equal(t, "noindex, follow", p.Robots)
	assert.Empty(t, meta.Description, "el meta original no se modifica")
}

func TestOrganizationSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(seo.OrganizationSchema(site)), &schema))
	assert.Equal(t, "RealEstateAgent", schema["@type"])
	assert.Equal(t, "https://prismaavaliacoes.com.br", schema["url"])
}
