package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/prisma-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Avaliação de Imóveis: guia 2025": "avaliacao-de-imoveis-guia-2025",
		"  Mercado   imobiliário  ":       "mercado-imobiliario",
		"Laudo técnico — ABNT NBR 14653":  "laudo-tecnico-abnt-nbr-14653",
		"¿Qué es un laudo?":               "que-es-un-laudo",
		"":                                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "slug de %q", in)
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"laudo": true, "laudo-2": true}
	got := slug.Unique("laudo", func(s string) bool { return taken[s] })
	assert.Equal(t, "laudo-3", got)

	assert.Equal(t, "novo", slug.Unique("novo", func(string) bool { return false }))
}
