// Package blog reglas de publicación y navegación de artículos.
// Opera sobre slices en memoria; el repositorio entrega los candidatos ya cargados.
package blog

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

const (
	// PageSize artículos por página en listados públicos.
	PageSize = 6
	// RelatedLimit artículos relacionados mostrados por defecto.
	RelatedLimit = 3
	// QuickSearchMinLength largo mínimo de la búsqueda rápida.
	QuickSearchMinLength = 3
	// QuickSearchLimit resultados máximos de la búsqueda rápida.
	QuickSearchLimit = 10
	// SummaryWords palabras del resumen truncado.
	SummaryWords = 30
	// WordsPerMinute velocidad de lectura estimada.
	WordsPerMinute = 200
)

// Publish pasa el artículo a publicado. PublishedAt solo se fija si estaba vacío.
// Devuelve false si ya estaba publicado.
func Publish(a *entity.Article, now time.Time) bool {
	if a.Published {
		return false
	}
	a.Published = true
	if a.PublishedAt == nil {
		t := now
		a.PublishedAt = &t
	}
	return true
}

// Unpublish vuelve el artículo a borrador y limpia PublishedAt.
// Al republicar recibirá una fecha nueva.
func Unpublish(a *entity.Article) bool {
	if !a.Published {
		return false
	}
	a.Published = false
	a.PublishedAt = nil
	return true
}

// IsVisible publicado y con fecha de publicación alcanzada.
func IsVisible(a *entity.Article, now time.Time) bool {
	return a.Published && a.PublishedAt != nil && !a.PublishedAt.After(now)
}

// Tags lista de tags sin espacios ni entradas vacías.
func Tags(a *entity.Article) []string {
	if strings.TrimSpace(a.Tags) == "" {
		return nil
	}
	parts := strings.Split(a.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasTag comparación exacta sin distinguir mayúsculas.
func HasTag(a *entity.Article, tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, t := range Tags(a) {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SortByPublishedDesc ordena por PublishedAt descendente; empates por CreatedAt descendente.
func SortByPublishedDesc(list []entity.Article) {
	sort.SliceStable(list, func(i, j int) bool {
		pi, pj := publishedAt(&list[i]), publishedAt(&list[j])
		if !pi.Equal(pj) {
			return pi.After(pj)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func publishedAt(a *entity.Article) time.Time {
	if a.PublishedAt == nil {
		return time.Time{}
	}
	return *a.PublishedAt
}

// RelatedArticles artículos publicados que contienen TODOS los tags del artículo (AND).
// Si el artículo no tiene tags o ningún candidato los cumple, completa con los publicados más recientes.
// Nunca incluye al propio artículo ni repite entradas.
func RelatedArticles(a *entity.Article, candidates []entity.Article, limit int) []entity.Article {
	if limit <= 0 {
		limit = RelatedLimit
	}
	pool := make([]entity.Article, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == a.ID || !c.Published || c.PublishedAt == nil {
			continue
		}
		pool = append(pool, c)
	}
	SortByPublishedDesc(pool)

	tags := Tags(a)
	out := make([]entity.Article, 0, limit)
	if len(tags) > 0 {
		for i := range pool {
			if len(out) == limit {
				break
			}
			if hasAllTags(&pool[i], tags) {
				out = append(out, pool[i])
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	seen := make(map[string]struct{}, limit)
	for i := range pool {
		if len(out) == limit {
			break
		}
		if _, dup := seen[pool[i].ID]; dup {
			continue
		}
		seen[pool[i].ID] = struct{}{}
		out = append(out, pool[i])
	}
	return out
}

func hasAllTags(a *entity.Article, tags []string) bool {
	for _, t := range tags {
		if !HasTag(a, t) {
			return false
		}
	}
	return true
}

// Previous publicado más cercano con PublishedAt estrictamente anterior.
func Previous(a *entity.Article, candidates []entity.Article) *entity.Article {
	if a.PublishedAt == nil {
		return nil
	}
	var best *entity.Article
	for i := range candidates {
		c := &candidates[i]
		if c.ID == a.ID || !c.Published || c.PublishedAt == nil || !c.PublishedAt.Before(*a.PublishedAt) {
			continue
		}
		if best == nil || c.PublishedAt.After(*best.PublishedAt) {
			best = c
		}
	}
	return best
}

// Next publicado más cercano con PublishedAt estrictamente posterior.
func Next(a *entity.Article, candidates []entity.Article) *entity.Article {
	if a.PublishedAt == nil {
		return nil
	}
	var best *entity.Article
	for i := range candidates {
		c := &candidates[i]
		if c.ID == a.ID || !c.Published || c.PublishedAt == nil || !c.PublishedAt.After(*a.PublishedAt) {
			continue
		}
		if best == nil || c.PublishedAt.Before(*best.PublishedAt) {
			best = c
		}
	}
	return best
}

// Matches búsqueda por subcadena sin distinguir mayúsculas en título, resumen, contenido y tags.
// Consulta vacía coincide con todo.
func Matches(a *entity.Article, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range []string{a.Title, a.Summary, a.Body, a.Tags} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// QuickSearchAllowed la búsqueda rápida exige al menos QuickSearchMinLength caracteres.
func QuickSearchAllowed(q string) bool {
	return len([]rune(strings.TrimSpace(q))) >= QuickSearchMinLength
}

// ReadingTime minutos estimados de lectura (200 palabras por minuto, mínimo 1).
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + WordsPerMinute/2) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// TruncateSummary primeras n palabras seguidas de "..." si el texto es más largo.
func TruncateSummary(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "..."
}
