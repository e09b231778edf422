package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain"
	domainblog "github.com/jhoicas/prisma-api/internal/domain/blog"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
	"github.com/jhoicas/prisma-api/internal/domain/seo"
	"github.com/jhoicas/prisma-api/pkg/logger"
	"github.com/jhoicas/prisma-api/pkg/slug"
)

// ArticleUseCase administración de artículos (personal) y lectura pública del blog.
type ArticleUseCase struct {
	articles repository.ArticleRepository
	seoRepo  repository.SEORepository
	site     seo.Site
	log      *logger.Logger
	now      func() time.Time
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(articles repository.ArticleRepository, seoRepo repository.SEORepository, site seo.Site, log *logger.Logger) *ArticleUseCase {
	return &ArticleUseCase{articles: articles, seoRepo: seoRepo, site: site, log: log, now: time.Now}
}

// ── Panel ────────────────────────────────────────────────────────────────────

// Create crea un artículo. Sin slug explícito se genera desde el título con sufijo si ya existe.
func (uc *ArticleUseCase) Create(ctx context.Context, authorID string, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	now := uc.now()
	a := &entity.Article{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.apply(ctx, a, in); err != nil {
		return nil, err
	}
	if err := uc.articles.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.log.Info().Str("article_id", a.ID).Str("slug", a.Slug).Bool("published", a.Published).Msg("artículo creado")
	out := toArticleResponse(a)
	return &out, nil
}

// Update reemplaza los campos editables. Slug vacío conserva el actual.
func (uc *ArticleUseCase) Update(ctx context.Context, id string, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, a, in); err != nil {
		return nil, err
	}
	a.UpdatedAt = uc.now()
	if err := uc.articles.Update(ctx, a); err != nil {
		return nil, err
	}
	out := toArticleResponse(a)
	return &out, nil
}

func (uc *ArticleUseCase) apply(ctx context.Context, a *entity.Article, in dto.ArticleRequest) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: el título es obligatorio", domain.ErrInvalidInput)
	}
	a.Title = title
	a.AuthorName = strings.TrimSpace(in.AuthorName)
	a.Summary = strings.TrimSpace(in.Summary)
	a.Body = in.Body
	a.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
	a.MetaDescription = strings.TrimSpace(in.MetaDescription)
	a.MetaKeywords = strings.TrimSpace(in.MetaKeywords)
	a.Tags = strings.Join(domainblog.Tags(&entity.Article{Tags: in.Tags}), ", ")
	a.CanonicalURL = strings.TrimSpace(in.CanonicalURL)

	if err := uc.assignSlug(ctx, a, in.Slug); err != nil {
		return err
	}
	if in.Published {
		domainblog.Publish(a, uc.now())
	} else {
		domainblog.Unpublish(a)
	}
	return nil
}

// assignSlug explícito debe estar libre (ErrDuplicate); generado recibe sufijo -2, -3...
func (uc *ArticleUseCase) assignSlug(ctx context.Context, a *entity.Article, requested string) error {
	requested = slug.Make(requested)
	if requested == "" && a.Slug != "" {
		return nil
	}
	var lookupErr error
	exists := func(s string) bool {
		ok, err := uc.articles.ExistsSlug(ctx, s, a.ID)
		if err != nil {
			lookupErr = err
			return false
		}
		return ok
	}
	if requested != "" {
		if requested != a.Slug && exists(requested) {
			return fmt.Errorf("%w: slug %q en uso", domain.ErrDuplicate, requested)
		}
		a.Slug = requested
		return lookupErr
	}
	base := slug.Make(a.Title)
	if base == "" {
		return fmt.Errorf("%w: no se pudo generar el slug del título", domain.ErrInvalidInput)
	}
	a.Slug = slug.Unique(base, exists)
	return lookupErr
}

func (uc *ArticleUseCase) load(ctx context.Context, id string) (*entity.Article, error) {
	a, err := uc.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// GetByID artículo para el panel (borradores incluidos).
func (uc *ArticleUseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toArticleResponse(a)
	return &out, nil
}

// Publish publica el artículo; ya publicado no cambia nada.
func (uc *ArticleUseCase) Publish(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	return uc.transition(ctx, id, func(a *entity.Article) bool { return domainblog.Publish(a, uc.now()) })
}

// Unpublish vuelve el artículo a borrador.
func (uc *ArticleUseCase) Unpublish(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	return uc.transition(ctx, id, domainblog.Unpublish)
}

func (uc *ArticleUseCase) transition(ctx context.Context, id string, fn func(*entity.Article) bool) (*dto.ArticleResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if fn(a) {
		a.UpdatedAt = uc.now()
		if err := uc.articles.Update(ctx, a); err != nil {
			return nil, err
		}
	}
	out := toArticleResponse(a)
	return &out, nil
}

// AdminList listado paginado del panel, más recientes primero.
func (uc *ArticleUseCase) AdminList(ctx context.Context, in dto.PageRequest) (*dto.ArticleAdminListResponse, error) {
	in.DefaultPage()
	list, err := uc.articles.List(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.articles.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for i := range list {
		items = append(items, toArticleResponse(&list[i]))
	}
	return &dto.ArticleAdminListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// UpsertSEO guarda los metadatos SEO del artículo y devuelve la página resuelta.
func (uc *ArticleUseCase) UpsertSEO(ctx context.Context, articleID string, in dto.SEOMetaRequest) (*seo.Page, error) {
	a, err := uc.load(ctx, articleID)
	if err != nil {
		return nil, err
	}
	m := fromSEORequest(a.ID, in)
	seo.Normalize(m)
	if err := seo.Validate(m); err != nil {
		return nil, err
	}
	now := uc.now()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := uc.seoRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	page := seo.ForArticle(a, m, uc.site)
	return &page, nil
}

// ── Público ──────────────────────────────────────────────────────────────────

// visible artículos publicados con fecha alcanzada, más recientes primero.
func (uc *ArticleUseCase) visible(ctx context.Context) ([]entity.Article, error) {
	list, err := uc.articles.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := list[:0]
	for i := range list {
		if domainblog.IsVisible(&list[i], now) {
			out = append(out, list[i])
		}
	}
	domainblog.SortByPublishedDesc(out)
	return out, nil
}

// List página pública de artículos; q filtra sin largo mínimo.
// Página menor a 1 es la primera; mayor a la última es la última.
func (uc *ArticleUseCase) List(ctx context.Context, q string, page int) (*dto.ArticleListResponse, error) {
	all, err := uc.visible(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	matched := filter(all, func(a *entity.Article) bool { return domainblog.Matches(a, q) })
	out := paginate(matched, page)
	out.Query = q
	out.SEO = seo.ForListing("", uc.site)
	return out, nil
}

// ByTag página pública de artículos con el tag (coincidencia exacta sin distinguir mayúsculas).
func (uc *ArticleUseCase) ByTag(ctx context.Context, tag string, page int) (*dto.ArticleListResponse, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("%w: tag vacío", domain.ErrInvalidInput)
	}
	all, err := uc.visible(ctx)
	if err != nil {
		return nil, err
	}
	matched := filter(all, func(a *entity.Article) bool { return domainblog.HasTag(a, tag) })
	out := paginate(matched, page)
	out.Tag = tag
	out.SEO = seo.ForListing(tag, uc.site)
	return out, nil
}

// QuickSearch búsqueda rápida: menos de 3 caracteres devuelve lista vacía; máximo 10 resultados.
func (uc *ArticleUseCase) QuickSearch(ctx context.Context, q string) ([]dto.ArticleCardDTO, error) {
	if !domainblog.QuickSearchAllowed(q) {
		return []dto.ArticleCardDTO{}, nil
	}
	all, err := uc.visible(ctx)
	if err != nil {
		return nil, err
	}
	matched := filter(all, func(a *entity.Article) bool { return domainblog.Matches(a, q) })
	if len(matched) > domainblog.QuickSearchLimit {
		matched = matched[:domainblog.QuickSearchLimit]
	}
	return toCards(matched), nil
}

// Detail artículo público por slug con relacionados, navegación y SEO.
// Borradores y publicaciones futuras responden ErrNotFound.
func (uc *ArticleUseCase) Detail(ctx context.Context, slugStr string) (*dto.ArticleDetailResponse, error) {
	a, err := uc.articles.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if a == nil || !domainblog.IsVisible(a, uc.now()) {
		return nil, domain.ErrNotFound
	}
	all, err := uc.visible(ctx)
	if err != nil {
		return nil, err
	}
	meta, err := uc.seoRepo.Get(ctx, entity.ContentTypeArticle, a.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleDetailResponse{
		Article:  toArticleResponse(a),
		Related:  toCards(domainblog.RelatedArticles(a, all, domainblog.RelatedLimit)),
		Previous: toCardPtr(domainblog.Previous(a, all)),
		Next:     toCardPtr(domainblog.Next(a, all)),
		SEO:      seo.ForArticle(a, meta, uc.site),
	}, nil
}

func filter(list []entity.Article, keep func(*entity.Article) bool) []entity.Article {
	out := make([]entity.Article, 0, len(list))
	for i := range list {
		if keep(&list[i]) {
			out = append(out, list[i])
		}
	}
	return out
}

func paginate(list []entity.Article, page int) *dto.ArticleListResponse {
	total := len(list)
	pages := (total + domainblog.PageSize - 1) / domainblog.PageSize
	if pages == 0 {
		pages = 1
	}
	page = max(1, min(page, pages))
	start := min((page-1)*domainblog.PageSize, total)
	end := min(start+domainblog.PageSize, total)
	return &dto.ArticleListResponse{
		Items:      toCards(list[start:end]),
		Page:       page,
		TotalPages: pages,
		Total:      total,
	}
}
