// Package blog casos de uso del blog: administración de artículos y páginas públicas.
package blog

import (
	"github.com/jhoicas/prisma-api/internal/application/dto"
	domainblog "github.com/jhoicas/prisma-api/internal/domain/blog"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

func toArticleResponse(a *entity.Article) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:              a.ID,
		Title:           a.Title,
		Slug:            a.Slug,
		AuthorName:      a.AuthorName,
		Summary:         a.Summary,
		Body:            a.Body,
		FeaturedImage:   a.FeaturedImage,
		Published:       a.Published,
		MetaDescription: a.MetaDescription,
		MetaKeywords:    a.MetaKeywords,
		Tags:            nonNil(domainblog.Tags(a)),
		CanonicalURL:    a.CanonicalURL,
		ReadingMinutes:  domainblog.ReadingTime(a.Body),
		CreatedAt:       a.CreatedAt,
		PublishedAt:     a.PublishedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toCard(a *entity.Article) dto.ArticleCardDTO {
	return dto.ArticleCardDTO{
		Title:          a.Title,
		Slug:           a.Slug,
		AuthorName:     a.AuthorName,
		Summary:        domainblog.TruncateSummary(a.Summary, domainblog.SummaryWords),
		FeaturedImage:  a.FeaturedImage,
		Tags:           nonNil(domainblog.Tags(a)),
		ReadingMinutes: domainblog.ReadingTime(a.Body),
		PublishedAt:    a.PublishedAt,
	}
}

func toCards(list []entity.Article) []dto.ArticleCardDTO {
	out := make([]dto.ArticleCardDTO, 0, len(list))
	for i := range list {
		out = append(out, toCard(&list[i]))
	}
	return out
}

func toCardPtr(a *entity.Article) *dto.ArticleCardDTO {
	if a == nil {
		return nil
	}
	c := toCard(a)
	return &c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func fromSEORequest(articleID string, in dto.SEOMetaRequest) *entity.SEOMeta {
	return &entity.SEOMeta{
		ContentType:        entity.ContentTypeArticle,
		ObjectID:           articleID,
		Title:              in.Title,
		Description:        in.Description,
		Keywords:           in.Keywords,
		CanonicalURL:       in.CanonicalURL,
		NoIndex:            in.NoIndex,
		NoFollow:           in.NoFollow,
		OGTitle:            in.OGTitle,
		OGDescription:      in.OGDescription,
		OGImage:            in.OGImage,
		OGType:             in.OGType,
		TwitterCard:        in.TwitterCard,
		TwitterTitle:       in.TwitterTitle,
		TwitterDescription: in.TwitterDescription,
		TwitterImage:       in.TwitterImage,
		SchemaMarkup:       in.SchemaMarkup,
	}
}
