package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/blog"
	"github.com/jhoicas/prisma-api/internal/application/dto"
)

// ArticleHandler administración de artículos del blog (personal).
type ArticleHandler struct {
	uc *blog.ArticleUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *blog.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// Create POST /api/articles
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	a, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// List GET /api/articles?limit=&offset= (incluye borradores).
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	var in dto.PageRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.AdminList(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/articles/:id
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(a)
}

// Update PUT /api/articles/:id
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	a, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(a)
}

// Publish POST /api/articles/:id/publish
func (h *ArticleHandler) Publish(c *fiber.Ctx) error {
	a, err := h.uc.Publish(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(a)
}

// Unpublish POST /api/articles/:id/unpublish
func (h *ArticleHandler) Unpublish(c *fiber.Ctx) error {
	a, err := h.uc.Unpublish(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(a)
}

// UpsertSEO PUT /api/articles/:id/seo
func (h *ArticleHandler) UpsertSEO(c *fiber.Ctx) error {
	var in dto.SEOMetaRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	page, err := h.uc.UpsertSEO(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}
