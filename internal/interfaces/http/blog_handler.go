package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/blog"
)

// BlogHandler lectura pública del blog.
type BlogHandler struct {
	uc *blog.ArticleUseCase
}

// NewBlogHandler construye el handler.
func NewBlogHandler(uc *blog.ArticleUseCase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

// List GET /api/blog?q=&page=1
func (h *BlogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search búsqueda rápida (autocompletar), máximo 10 resultados.
// GET /api/blog/search?q=
func (h *BlogHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.QuickSearch(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"results": out})
}

// ByTag GET /api/blog/tag/:tag?page=1
func (h *BlogHandler) ByTag(c *fiber.Ctx) error {
	out, err := h.uc.ByTag(c.Context(), c.Params("tag"), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail GET /api/blog/:slug
func (h *BlogHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.Context(), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
