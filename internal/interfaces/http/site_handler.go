package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain/seo"
	"github.com/jhoicas/prisma-api/pkg/config"
)

// SiteHandler expone los datos estáticos del sitio.
type SiteHandler struct {
	resp dto.SiteResponse
}

// NewSiteHandler arma la respuesta una sola vez; la configuración no cambia en ejecución.
func NewSiteHandler(cfg config.SiteConfig, site seo.Site) *SiteHandler {
	return &SiteHandler{resp: dto.SiteResponse{
		AdminHeader:        cfg.AdminHeader,
		AdminTitle:         cfg.AdminTitle,
		AdminIndexTitle:    cfg.AdminIndexTitle,
		CompanyName:        cfg.CompanyName,
		Slogan:             cfg.Slogan,
		WhatsApp:           cfg.WhatsApp,
		ContactEmail:       cfg.ContactEmail,
		Domain:             cfg.Domain,
		OrganizationSchema: seo.OrganizationSchema(site),
	}}
}

// Get GET /api/site
func (h *SiteHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.resp)
}
