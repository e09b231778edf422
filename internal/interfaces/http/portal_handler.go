package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/portal"
)

// PortalHandler endpoints del portal del cliente. El customer_id sale siempre del token.
type PortalHandler struct {
	uc *portal.UseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *portal.UseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión en el portal
// @Description  El teléfono puede venir con máscara; se comparan solo los dígitos.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PortalLoginRequest  true  "phone, password"
// @Success      200   {object}  dto.PortalLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/portal/login [post]
func (h *PortalHandler) Login(c *fiber.Ctx) error {
	var in dto.PortalLoginRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeLoginError(c, err)
	}
	return c.JSON(out)
}

// Dashboard GET /api/portal/dashboard
func (h *PortalHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales GET /api/portal/sales
func (h *PortalHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.MyPurchases(c.Context(), GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PaySecondDeposit godoc
// @Summary      Confirmar pago del segundo depósito
// @Tags         portal
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.PortalSaleDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/portal/sales/{id}/pay-second-deposit [post]
func (h *PortalHandler) PaySecondDeposit(c *fiber.Ctx) error {
	out, err := h.uc.PaySecondDeposit(c.Context(), GetCustomerID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Document descarga el laudo final.
// GET /api/portal/sales/:id/document
func (h *PortalHandler) Document(c *fiber.Ctx) error {
	rc, filename, err := h.uc.DownloadFinalDocument(c.Context(), GetCustomerID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	// fasthttp cierra el stream al terminar la respuesta.
	return c.SendStream(rc)
}

// ChangePassword PUT /api/portal/password
func (h *PortalHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if err := h.uc.ChangePassword(c.Context(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Senha alterada com sucesso"})
}

// Support POST /api/portal/support
func (h *PortalHandler) Support(c *fiber.Ctx) error {
	var in dto.SupportRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if err := h.uc.ContactSupport(c.Context(), GetCustomerID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Mensagem enviada com sucesso"})
}
