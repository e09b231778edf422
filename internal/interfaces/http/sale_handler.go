package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/sales"
)

// maxDocumentSize tope del laudo subido (20 MB).
const maxDocumentSize = 20 << 20

// SaleHandler maneja las ventas del panel.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "cliente, valor, etapas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	sale, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List GET /api/sales?status=in_progress&limit=20&offset=0
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	list, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// Update godoc
// @Summary      Editar venta
// @Description  Requiere la versión leída; si otro usuario guardó antes responde 409.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "versión, etapas, valor"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	sale, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// Advance marca la próxima etapa pendiente.
// POST /api/sales/:id/advance
func (h *SaleHandler) Advance(c *fiber.Ctx) error {
	res, err := h.uc.Advance(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// AttachDocument sube el laudo final (multipart, campo "document").
// POST /api/sales/:id/document
func (h *SaleHandler) AttachDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo 'document' requerido"})
	}
	if fh.Size > maxDocumentSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el laudo supera 20 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	sale, err := h.uc.AttachDocument(c.Context(), c.Params("id"), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}
