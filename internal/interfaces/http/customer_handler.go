package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/application/sales"
)

// CustomerHandler maneja las peticiones HTTP de clientes (personal).
type CustomerHandler struct {
	uc          *sales.CustomerUseCase
	provisioner *portal.CredentialProvisioner
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *sales.CustomerUseCase, provisioner *portal.CredentialProvisioner) *CustomerHandler {
	return &CustomerHandler{uc: uc, provisioner: provisioner}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?q=&city=&state=&limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var in dto.CustomerListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	list, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	customer, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// ProvisionLogin crea el acceso al portal del cliente y devuelve la contraseña inicial.
// POST /api/customers/:id/login
func (h *CustomerHandler) ProvisionLogin(c *fiber.Ctx) error {
	cred, err := h.provisioner.ProvisionLogin(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cred)
}

// ProvisionMissing crea accesos para todos los clientes que no tienen.
// POST /api/customers/provision-logins
func (h *CustomerHandler) ProvisionMissing(c *fiber.Ctx) error {
	res, err := h.provisioner.ProvisionMissing(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
