package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain"
)

// errorStatus código HTTP y código de error para los errores de dominio.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDocumentMissing):
		return fiber.StatusNotFound, "DOCUMENT_MISSING"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden, "UNAUTHORIZED_ACCESS"
	case errors.Is(err, domain.ErrNotEligible):
		return fiber.StatusForbidden, "NOT_ELIGIBLE"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotificationFailed):
		return fiber.StatusBadGateway, "NOTIFICATION_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde el error de dominio con su código HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// writeLoginError credenciales inválidas → 401, cuenta sin acceso → 403.
func writeLoginError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	return writeError(c, err)
}
