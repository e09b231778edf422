package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNotEligible        = errors.New("acción no disponible en la etapa actual de la venta")
	ErrDocumentMissing    = errors.New("documento no encontrado en el almacenamiento")
	ErrNotificationFailed = errors.New("no se pudo enviar la notificación")
)
