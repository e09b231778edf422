// Package phone concentra la normalización del teléfono del cliente.
// El mismo Normalize se usa al registrar al cliente, al crear su acceso al portal
// y en cada intento de login: cualquier divergencia deja al cliente sin poder entrar.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

// MinPasswordDigits cantidad de dígitos que se usan como contraseña por defecto.
const MinPasswordDigits = 4

// Formatos aceptados al registrar: "(xx) xxxxx-xxxx", "(xx) xxxx-xxxx" o 10/11 dígitos.
var validFormat = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$|^\d{10,11}$`)

// Normalize elimina todo carácter que no sea dígito ASCII.
// Es idempotente: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate verifica el formato con el que el personal registra el teléfono.
func Validate(raw string) error {
	if !validFormat.MatchString(strings.TrimSpace(raw)) {
		return fmt.Errorf("phone: formato inválido %q, use (xx) xxxxx-xxxx o solo números", raw)
	}
	return nil
}

// DefaultPassword devuelve los últimos 4 dígitos del teléfono normalizado.
func DefaultPassword(raw string) (string, error) {
	digits := Normalize(raw)
	if len(digits) < MinPasswordDigits {
		return "", fmt.Errorf("phone: se requieren al menos %d dígitos, se encontraron %d", MinPasswordDigits, len(digits))
	}
	return digits[len(digits)-MinPasswordDigits:], nil
}

// Username devuelve el nombre de usuario candidato para el intento n.
// n == 0 es el teléfono normalizado; a partir de 1 se agrega el sufijo "_n".
func Username(raw string, n int) string {
	digits := Normalize(raw)
	if n <= 0 {
		return digits
	}
	return fmt.Sprintf("%s_%d", digits, n)
}
