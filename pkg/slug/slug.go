package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make genera la URL amigable de un título: sin acentos, minúsculas y separada por guiones.
// "Avaliação de Imóveis: guia 2025" -> "avaliacao-de-imoveis-guia-2025".
func Make(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Unique agrega un sufijo numérico si el slug ya existe (exists lo decide el llamador).
func Unique(base string, exists func(string) bool) string {
	candidate := base
	for i := 2; exists(candidate); i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	return candidate
}
