package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/carta-pro/internal/domain"
)

// NormalizeInput sanea la entrada de texto de un precio mientras se teclea.
// Tolera coma decimal (la convierte a punto), acepta vacío y punto solo como
// valores "en progreso" y recorta la parte fraccional a 2 dígitos. Si el
// resultado no parsea como número finito, devuelve previous sin cambios: es
// una función de compuerta, el keystroke inválido se descarta sin error.
// Idempotente sobre valores ya normalizados.
func NormalizeInput(previous, raw string) string {
	s := strings.ReplaceAll(raw, ",", ".")
	if s == "" || s == "." {
		return s
	}

	parts := strings.Split(s, ".")
	if len(parts) == 2 && len(parts[1]) > 2 {
		parts[1] = parts[1][:2]
		s = parts[0] + "." + parts[1]
	}

	// "12." es entrada en progreso válida; el parseo la valida sin el punto.
	candidate := strings.TrimSuffix(s, ".")
	if candidate == "" {
		return s
	}
	if _, err := decimal.NewFromString(candidate); err != nil {
		return previous
	}
	return s
}

// Parse convierte el texto ya normalizado a decimal en el momento del commit.
// Vacío, punto solo o basura producen ErrInvalidPrice; un punto colgante se
// tolera ("12." parsea como 12).
func Parse(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSuffix(strings.ReplaceAll(s, ",", "."), ".")
	if trimmed == "" {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	return d, nil
}

// ParseNonNegative es Parse con la invariante precio >= 0.
func ParseNonNegative(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	return d, nil
}
