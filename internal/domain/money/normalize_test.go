package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/carta-pro/internal/domain"
	"github.com/tu-usuario/carta-pro/internal/domain/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// NormalizeInput es la compuerta de entrada de precios: nunca lanza error,
// un keystroke inválido simplemente devuelve el valor anterior.
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeInput_ComaDecimalSeConvierteEnPunto(t *testing.T) {
	assert.Equal(t, "12.5", money.NormalizeInput("12", "12,5"))
	assert.Equal(t, "2.50", money.NormalizeInput("2,5", "2,50"))
}

func TestNormalizeInput_VacioYPuntoSonEntradaEnProgreso(t *testing.T) {
	assert.Equal(t, "", money.NormalizeInput("12", ""))
	assert.Equal(t, ".", money.NormalizeInput("12", "."))
	assert.Equal(t, "12.", money.NormalizeInput("12", "12."),
		"un punto colgante es entrada en progreso válida")
}

func TestNormalizeInput_RecortaFraccionADosDigitos(t *testing.T) {
	assert.Equal(t, "1.23", money.NormalizeInput("1.2", "1.2345"))
	assert.Equal(t, "0.99", money.NormalizeInput("0.9", "0,999"))
}

func TestNormalizeInput_RechazaBasuraDevolviendoElAnterior(t *testing.T) {
	assert.Equal(t, "12", money.NormalizeInput("12", "12.3.4"),
		"dos puntos decimales deben rechazar el keystroke")
	assert.Equal(t, "7.5", money.NormalizeInput("7.5", "abc"))
	assert.Equal(t, "", money.NormalizeInput("", "1x"))
}

// TestNormalizeInput_Idempotente: para todo valor ya normalizado x,
// NormalizeInput(x, x) == x.
func TestNormalizeInput_Idempotente(t *testing.T) {
	for _, x := range []string{"", ".", "0", "12", "12.", "12.5", "12.50", "0.01"} {
		assert.Equal(t, x, money.NormalizeInput(x, x),
			"NormalizeInput debe ser idempotente sobre %q", x)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Parse / ParseNonNegative: validación del commit
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_ValoresValidos(t *testing.T) {
	d, err := money.Parse("12.5")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	d, err = money.Parse("12.")
	require.NoError(t, err, "punto colgante tolerado en commit")
	assert.True(t, d.Equal(decimal.NewFromInt(12)))
}

func TestParse_ValoresInvalidos(t *testing.T) {
	for _, s := range []string{"", ".", "abc", "12.3.4"} {
		_, err := money.Parse(s)
		assert.ErrorIs(t, err, domain.ErrInvalidPrice, "Parse(%q) debe fallar", s)
	}
}

func TestParseNonNegative_RechazaNegativos(t *testing.T) {
	_, err := money.ParseNonNegative("-1")
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	d, err := money.ParseNonNegative("0")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}
