package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/carta-pro/internal/domain/identity"
)

// TestNewDraft_EsDetectable verifica que todo id generado por el allocator
// se reconoce como borrador, tanto por la etiqueta como por el prefijo wire.
func TestNewDraft_EsDetectable(t *testing.T) {
	id := identity.NewDraft()

	assert.True(t, id.IsDraft(), "un id asignado localmente debe ser draft")
	assert.True(t, strings.HasPrefix(id.String(), "tmp-"),
		"el valor wire debe llevar el prefijo tmp-")
	assert.False(t, id.IsZero())
}

// TestPersisted_NoEsDraft verifica que un id devuelto por la BD nunca se
// clasifica como borrador.
func TestPersisted_NoEsDraft(t *testing.T) {
	id := identity.Persisted("3f0e8a12-9c41-4d6b-b6a7-0a1b2c3d4e5f")
	assert.False(t, id.IsDraft(), "un id de BD no debe ser draft")
}

// TestNewDraft_SinColisiones genera un lote de ids y exige unicidad.
func TestNewDraft_SinColisiones(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := identity.NewDraft()
		require.False(t, seen[id.String()], "colisión de id temporal: %s", id)
		seen[id.String()] = true
	}
}

// TestFromWire_ClasificaPorPrefijo cubre la frontera HTTP: ids crudos con y
// sin prefijo tmp-.
func TestFromWire_ClasificaPorPrefijo(t *testing.T) {
	assert.True(t, identity.FromWire("tmp-1712000000-ab12cd34").IsDraft())
	assert.False(t, identity.FromWire("cat-1").IsDraft())
	assert.False(t, identity.FromWire("").IsDraft())
	assert.True(t, identity.FromWire("").IsZero())
}

func TestEqual_ComparaPorValor(t *testing.T) {
	a := identity.Persisted("cat-1")
	b := identity.FromWire("cat-1")
	assert.True(t, a.Equal(b))
}
