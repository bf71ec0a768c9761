package draft_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/carta-pro/internal/application/draft"
	"github.com/tu-usuario/carta-pro/internal/domain"
	"github.com/tu-usuario/carta-pro/internal/domain/entity"
	"github.com/tu-usuario/carta-pro/internal/domain/identity"
	"github.com/tu-usuario/carta-pro/pkg/i18n"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testMenuID = "00000000-0000-0000-0000-0000000000aa"

func newStore() *draft.Store {
	return draft.NewStore(i18n.New("es"))
}

// canonicalMenu arma una carta canónica con una categoría persistida "Tamaño"
// y una opción persistida "Chica".
func canonicalMenu() *entity.Menu {
	return &entity.Menu{
		ID:           testMenuID,
		RestaurantID: "rest-1",
		Name:         "Almuerzo",
		Description:  "Menú del mediodía",
		Price:        decimal.RequireFromString("12.50"),
		ImageURL:     "https://cdn.example.com/almuerzo.png",
		IsActive:     true,
		Categories: []entity.Category{
			{
				ID:           identity.Persisted("cat-1"),
				MenuID:       testMenuID,
				Name:         "Tamaño",
				MaxOptions:   1,
				IsRequired:   true,
				DisplayOrder: 0,
				Options: []entity.Option{
					{
						ID:              identity.Persisted("opt-1"),
						CategoryID:      identity.Persisted("cat-1"),
						Name:            "Chica",
						AdditionalPrice: decimal.Zero,
						DisplayOrder:    0,
					},
				},
			},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida del borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestBegin_CopiaCamposYConvierteElPrecioATexto(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	snap, err := s.Snapshot(testMenuID)
	require.NoError(t, err)
	assert.Equal(t, "Almuerzo", snap.Name)
	assert.Equal(t, "12.5", snap.Price, "el precio se guarda como texto normalizado")
	assert.Equal(t, snap.ImageURL, snap.InitialImageURL,
		"al abrir, la imagen inicial es el snapshot de la actual")
	require.Len(t, snap.Categories, 1)
	assert.False(t, snap.Categories[0].ID.IsDraft())
}

func TestSnapshot_SinBorradorRetornaErrNoDraft(t *testing.T) {
	s := newStore()
	_, err := s.Snapshot("no-existe")
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestDiscard_EliminaElBorradorYEsIdempotente(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())
	require.True(t, s.Has(testMenuID))

	s.Discard(testMenuID)
	assert.False(t, s.Has(testMenuID), "ausencia de clave significa sin ediciones pendientes")
	s.Discard(testMenuID) // segunda vez: no-op
}

// TestAislamiento_MutarElBorradorNoTocaLaEntradaCanonica: la propiedad
// central del Draft Store. Ediciones abandonadas jamás mutan la lista canónica.
func TestAislamiento_MutarElBorradorNoTocaLaEntradaCanonica(t *testing.T) {
	s := newStore()
	menu := canonicalMenu()
	s.Begin(menu)

	require.NoError(t, s.UpdateField(testMenuID, draft.FieldName, "Cena"))
	require.NoError(t, s.UpdateCategoryField(testMenuID, 0, draft.CategoryFieldName, "Porción"))
	require.NoError(t, s.UpdateOptionField(testMenuID, 0, 0, draft.OptionFieldName, "Mediana"))
	require.NoError(t, s.RemoveOption(testMenuID, 0, 0))

	assert.Equal(t, "Almuerzo", menu.Name, "la entidad canónica no debe mutar")
	assert.Equal(t, "Tamaño", menu.Categories[0].Name)
	require.Len(t, menu.Categories[0].Options, 1)
	assert.Equal(t, "Chica", menu.Categories[0].Options[0].Name)
}

// TestCopyOnWrite_LosSnapshotsNoVenMutacionesPosteriores: cada mutación
// publica una estructura nueva; un lector con snapshot viejo nunca observa
// una estructura a medio actualizar.
func TestCopyOnWrite_LosSnapshotsNoVenMutacionesPosteriores(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	before, err := s.Snapshot(testMenuID)
	require.NoError(t, err)

	require.NoError(t, s.AddCategory(testMenuID))
	require.NoError(t, s.UpdateOptionField(testMenuID, 0, 0, draft.OptionFieldAdditionalPrice, "3,5"))

	assert.Len(t, before.Categories, 1, "el snapshot previo no ve la categoría nueva")
	assert.Equal(t, "0", before.Categories[0].Options[0].AdditionalPrice)

	// Mutar el snapshot tampoco afecta al store.
	before.Categories[0].Name = "hackeada"
	after, err := s.Snapshot(testMenuID)
	require.NoError(t, err)
	assert.Equal(t, "Tamaño", after.Categories[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones de carta
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateField_PrecioPasaPorElNormalizador(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.UpdateField(testMenuID, draft.FieldPrice, "12,5"))
	snap, _ := s.Snapshot(testMenuID)
	assert.Equal(t, "12.5", snap.Price)

	// keystroke inválido: el valor anterior queda
	require.NoError(t, s.UpdateField(testMenuID, draft.FieldPrice, "12.3.4"))
	snap, _ = s.Snapshot(testMenuID)
	assert.Equal(t, "12.5", snap.Price, "entrada inválida no debe pisar el precio")
}

func TestUpdateField_FlagsSeCoercionanABooleano(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.UpdateField(testMenuID, draft.FieldAvailableOnline, "true"))
	require.NoError(t, s.UpdateField(testMenuID, draft.FieldIsActive, "garbage"))

	snap, _ := s.Snapshot(testMenuID)
	assert.True(t, snap.AvailableOnline)
	assert.False(t, snap.IsActive, "valor no booleano coerciona a false")
}

func TestUpdateField_CampoDesconocidoFalla(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())
	err := s.UpdateField(testMenuID, draft.MenuField("precio_oculto"), "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCategory_DefaultsYDisplayOrder(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.AddCategory(testMenuID))
	snap, _ := s.Snapshot(testMenuID)
	require.Len(t, snap.Categories, 2)

	nueva := snap.Categories[1]
	assert.True(t, nueva.ID.IsDraft(), "categoría nueva lleva id temporal")
	assert.Equal(t, "Nueva categoría", nueva.Name, "nombre por defecto localizado")
	assert.Equal(t, 1, nueva.MaxOptions)
	assert.True(t, nueva.IsRequired)
	assert.Equal(t, 1, nueva.DisplayOrder, "display_order = largo del array al crear")
	assert.Empty(t, nueva.Options)
}

func TestUpdateCategoryField_MaxOptionsInvalidoCoercionaACero(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.UpdateCategoryField(testMenuID, 0, draft.CategoryFieldMaxOptions, "3"))
	snap, _ := s.Snapshot(testMenuID)
	assert.Equal(t, 3, snap.Categories[0].MaxOptions)

	require.NoError(t, s.UpdateCategoryField(testMenuID, 0, draft.CategoryFieldMaxOptions, "tres"))
	snap, _ = s.Snapshot(testMenuID)
	assert.Equal(t, 0, snap.Categories[0].MaxOptions,
		"entrada inválida coerciona a 0; el commit de creación lo trata como inválido")
}

func TestUpdateCategoryField_IndiceFueraDeRango(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())
	err := s.UpdateCategoryField(testMenuID, 5, draft.CategoryFieldName, "x")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestRemoveCategory_SpliceLocal(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())
	require.NoError(t, s.AddCategory(testMenuID))

	require.NoError(t, s.RemoveCategory(testMenuID, 1))
	snap, _ := s.Snapshot(testMenuID)
	require.Len(t, snap.Categories, 1)
	assert.Equal(t, "Tamaño", snap.Categories[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones de opciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAddOption_DefaultsYDisplayOrder(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.AddOption(testMenuID, 0))
	snap, _ := s.Snapshot(testMenuID)
	require.Len(t, snap.Categories[0].Options, 2)

	nueva := snap.Categories[0].Options[1]
	assert.True(t, nueva.ID.IsDraft())
	assert.Equal(t, "Nueva opción", nueva.Name)
	assert.Equal(t, "0", nueva.AdditionalPrice)
	assert.Equal(t, 1, nueva.DisplayOrder)
}

func TestUpdateOptionField_PrecioAdicionalSeNormaliza(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.UpdateOptionField(testMenuID, 0, 0, draft.OptionFieldAdditionalPrice, "2,50"))
	snap, _ := s.Snapshot(testMenuID)
	assert.Equal(t, "2.50", snap.Categories[0].Options[0].AdditionalPrice)
}

func TestRemoveOption_IndiceFueraDeRango(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())
	assert.ErrorIs(t, s.RemoveOption(testMenuID, 0, 9), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveOption(testMenuID, 3, 0), domain.ErrIndexOutOfRange)
}

// ──────────────────────────────────────────────────────────────────────────────
// Foco de edición inline
// ──────────────────────────────────────────────────────────────────────────────

// TestFocoDeEdicion_UnSoloNodoPorNivel: el slot es único; entrar en edición
// sobre un segundo nodo reemplaza al primero en vez de acumular.
func TestFocoDeEdicion_UnSoloNodoPorNivel(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	first := identity.Persisted("cat-1")
	second := identity.NewDraft()

	require.NoError(t, s.SetEditingCategory(testMenuID, &first))
	require.NoError(t, s.SetEditingCategory(testMenuID, &second))

	snap, _ := s.Snapshot(testMenuID)
	require.NotNil(t, snap.EditingCategory)
	assert.True(t, snap.EditingCategory.Equal(second), "el slot guarda solo el último nodo")

	require.NoError(t, s.SetEditingCategory(testMenuID, nil))
	snap, _ = s.Snapshot(testMenuID)
	assert.Nil(t, snap.EditingCategory)
}

// ──────────────────────────────────────────────────────────────────────────────
// Imagen
// ──────────────────────────────────────────────────────────────────────────────

func TestRestoreInitialImage_ReponeElSnapshotDeApertura(t *testing.T) {
	s := newStore()
	s.Begin(canonicalMenu())

	require.NoError(t, s.SetImageURL(testMenuID, "https://cdn.example.com/nueva.png"))
	snap, _ := s.Snapshot(testMenuID)
	require.Equal(t, "https://cdn.example.com/nueva.png", snap.ImageURL)

	require.NoError(t, s.RestoreInitialImage(testMenuID))
	snap, _ = s.Snapshot(testMenuID)
	assert.Equal(t, "https://cdn.example.com/almuerzo.png", snap.ImageURL,
		"tras un upload fallido vuelve la imagen inicial, sin refetch del nodo")
}
