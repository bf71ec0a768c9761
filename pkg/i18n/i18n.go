package i18n

import "golang.org/x/text/language"

// Textos por defecto para nodos recién añadidos en el editor. El idioma se
// negocia una vez al construir el Translator (Accept-Language o config).
var defaults = map[language.Tag]struct {
	newCategory string
	newOption   string
}{
	language.Spanish: {"Nueva categoría", "Nueva opción"},
	language.English: {"New category", "New option"},
}

var matcher = language.NewMatcher([]language.Tag{
	language.Spanish, // primero = fallback
	language.English,
})

// Translator resuelve los nombres por defecto localizados del editor.
type Translator struct {
	tag language.Tag
}

// New construye el Translator negociando contra los idiomas soportados.
// Entrada vacía o no soportada cae al español.
func New(preferred string) *Translator {
	tag, _ := language.MatchStrings(matcher, preferred)
	// MatchStrings puede devolver variantes regionales (es-419); normalizar a base.
	base, _ := tag.Base()
	resolved := language.Spanish
	if base.String() == "en" {
		resolved = language.English
	}
	return &Translator{tag: resolved}
}

// DefaultCategoryName nombre por defecto de una categoría nueva.
func (t *Translator) DefaultCategoryName() string { return defaults[t.tag].newCategory }

// DefaultOptionName nombre por defecto de una opción nueva.
func (t *Translator) DefaultOptionName() string { return defaults[t.tag].newOption }
