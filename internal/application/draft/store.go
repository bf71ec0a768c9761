package draft

import (
	"strconv"
	"strings"
	"sync"

	"github.com/tu-usuario/carta-pro/internal/domain"
	"github.com/tu-usuario/carta-pro/internal/domain/entity"
	"github.com/tu-usuario/carta-pro/internal/domain/identity"
	"github.com/tu-usuario/carta-pro/internal/domain/money"
	"github.com/tu-usuario/carta-pro/pkg/i18n"
)

// Menu es la copia de trabajo aislada de una carta en edición. Los precios se
// guardan como texto normalizado mientras se teclean; la conversión a decimal
// ocurre recién en el commit. Una vez publicada en el Store, la estructura es
// inmutable: toda mutación reemplaza el valor completo (copy-on-write), nunca
// escribe sobre slices compartidos.
type Menu struct {
	MenuID          string
	RestaurantID    string
	Name            string
	Description     string
	Price           string // texto normalizado
	ImageURL        string
	InitialImageURL string // snapshot al abrir; restaura si falla un upload
	IsActive        bool
	AvailableOnline bool
	AvailableOnsite bool
	Categories      []Category

	// Foco de edición inline: a lo sumo un nodo por nivel. Entrar en edición
	// sobre un segundo nodo reemplaza el slot, no acumula.
	EditingCategory *identity.NodeID
	EditingOption   *identity.NodeID
}

// Category nodo intermedio del borrador.
type Category struct {
	ID           identity.NodeID
	Name         string
	MaxOptions   int
	IsRequired   bool
	DisplayOrder int
	Options      []Option
}

// Option hoja del borrador.
type Option struct {
	ID              identity.NodeID
	Name            string
	AdditionalPrice string // texto normalizado
	DisplayOrder    int
}

// Campos mutables por UpdateField y sus variantes por nivel.
type MenuField string

const (
	FieldName            MenuField = "name"
	FieldDescription     MenuField = "description"
	FieldPrice           MenuField = "price"
	FieldImageURL        MenuField = "image_url"
	FieldIsActive        MenuField = "is_active"
	FieldAvailableOnline MenuField = "available_online"
	FieldAvailableOnsite MenuField = "available_onsite"
)

type CategoryField string

const (
	CategoryFieldName       CategoryField = "name"
	CategoryFieldMaxOptions CategoryField = "max_options"
	CategoryFieldIsRequired CategoryField = "is_required"
)

type OptionField string

const (
	OptionFieldName            OptionField = "name"
	OptionFieldAdditionalPrice OptionField = "additional_price"
)

// Store mantiene los borradores por id de carta. Ausencia de clave significa
// "sin ediciones pendientes". Cada borrador pertenece en exclusiva a la sesión
// de edición activa; la lista canónica nunca se toca desde aquí.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]*Menu
	tr     *i18n.Translator
}

// NewStore construye el Store vacío.
func NewStore(tr *i18n.Translator) *Store {
	return &Store{drafts: make(map[string]*Menu), tr: tr}
}

// Begin abre la sesión de edición de una carta: copia los campos canónicos y
// una copia estructural (no por referencia) de categorías y opciones.
func (s *Store) Begin(menu *entity.Menu) {
	d := &Menu{
		MenuID:          menu.ID,
		RestaurantID:    menu.RestaurantID,
		Name:            menu.Name,
		Description:     menu.Description,
		Price:           menu.Price.String(),
		ImageURL:        menu.ImageURL,
		InitialImageURL: menu.ImageURL,
		IsActive:        menu.IsActive,
		AvailableOnline: menu.AvailableOnline,
		AvailableOnsite: menu.AvailableOnsite,
		Categories:      copyFromEntity(menu.Categories),
	}
	s.mu.Lock()
	s.drafts[menu.ID] = d
	s.mu.Unlock()
}

// Has indica si existe borrador para la carta.
func (s *Store) Has(menuID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.drafts[menuID]
	return ok
}

// Discard cierra la sesión descartando el borrador. Idempotente.
func (s *Store) Discard(menuID string) {
	s.mu.Lock()
	delete(s.drafts, menuID)
	s.mu.Unlock()
}

// Snapshot devuelve una copia profunda del borrador; mutarla no afecta al Store.
func (s *Store) Snapshot(menuID string) (*Menu, error) {
	s.mu.RLock()
	d, ok := s.drafts[menuID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNoDraft
	}
	clone := *d
	clone.Categories = cloneCategories(d.Categories)
	return &clone, nil
}

// CategoryAt devuelve una copia de la categoría en el índice dado.
func (s *Store) CategoryAt(menuID string, index int) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[menuID]
	if !ok {
		return Category{}, domain.ErrNoDraft
	}
	if index < 0 || index >= len(d.Categories) {
		return Category{}, domain.ErrIndexOutOfRange
	}
	cat := d.Categories[index]
	cat.Options = cloneOptions(cat.Options)
	return cat, nil
}

// OptionAt devuelve una copia de la opción en los índices dados.
func (s *Store) OptionAt(menuID string, catIndex, optIndex int) (Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[menuID]
	if !ok {
		return Option{}, domain.ErrNoDraft
	}
	if catIndex < 0 || catIndex >= len(d.Categories) {
		return Option{}, domain.ErrIndexOutOfRange
	}
	opts := d.Categories[catIndex].Options
	if optIndex < 0 || optIndex >= len(opts) {
		return Option{}, domain.ErrIndexOutOfRange
	}
	return opts[optIndex], nil
}

// mutate aplica fn sobre una copia del borrador y publica el resultado.
// fn recibe el valor por copia y debe reemplazar slices, no escribirlos.
func (s *Store) mutate(menuID string, fn func(d Menu) (Menu, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.drafts[menuID]
	if !ok {
		return domain.ErrNoDraft
	}
	next, err := fn(*cur)
	if err != nil {
		return err
	}
	s.drafts[menuID] = &next
	return nil
}

// UpdateField muta un campo escalar de la carta. El precio pasa por el
// normalizador; los flags se coercionan a booleano; el resto se guarda tal cual.
func (s *Store) UpdateField(menuID string, field MenuField, value string) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		switch field {
		case FieldName:
			d.Name = value
		case FieldDescription:
			d.Description = value
		case FieldPrice:
			d.Price = money.NormalizeInput(d.Price, value)
		case FieldImageURL:
			d.ImageURL = value
		case FieldIsActive:
			d.IsActive = coerceBool(value)
		case FieldAvailableOnline:
			d.AvailableOnline = coerceBool(value)
		case FieldAvailableOnsite:
			d.AvailableOnsite = coerceBool(value)
		default:
			return d, domain.ErrInvalidInput
		}
		return d, nil
	})
}

// AddCategory agrega una categoría nueva al final: id temporal, nombre por
// defecto localizado, max_options=1, requerida, display_order = largo actual.
func (s *Store) AddCategory(menuID string) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		cat := Category{
			ID:           identity.NewDraft(),
			Name:         s.tr.DefaultCategoryName(),
			MaxOptions:   1,
			IsRequired:   true,
			DisplayOrder: len(d.Categories),
			Options:      nil,
		}
		d.Categories = append(cloneCategories(d.Categories), cat)
		return d, nil
	})
}

// UpdateCategoryField muta un campo de la categoría en el índice dado.
// max_options se coerciona a entero (inválido -> 0, que el commit del flujo
// de creación trata como inválido); is_required se coerciona a booleano.
func (s *Store) UpdateCategoryField(menuID string, index int, field CategoryField, value string) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		if index < 0 || index >= len(d.Categories) {
			return d, domain.ErrIndexOutOfRange
		}
		cats := cloneCategories(d.Categories)
		switch field {
		case CategoryFieldName:
			cats[index].Name = value
		case CategoryFieldMaxOptions:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				n = 0
			}
			cats[index].MaxOptions = n
		case CategoryFieldIsRequired:
			cats[index].IsRequired = coerceBool(value)
		default:
			return d, domain.ErrInvalidInput
		}
		d.Categories = cats
		return d, nil
	})
}

// RemoveCategory quita la categoría del borrador. La política de red (borrado
// inmediato de nodos persistidos) vive en el editor; aquí solo se hace el splice.
func (s *Store) RemoveCategory(menuID string, index int) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		if index < 0 || index >= len(d.Categories) {
			return d, domain.ErrIndexOutOfRange
		}
		cats := make([]Category, 0, len(d.Categories)-1)
		cats = append(cats, d.Categories[:index]...)
		cats = append(cats, d.Categories[index+1:]...)
		d.Categories = cats
		return d, nil
	})
}

// AddOption agrega una opción nueva al final de la categoría: id temporal,
// nombre por defecto localizado, precio adicional "0".
func (s *Store) AddOption(menuID string, catIndex int) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		if catIndex < 0 || catIndex >= len(d.Categories) {
			return d, domain.ErrIndexOutOfRange
		}
		cats := cloneCategories(d.Categories)
		opt := Option{
			ID:              identity.NewDraft(),
			Name:            s.tr.DefaultOptionName(),
			AdditionalPrice: "0",
			DisplayOrder:    len(cats[catIndex].Options),
		}
		cats[catIndex].Options = append(cats[catIndex].Options, opt)
		d.Categories = cats
		return d, nil
	})
}

// UpdateOptionField muta un campo de la opción en los índices dados. El precio
// adicional pasa por el normalizador, igual que el precio base.
func (s *Store) UpdateOptionField(menuID string, catIndex, optIndex int, field OptionField, value string) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		if catIndex < 0 || catIndex >= len(d.Categories) {
			return d, domain.ErrIndexOutOfRange
		}
		cats := cloneCategories(d.Categories)
		opts := cats[catIndex].Options
		if optIndex < 0 || optIndex >= len(opts) {
			return d, domain.ErrIndexOutOfRange
		}
		switch field {
		case OptionFieldName:
			opts[optIndex].Name = value
		case OptionFieldAdditionalPrice:
			opts[optIndex].AdditionalPrice = money.NormalizeInput(opts[optIndex].AdditionalPrice, value)
		default:
			return d, domain.ErrInvalidInput
		}
		d.Categories = cats
		return d, nil
	})
}

// RemoveOption quita la opción del borrador (solo splice, ver RemoveCategory).
func (s *Store) RemoveOption(menuID string, catIndex, optIndex int) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		if catIndex < 0 || catIndex >= len(d.Categories) {
			return d, domain.ErrIndexOutOfRange
		}
		cats := cloneCategories(d.Categories)
		opts := cats[catIndex].Options
		if optIndex < 0 || optIndex >= len(opts) {
			return d, domain.ErrIndexOutOfRange
		}
		next := make([]Option, 0, len(opts)-1)
		next = append(next, opts[:optIndex]...)
		next = append(next, opts[optIndex+1:]...)
		cats[catIndex].Options = next
		d.Categories = cats
		return d, nil
	})
}

// SetEditingCategory fija el foco de edición inline de categorías. nil lo limpia.
func (s *Store) SetEditingCategory(menuID string, id *identity.NodeID) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		d.EditingCategory = id
		return d, nil
	})
}

// SetEditingOption fija el foco de edición inline de opciones. nil lo limpia.
func (s *Store) SetEditingOption(menuID string, id *identity.NodeID) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		d.EditingOption = id
		return d, nil
	})
}

// SetImageURL guarda la URL devuelta por el blob store tras un upload exitoso.
func (s *Store) SetImageURL(menuID, url string) error {
	return s.UpdateField(menuID, FieldImageURL, url)
}

// RestoreInitialImage repone la imagen que había al abrir la sesión; se usa
// cuando un upload falla y el cambio pendiente se descarta.
func (s *Store) RestoreInitialImage(menuID string) error {
	return s.mutate(menuID, func(d Menu) (Menu, error) {
		d.ImageURL = d.InitialImageURL
		return d, nil
	})
}

// ── helpers de copia estructural ────────────────────────────────────────────

func cloneCategories(cats []Category) []Category {
	out := make([]Category, len(cats))
	copy(out, cats)
	for i := range out {
		out[i].Options = cloneOptions(out[i].Options)
	}
	return out
}

func cloneOptions(opts []Option) []Option {
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}

func copyFromEntity(cats []entity.Category) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		dc := Category{
			ID:           c.ID,
			Name:         c.Name,
			MaxOptions:   c.MaxOptions,
			IsRequired:   c.IsRequired,
			DisplayOrder: c.DisplayOrder,
			Options:      make([]Option, 0, len(c.Options)),
		}
		for _, o := range c.Options {
			dc.Options = append(dc.Options, Option{
				ID:              o.ID,
				Name:            o.Name,
				AdditionalPrice: o.AdditionalPrice.String(),
				DisplayOrder:    o.DisplayOrder,
			})
		}
		out = append(out, dc)
	}
	return out
}

// coerceBool replica la coerción laxa del editor: "true"/"1"/"on" -> true,
// cualquier otra cosa -> false.
func coerceBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return strings.EqualFold(strings.TrimSpace(v), "on")
	}
	return b
}
