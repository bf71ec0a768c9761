package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/carta-pro/internal/domain/identity"
)

// Menu representa un ítem vendible compuesto: categorías ordenadas de
// opciones seleccionables. Es la fila canónica que devuelve la BD; la copia
// editable vive en el Draft Store.
type Menu struct {
	ID              string // UUID persistido; vacío mientras se crea
	RestaurantID    string
	Name            string
	Description     string
	Price           decimal.Decimal // precio base, 2 decimales
	ImageURL        string          // URL pública del blob store; vacío si no tiene
	IsActive        bool            // vendible
	AvailableOnline bool
	AvailableOnsite bool
	Categories      []Category // ordenadas por DisplayOrder
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Category agrupa opciones relacionadas dentro de un menú (ej. "Tamaño").
// Invariante en el flujo de creación: MaxOptions >= 1 y nombre no vacío.
type Category struct {
	ID           identity.NodeID
	MenuID       string
	Name         string
	MaxOptions   int // máximo de opciones seleccionables
	IsRequired   bool
	DisplayOrder int
	Options      []Option // ordenadas por DisplayOrder
}

// Option es una elección individual dentro de una categoría.
type Option struct {
	ID              identity.NodeID
	CategoryID      identity.NodeID
	Name            string
	AdditionalPrice decimal.Decimal // >= 0, suma al precio base
	DisplayOrder    int
}
