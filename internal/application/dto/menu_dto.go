package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuSyncRequest es el payload de sincronización que el backend aplica de
// forma atómica por petición. Sirve tanto al commit completo de una carta
// como al borrado inmediato de un solo nodo (una única entrada con Delete).
type MenuSyncRequest struct {
	MenuID          string              `json:"menu_id,omitempty"` // vacío al crear
	RestaurantID    string              `json:"restaurant_id,omitempty"`
	Name            string              `json:"name,omitempty"`
	Description     string              `json:"description,omitempty"`
	Price           decimal.Decimal     `json:"price"`
	ImageURL        string              `json:"image_url,omitempty"`
	IsActive        bool                `json:"is_active"`
	AvailableOnline bool                `json:"available_online"`
	AvailableOnsite bool                `json:"available_onsite"`
	Categories      []CategorySyncEntry `json:"categories"`

	// ScalarsOnly distingue el borrado puntual (solo toca las entradas
	// marcadas) del commit completo (también actualiza los escalares).
	ScalarsOnly bool `json:"-"`
}

// CategorySyncEntry es la entrada de una categoría en el payload. ID vacío
// significa "nunca persistida, la BD asigna uno"; Delete marca borrado.
type CategorySyncEntry struct {
	ID           string            `json:"id,omitempty"`
	Delete       bool              `json:"_delete,omitempty"`
	Name         string            `json:"name,omitempty"`
	MaxOptions   int               `json:"max_options,omitempty"`
	IsRequired   bool              `json:"is_required,omitempty"`
	DisplayOrder int               `json:"display_order"`
	Options      []OptionSyncEntry `json:"options,omitempty"`
}

// OptionSyncEntry sigue la misma convención id/sin-id/_delete anidada bajo
// su categoría.
type OptionSyncEntry struct {
	ID              string          `json:"id,omitempty"`
	Delete          bool            `json:"_delete,omitempty"`
	Name            string          `json:"name,omitempty"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	DisplayOrder    int             `json:"display_order"`
}

// ── Respuestas de lectura (lista canónica) ──────────────────────────────────

// MenuResponse salida de una carta con su árbol completo.
type MenuResponse struct {
	ID              string             `json:"id"`
	RestaurantID    string             `json:"restaurant_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Price           decimal.Decimal    `json:"price"`
	ImageURL        string             `json:"image_url,omitempty"`
	IsActive        bool               `json:"is_active"`
	AvailableOnline bool               `json:"available_online"`
	AvailableOnsite bool               `json:"available_onsite"`
	Categories      []CategoryResponse `json:"categories"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	MaxOptions   int              `json:"max_options"`
	IsRequired   bool             `json:"is_required"`
	DisplayOrder int              `json:"display_order"`
	Options      []OptionResponse `json:"options"`
}

// OptionResponse salida de una opción.
type OptionResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	DisplayOrder    int             `json:"display_order"`
}

// MenuListResponse listado de cartas del restaurante.
type MenuListResponse struct {
	Items []MenuResponse `json:"items"`
}
