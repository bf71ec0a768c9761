package dto

// CreateMenuRequest entrada del flujo de creación: se commitea de inmediato,
// nunca pasa por el Draft Store. Los precios llegan como texto tal cual los
// tecleó el operador; el use case los normaliza y valida.
type CreateMenuRequest struct {
	Name            string                `json:"name" validate:"required,min=1,max=200"`
	Description     string                `json:"description" validate:"omitempty,max=2000"`
	Price           string                `json:"price" validate:"required"`
	ImageURL        string                `json:"image_url" validate:"omitempty,url"`
	IsActive        bool                  `json:"is_active"`
	AvailableOnline bool                  `json:"available_online"`
	AvailableOnsite bool                  `json:"available_onsite"`
	Categories      []CreateCategoryInput `json:"categories"`
}

// CreateCategoryInput categoría dentro del flujo de creación. Invariantes:
// nombre no vacío, max_options >= 1, al menos una opción.
type CreateCategoryInput struct {
	Name       string              `json:"name" validate:"required,min=1,max=200"`
	MaxOptions int                 `json:"max_options" validate:"required,min=1"`
	IsRequired bool                `json:"is_required"`
	Options    []CreateOptionInput `json:"options" validate:"required,min=1"`
}

// CreateOptionInput opción dentro del flujo de creación.
type CreateOptionInput struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	AdditionalPrice string `json:"additional_price"`
}

// UpdateFieldRequest entrada para mutar un campo escalar del borrador.
// El valor siempre viaja como texto; el Draft Store hace la coerción.
type UpdateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// FocusRequest fija el foco de edición inline del borrador: a lo sumo un nodo
// por nivel; NodeID vacío limpia el foco del nivel indicado.
type FocusRequest struct {
	Level  string `json:"level" validate:"required,oneof=category option"`
	NodeID string `json:"node_id"`
}

// DraftResponse es la vista del borrador que se devuelve tras cada mutación.
type DraftResponse struct {
	MenuID            string                  `json:"menu_id"`
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	Price             string                  `json:"price"` // texto normalizado
	ImageURL          string                  `json:"image_url,omitempty"`
	IsActive          bool                    `json:"is_active"`
	AvailableOnline   bool                    `json:"available_online"`
	AvailableOnsite   bool                    `json:"available_onsite"`
	EditingCategoryID string                  `json:"editing_category_id,omitempty"`
	EditingOptionID   string                  `json:"editing_option_id,omitempty"`
	Categories        []DraftCategoryResponse `json:"categories"`
}

// DraftCategoryResponse categoría dentro de la vista del borrador.
type DraftCategoryResponse struct {
	ID           string                `json:"id"`
	Draft        bool                  `json:"draft"` // aún sin persistir
	Name         string                `json:"name"`
	MaxOptions   int                   `json:"max_options"`
	IsRequired   bool                  `json:"is_required"`
	DisplayOrder int                   `json:"display_order"`
	Options      []DraftOptionResponse `json:"options"`
}

// DraftOptionResponse opción dentro de la vista del borrador.
type DraftOptionResponse struct {
	ID              string `json:"id"`
	Draft           bool   `json:"draft"`
	Name            string `json:"name"`
	AdditionalPrice string `json:"additional_price"` // texto normalizado
	DisplayOrder    int    `json:"display_order"`
}
