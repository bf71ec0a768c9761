package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/carta-pro/internal/application/dto"
	"github.com/tu-usuario/carta-pro/internal/application/editor"
	"github.com/tu-usuario/carta-pro/internal/domain"
	"github.com/tu-usuario/carta-pro/internal/domain/entity"
)

// MenuHandler maneja la lista canónica y el ciclo de vida de cartas enteras.
type MenuHandler struct {
	uc *editor.UseCase
}

// NewMenuHandler construye el handler de cartas.
func NewMenuHandler(uc *editor.UseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// requestGate adapta la compuerta sí/no del editor al mundo HTTP: la
// confirmación viaja como query param confirm=true; sin él, la operación
// se rechaza sin efectos.
type requestGate struct {
	confirmed bool
}

func (g requestGate) Confirm(ctx context.Context, prompt string) bool { return g.confirmed }

// List godoc
// @Summary      Listar cartas del restaurante (lista canónica)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MenuListResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "restaurant_id requerido"})
	}
	// Activación inicial o refresh manual: ?refresh=true refetchea antes de leer.
	if c.QueryBool("refresh", false) {
		if err := h.uc.Refresh(c.UserContext(), restaurantID); err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FETCH_FAILED", Message: err.Error()})
		}
	}
	items := make([]dto.MenuResponse, 0)
	for _, m := range h.uc.Menus().Menus() {
		if m.RestaurantID != restaurantID {
			continue
		}
		items = append(items, toMenuResponse(m))
	}
	return c.JSON(dto.MenuListResponse{Items: items})
}

// Create godoc
// @Summary      Crear carta (flujo de creación: commit inmediato, sin borrador)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "Carta completa con categorías y opciones"
// @Success      201   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "restaurant_id requerido"})
	}
	var in dto.CreateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	menuID, err := h.uc.CreateMenu(c.UserContext(), restaurantID, in)
	if err != nil {
		return mapEditorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": menuID})
}

// Delete godoc
// @Summary      Eliminar carta completa (cascada categorías y opciones)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID de la carta"
// @Param        confirm  query  bool    false  "Confirmación explícita"
// @Success      200  {object}  dto.StatusResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	menuID := c.Params("id")
	gate := requestGate{confirmed: c.QueryBool("confirm", false)}
	if err := h.uc.DeleteMenu(c.UserContext(), gate, restaurantID, menuID); err != nil {
		return mapEditorError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "deleted"})
}

// mapEditorError traduce la taxonomía de errores del editor a HTTP.
func mapEditorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "carta no encontrada"})
	case errors.Is(err, domain.ErrNoDraft):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_DRAFT", Message: "no hay sesión de edición abierta para esta carta"})
	case errors.Is(err, domain.ErrDeclined):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_CONFIRMED", Message: "la operación requiere confirmación (confirm=true)"})
	case errors.Is(err, domain.ErrEmptyName):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el nombre no puede estar vacío"})
	case errors.Is(err, domain.ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio inválido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice fuera de rango"})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
}

func toMenuResponse(m *entity.Menu) dto.MenuResponse {
	out := dto.MenuResponse{
		ID:              m.ID,
		RestaurantID:    m.RestaurantID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		ImageURL:        m.ImageURL,
		IsActive:        m.IsActive,
		AvailableOnline: m.AvailableOnline,
		AvailableOnsite: m.AvailableOnsite,
		Categories:      make([]dto.CategoryResponse, 0, len(m.Categories)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, cat := range m.Categories {
		cr := dto.CategoryResponse{
			ID:           cat.ID.String(),
			Name:         cat.Name,
			MaxOptions:   cat.MaxOptions,
			IsRequired:   cat.IsRequired,
			DisplayOrder: cat.DisplayOrder,
			Options:      make([]dto.OptionResponse, 0, len(cat.Options)),
		}
		for _, opt := range cat.Options {
			cr.Options = append(cr.Options, dto.OptionResponse{
				ID:              opt.ID.String(),
				Name:            opt.Name,
				AdditionalPrice: opt.AdditionalPrice,
				DisplayOrder:    opt.DisplayOrder,
			})
		}
		out.Categories = append(out.Categories, cr)
	}
	return out
}
