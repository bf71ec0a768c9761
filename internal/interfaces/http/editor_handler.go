package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/carta-pro/internal/application/draft"
	"github.com/tu-usuario/carta-pro/internal/application/dto"
	"github.com/tu-usuario/carta-pro/internal/application/editor"
)

// EditorHandler expone la sesión de edición de una carta: abrir/cerrar el
// borrador, mutar el árbol en memoria, borrar nodos y commitear. Todas las
// mutaciones devuelven la vista actualizada del borrador para el re-render.
type EditorHandler struct {
	uc *editor.UseCase
}

// NewEditorHandler construye el handler del editor.
func NewEditorHandler(uc *editor.UseCase) *EditorHandler {
	return &EditorHandler{uc: uc}
}

// Begin godoc
// @Summary      Abrir sesión de edición (copia la entrada canónica al borrador)
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la carta"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/editor [post]
func (h *EditorHandler) Begin(c *fiber.Ctx) error {
	menuID := c.Params("id")
	if err := h.uc.Begin(menuID); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// Close godoc
// @Summary      Cerrar sesión sin guardar (descarta el borrador sin red)
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la carta"
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/menus/{id}/editor [delete]
func (h *EditorHandler) Close(c *fiber.Ctx) error {
	h.uc.Close(c.Params("id"))
	return c.JSON(dto.StatusResponse{Status: "discarded"})
}

// Draft godoc
// @Summary      Ver el borrador actual
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la carta"
// @Success      200  {object}  dto.DraftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/editor [get]
func (h *EditorHandler) Draft(c *fiber.Ctx) error {
	return h.respondDraft(c, c.Params("id"))
}

// UpdateField godoc
// @Summary      Mutar un campo escalar de la carta en el borrador
// @Tags         editor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la carta"
// @Param        body  body  dto.UpdateFieldRequest  true  "campo y valor"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/fields [patch]
func (h *EditorHandler) UpdateField(c *fiber.Ctx) error {
	menuID := c.Params("id")
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateField(menuID, draft.MenuField(in.Field), in.Value); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// SetFocus godoc
// @Summary      Fijar el foco de edición inline (un solo nodo por nivel)
// @Tags         editor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la carta"
// @Param        body  body  dto.FocusRequest  true  "nivel y nodo (vacío limpia)"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/focus [put]
func (h *EditorHandler) SetFocus(c *fiber.Ctx) error {
	menuID := c.Params("id")
	var in dto.FocusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var err error
	switch in.Level {
	case "category":
		err = h.uc.SetEditingCategory(menuID, in.NodeID)
	case "option":
		err = h.uc.SetEditingOption(menuID, in.NodeID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "level debe ser category u option"})
	}
	if err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// AddCategory godoc
// @Summary      Agregar una categoría nueva al borrador
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la carta"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/categories [post]
func (h *EditorHandler) AddCategory(c *fiber.Ctx) error {
	menuID := c.Params("id")
	if err := h.uc.AddCategory(menuID); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// UpdateCategoryField godoc
// @Summary      Mutar un campo de una categoría del borrador
// @Tags         editor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string  true  "ID de la carta"
// @Param        index  path  int     true  "Índice de la categoría"
// @Param        body   body  dto.UpdateFieldRequest  true  "campo y valor"
// @Success      200    {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/categories/{index} [patch]
func (h *EditorHandler) UpdateCategoryField(c *fiber.Ctx) error {
	menuID := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateCategoryField(menuID, index, draft.CategoryField(in.Field), in.Value); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// RemoveCategory godoc
// @Summary      Eliminar categoría (persistida: borrado inmediato confirmado; temporal: solo local)
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID de la carta"
// @Param        index    path   int     true   "Índice de la categoría"
// @Param        confirm  query  bool    false  "Confirmación explícita (solo nodos persistidos)"
// @Success      200  {object}  dto.DraftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/editor/categories/{index} [delete]
func (h *EditorHandler) RemoveCategory(c *fiber.Ctx) error {
	menuID := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	gate := requestGate{confirmed: c.QueryBool("confirm", false)}
	if err := h.uc.RemoveCategory(c.UserContext(), gate, GetRestaurantID(c), menuID, index); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// AddOption godoc
// @Summary      Agregar una opción nueva a una categoría del borrador
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID de la carta"
// @Param        index  path  int     true  "Índice de la categoría"
// @Success      200    {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/categories/{index}/options [post]
func (h *EditorHandler) AddOption(c *fiber.Ctx) error {
	menuID := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	if err := h.uc.AddOption(menuID, index); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// UpdateOptionField godoc
// @Summary      Mutar un campo de una opción del borrador
// @Tags         editor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la carta"
// @Param        index   path  int     true  "Índice de la categoría"
// @Param        optidx  path  int     true  "Índice de la opción"
// @Param        body    body  dto.UpdateFieldRequest  true  "campo y valor"
// @Success      200     {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/categories/{index}/options/{optidx} [patch]
func (h *EditorHandler) UpdateOptionField(c *fiber.Ctx) error {
	menuID := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	optIdx, err := c.ParamsInt("optidx")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateOptionField(menuID, index, optIdx, draft.OptionField(in.Field), in.Value); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// RemoveOption godoc
// @Summary      Eliminar opción (misma política que categorías)
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID de la carta"
// @Param        index    path   int     true   "Índice de la categoría"
// @Param        optidx   path   int     true   "Índice de la opción"
// @Param        confirm  query  bool    false  "Confirmación explícita (solo nodos persistidos)"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/menus/{id}/editor/categories/{index}/options/{optidx} [delete]
func (h *EditorHandler) RemoveOption(c *fiber.Ctx) error {
	menuID := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	optIdx, err := c.ParamsInt("optidx")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_INDEX", Message: "índice inválido"})
	}
	gate := requestGate{confirmed: c.QueryBool("confirm", false)}
	if err := h.uc.RemoveOption(c.UserContext(), gate, GetRestaurantID(c), menuID, index, optIdx); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

// Commit godoc
// @Summary      Guardar: serializa el borrador entero en un payload y lo aplica
// @Tags         editor
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la carta"
// @Success      200  {object}  dto.StatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/editor/commit [post]
func (h *EditorHandler) Commit(c *fiber.Ctx) error {
	menuID := c.Params("id")
	if err := h.uc.Commit(c.UserContext(), GetRestaurantID(c), menuID); err != nil {
		return mapEditorError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "committed"})
}

// AttachImage godoc
// @Summary      Subir imagen de la carta al blob store y guardar la URL en el borrador
// @Tags         editor
// @Security     Bearer
// @Accept       octet-stream
// @Produce      json
// @Param        id  path  string  true  "ID de la carta"
// @Success      200  {object}  dto.DraftResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/editor/image [put]
func (h *EditorHandler) AttachImage(c *fiber.Ctx) error {
	menuID := c.Params("id")
	contentType := c.Get("Content-Type", "application/octet-stream")
	if _, err := h.uc.AttachImage(c.UserContext(), menuID, c.Body(), contentType); err != nil {
		return mapEditorError(c, err)
	}
	return h.respondDraft(c, menuID)
}

func (h *EditorHandler) respondDraft(c *fiber.Ctx, menuID string) error {
	out, err := h.uc.Draft(menuID)
	if err != nil {
		return mapEditorError(c, err)
	}
	return c.JSON(out)
}
