package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/carta-pro/internal/application/catalog"
	"github.com/tu-usuario/carta-pro/internal/application/draft"
	"github.com/tu-usuario/carta-pro/internal/application/dto"
	"github.com/tu-usuario/carta-pro/internal/domain"
	"github.com/tu-usuario/carta-pro/internal/domain/identity"
	"github.com/tu-usuario/carta-pro/internal/domain/money"
	"github.com/tu-usuario/carta-pro/internal/domain/repository"
	"github.com/tu-usuario/carta-pro/pkg/logger"
)

// UseCase orquesta el ciclo completo de edición de cartas: sesión de borrador,
// borrado inmediato de nodos persistidos, commit batcheado del borrador
// entero y refresh de la lista canónica tras cada mutación exitosa.
//
// Políticas de sincronización (coexisten):
//   - borrado puntual: un nodo persistido se borra con una petición propia
//     tras confirmación; un nodo con id temporal solo se splicea localmente.
//   - commit completo: "guardar" serializa todo el borrador en un payload
//     que el backend aplica de forma atómica.
//
// Toda falla deja el borrador exactamente como estaba antes del intento; los
// reintentos son siempre iniciados por el usuario.
type UseCase struct {
	drafts  *draft.Store
	catalog *catalog.List
	menus   repository.MenuRepository
	syncer  MenuSyncer
	blobs   BlobStore
	log     *logger.Logger
}

// NewUseCase construye el caso de uso del editor.
func NewUseCase(
	drafts *draft.Store,
	cat *catalog.List,
	menus repository.MenuRepository,
	syncer MenuSyncer,
	blobs BlobStore,
	log *logger.Logger,
) *UseCase {
	return &UseCase{drafts: drafts, catalog: cat, menus: menus, syncer: syncer, blobs: blobs, log: log}
}

// Refresh reemplaza la lista canónica entera con la representación actual del
// servidor. Si el fetch falla, la lista previa queda intacta y el error se
// reporta; no hay reintento automático.
func (uc *UseCase) Refresh(ctx context.Context, restaurantID string) error {
	menus, err := uc.menus.FetchByRestaurant(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("refrescar cartas: %w", err)
	}
	uc.catalog.Replace(menus)
	return nil
}

// Menus expone la lista canónica para los lectores.
func (uc *UseCase) Menus() *catalog.List { return uc.catalog }

// Begin abre la sesión de edición copiando la entrada canónica al Draft Store.
func (uc *UseCase) Begin(menuID string) error {
	menu := uc.catalog.Get(menuID)
	if menu == nil {
		return domain.ErrNotFound
	}
	uc.drafts.Begin(menu)
	return nil
}

// Close descarta el borrador sin commitear: ningún flush parcial, ninguna red.
func (uc *UseCase) Close(menuID string) {
	uc.drafts.Discard(menuID)
}

// Draft devuelve la vista actual del borrador.
func (uc *UseCase) Draft(menuID string) (*dto.DraftResponse, error) {
	snap, err := uc.drafts.Snapshot(menuID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(snap), nil
}

// ── mutaciones puras sobre el borrador (sin red) ────────────────────────────

// UpdateField muta un campo escalar de la carta en el borrador.
func (uc *UseCase) UpdateField(menuID string, field draft.MenuField, value string) error {
	return uc.drafts.UpdateField(menuID, field, value)
}

// AddCategory agrega una categoría nueva al borrador.
func (uc *UseCase) AddCategory(menuID string) error {
	return uc.drafts.AddCategory(menuID)
}

// UpdateCategoryField muta un campo de una categoría del borrador.
func (uc *UseCase) UpdateCategoryField(menuID string, index int, field draft.CategoryField, value string) error {
	return uc.drafts.UpdateCategoryField(menuID, index, field, value)
}

// AddOption agrega una opción nueva a la categoría del borrador.
func (uc *UseCase) AddOption(menuID string, catIndex int) error {
	return uc.drafts.AddOption(menuID, catIndex)
}

// UpdateOptionField muta un campo de una opción del borrador.
func (uc *UseCase) UpdateOptionField(menuID string, catIndex, optIndex int, field draft.OptionField, value string) error {
	return uc.drafts.UpdateOptionField(menuID, catIndex, optIndex, field, value)
}

// SetEditingCategory fija el foco de edición inline de categorías; id vacío
// lo limpia. El foco es un slot único: enfocar otro nodo reemplaza al anterior.
func (uc *UseCase) SetEditingCategory(menuID, rawID string) error {
	return uc.drafts.SetEditingCategory(menuID, focusID(rawID))
}

// SetEditingOption fija el foco de edición inline de opciones; id vacío lo limpia.
func (uc *UseCase) SetEditingOption(menuID, rawID string) error {
	return uc.drafts.SetEditingOption(menuID, focusID(rawID))
}

func focusID(raw string) *identity.NodeID {
	if raw == "" {
		return nil
	}
	id := identity.FromWire(raw)
	return &id
}

// ── borrado puntual ─────────────────────────────────────────────────────────

// RemoveCategory elimina la categoría en el índice dado. Id temporal: splice
// local, cero llamadas de red. Id persistido: confirmación, una petición con
// exactamente un nodo {id, _delete}, splice local y refetch canónico.
func (uc *UseCase) RemoveCategory(ctx context.Context, gate ConfirmationGate, restaurantID, menuID string, index int) error {
	cat, err := uc.drafts.CategoryAt(menuID, index)
	if err != nil {
		return err
	}
	if cat.ID.IsDraft() {
		// Nunca se persistió: no existe para el backend.
		return uc.drafts.RemoveCategory(menuID, index)
	}
	if !gate.Confirm(ctx, fmt.Sprintf("¿Eliminar la categoría %q y todas sus opciones?", cat.Name)) {
		return domain.ErrDeclined
	}
	payload := &dto.MenuSyncRequest{
		MenuID:      menuID,
		ScalarsOnly: true,
		Categories: []dto.CategorySyncEntry{
			{ID: cat.ID.String(), Delete: true},
		},
	}
	if _, err := uc.syncer.Upsert(ctx, payload); err != nil {
		// El borrador queda intacto: el nodo sigue visible para reintentar.
		return fmt.Errorf("borrar categoría: %w", err)
	}
	if err := uc.drafts.RemoveCategory(menuID, index); err != nil {
		return err
	}
	// El refetch, no el splice local, es la fuente de verdad tras el borrado.
	return uc.Refresh(ctx, restaurantID)
}

// RemoveOption elimina la opción en los índices dados; misma política que
// RemoveCategory, con el nodo _delete anidado bajo su categoría padre.
func (uc *UseCase) RemoveOption(ctx context.Context, gate ConfirmationGate, restaurantID, menuID string, catIndex, optIndex int) error {
	cat, err := uc.drafts.CategoryAt(menuID, catIndex)
	if err != nil {
		return err
	}
	opt, err := uc.drafts.OptionAt(menuID, catIndex, optIndex)
	if err != nil {
		return err
	}
	if opt.ID.IsDraft() {
		return uc.drafts.RemoveOption(menuID, catIndex, optIndex)
	}
	if !gate.Confirm(ctx, fmt.Sprintf("¿Eliminar la opción %q?", opt.Name)) {
		return domain.ErrDeclined
	}
	payload := &dto.MenuSyncRequest{
		MenuID:      menuID,
		ScalarsOnly: true,
		Categories: []dto.CategorySyncEntry{
			{
				ID: cat.ID.String(),
				Options: []dto.OptionSyncEntry{
					{ID: opt.ID.String(), Delete: true},
				},
			},
		},
	}
	if _, err := uc.syncer.Upsert(ctx, payload); err != nil {
		return fmt.Errorf("borrar opción: %w", err)
	}
	if err := uc.drafts.RemoveOption(menuID, catIndex, optIndex); err != nil {
		return err
	}
	return uc.Refresh(ctx, restaurantID)
}

// ── commit batcheado ────────────────────────────────────────────────────────

// Commit serializa el borrador completo en un solo payload y lo envía. Valida
// nombre no vacío y precio finito >= 0; deliberadamente NO re-valida la
// estructura de categorías/opciones (esa validación pertenece solo al flujo
// de creación). Éxito: borrador descartado + refetch canónico. Falla: borrador
// intacto para reintentar sin re-teclear.
func (uc *UseCase) Commit(ctx context.Context, restaurantID, menuID string) error {
	snap, err := uc.drafts.Snapshot(menuID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(snap.Name) == "" {
		return domain.ErrEmptyName
	}
	price, err := money.ParseNonNegative(snap.Price)
	if err != nil {
		return err
	}

	payload := &dto.MenuSyncRequest{
		MenuID:          menuID,
		RestaurantID:    restaurantID,
		Name:            snap.Name,
		Description:     snap.Description,
		Price:           price,
		ImageURL:        snap.ImageURL,
		IsActive:        snap.IsActive,
		AvailableOnline: snap.AvailableOnline,
		AvailableOnsite: snap.AvailableOnsite,
		Categories:      buildCategoryEntries(snap.Categories),
	}

	if _, err := uc.syncer.Upsert(ctx, payload); err != nil {
		return fmt.Errorf("guardar carta: %w", err)
	}
	uc.drafts.Discard(menuID)
	if err := uc.Refresh(ctx, restaurantID); err != nil {
		uc.log.Warn().Err(err).Str("menu_id", menuID).Msg("commit aplicado pero el refetch canónico falló")
		return err
	}
	return nil
}

// buildCategoryEntries traduce el borrador al diff: nodos persistidos llevan
// id, nodos con id temporal van sin id (el servidor asigna uno). Los nodos
// removidos localmente ya no están en el borrador, así que nunca llegan aquí.
func buildCategoryEntries(cats []draft.Category) []dto.CategorySyncEntry {
	entries := make([]dto.CategorySyncEntry, 0, len(cats))
	for i, c := range cats {
		entry := dto.CategorySyncEntry{
			Name:         c.Name,
			MaxOptions:   c.MaxOptions,
			IsRequired:   c.IsRequired,
			DisplayOrder: i,
			Options:      make([]dto.OptionSyncEntry, 0, len(c.Options)),
		}
		if !c.ID.IsDraft() {
			entry.ID = c.ID.String()
		}
		for j, o := range c.Options {
			opt := dto.OptionSyncEntry{
				Name:            o.Name,
				AdditionalPrice: parseOrZero(o.AdditionalPrice),
				DisplayOrder:    j,
			}
			if !o.ID.IsDraft() {
				opt.ID = o.ID.String()
			}
			entry.Options = append(entry.Options, opt)
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseOrZero: un precio de opción ilegible viaja como 0; la validación
// estructural no se re-ejecuta en el camino de edición.
func parseOrZero(s string) decimal.Decimal {
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ── flujo de creación ───────────────────────────────────────────────────────

// CreateMenu commitea una carta nueva de inmediato, sin pasar por el Draft
// Store. A diferencia del commit de edición, acá sí se valida la estructura
// completa: toda categoría con nombre, max_options >= 1 y al menos una opción.
func (uc *UseCase) CreateMenu(ctx context.Context, restaurantID string, in dto.CreateMenuRequest) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", domain.ErrEmptyName
	}
	price, err := money.ParseNonNegative(money.NormalizeInput("", in.Price))
	if err != nil {
		return "", err
	}

	entries := make([]dto.CategorySyncEntry, 0, len(in.Categories))
	for i, c := range in.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return "", domain.ErrEmptyName
		}
		if c.MaxOptions < 1 {
			return "", fmt.Errorf("%w: max_options debe ser >= 1", domain.ErrInvalidInput)
		}
		if len(c.Options) == 0 {
			return "", fmt.Errorf("%w: la categoría %q necesita al menos una opción", domain.ErrInvalidInput, c.Name)
		}
		entry := dto.CategorySyncEntry{
			Name:         c.Name,
			MaxOptions:   c.MaxOptions,
			IsRequired:   c.IsRequired,
			DisplayOrder: i,
			Options:      make([]dto.OptionSyncEntry, 0, len(c.Options)),
		}
		for j, o := range c.Options {
			if strings.TrimSpace(o.Name) == "" {
				return "", domain.ErrEmptyName
			}
			addPrice, err := money.ParseNonNegative(money.NormalizeInput("", o.AdditionalPrice))
			if err != nil {
				return "", err
			}
			entry.Options = append(entry.Options, dto.OptionSyncEntry{
				Name:            o.Name,
				AdditionalPrice: addPrice,
				DisplayOrder:    j,
			})
		}
		entries = append(entries, entry)
	}

	payload := &dto.MenuSyncRequest{
		RestaurantID:    restaurantID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           price,
		ImageURL:        in.ImageURL,
		IsActive:        in.IsActive,
		AvailableOnline: in.AvailableOnline,
		AvailableOnsite: in.AvailableOnsite,
		Categories:      entries,
	}
	menuID, err := uc.syncer.Upsert(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("crear carta: %w", err)
	}
	if err := uc.Refresh(ctx, restaurantID); err != nil {
		return menuID, err
	}
	return menuID, nil
}

// ── borrado de carta completa ───────────────────────────────────────────────

// DeleteMenu borra la carta entera (el backend cascada categorías y opciones)
// previa confirmación; también descarta cualquier borrador abierto sobre ella.
func (uc *UseCase) DeleteMenu(ctx context.Context, gate ConfirmationGate, restaurantID, menuID string) error {
	menu := uc.catalog.Get(menuID)
	if menu == nil {
		return domain.ErrNotFound
	}
	if !gate.Confirm(ctx, fmt.Sprintf("¿Eliminar la carta %q por completo?", menu.Name)) {
		return domain.ErrDeclined
	}
	if err := uc.menus.DeleteMenu(ctx, menuID); err != nil {
		return fmt.Errorf("borrar carta: %w", err)
	}
	uc.drafts.Discard(menuID)
	return uc.Refresh(ctx, restaurantID)
}

// ── imagen ──────────────────────────────────────────────────────────────────

// AttachImage sube la imagen al blob store y guarda la URL resultante en el
// borrador. Si el upload falla, el cambio pendiente se descarta y se repone
// la imagen inicial de la sesión (snapshot, no refetch).
func (uc *UseCase) AttachImage(ctx context.Context, menuID string, data []byte, contentType string) (string, error) {
	if !uc.drafts.Has(menuID) {
		return "", domain.ErrNoDraft
	}
	url, err := uc.blobs.Upload(ctx, data, contentType)
	if err != nil {
		_ = uc.drafts.RestoreInitialImage(menuID)
		return "", fmt.Errorf("subir imagen: %w", err)
	}
	if err := uc.drafts.SetImageURL(menuID, url); err != nil {
		return "", err
	}
	return url, nil
}

// ── vista del borrador ──────────────────────────────────────────────────────

func toDraftResponse(d *draft.Menu) *dto.DraftResponse {
	out := &dto.DraftResponse{
		MenuID:          d.MenuID,
		Name:            d.Name,
		Description:     d.Description,
		Price:           d.Price,
		ImageURL:        d.ImageURL,
		IsActive:        d.IsActive,
		AvailableOnline: d.AvailableOnline,
		AvailableOnsite: d.AvailableOnsite,
		Categories:      make([]dto.DraftCategoryResponse, 0, len(d.Categories)),
	}
	if d.EditingCategory != nil {
		out.EditingCategoryID = d.EditingCategory.String()
	}
	if d.EditingOption != nil {
		out.EditingOptionID = d.EditingOption.String()
	}
	for _, c := range d.Categories {
		cr := dto.DraftCategoryResponse{
			ID:           c.ID.String(),
			Draft:        c.ID.IsDraft(),
			Name:         c.Name,
			MaxOptions:   c.MaxOptions,
			IsRequired:   c.IsRequired,
			DisplayOrder: c.DisplayOrder,
			Options:      make([]dto.DraftOptionResponse, 0, len(c.Options)),
		}
		for _, o := range c.Options {
			cr.Options = append(cr.Options, dto.DraftOptionResponse{
				ID:              o.ID.String(),
				Draft:           o.ID.IsDraft(),
				Name:            o.Name,
				AdditionalPrice: o.AdditionalPrice,
				DisplayOrder:    o.DisplayOrder,
			})
		}
		out.Categories = append(out.Categories, cr)
	}
	return out
}
