package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/carta-pro/internal/application/dto"
	"github.com/tu-usuario/carta-pro/internal/application/editor"
	"github.com/tu-usuario/carta-pro/internal/domain/entity"
	"github.com/tu-usuario/carta-pro/internal/domain/identity"
	"github.com/tu-usuario/carta-pro/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)
var _ editor.MenuSyncer = (*MenuRepo)(nil)

// MenuRepo implementación del puerto de cartas sobre PostgreSQL. La BD guarda
// filas planas (menus, categories, options con referencia al padre); este
// adaptador ensambla el árbol al leer y des-ensambla el diff al escribir.
type MenuRepo struct {
	pool *pgxpool.Pool
}

// NewMenuRepository construye el adaptador de persistencia para cartas.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepo {
	return &MenuRepo{pool: pool}
}

// FetchByRestaurant devuelve todas las cartas del restaurante con categorías
// y opciones anidadas, cada nivel ordenado por display_order.
func (r *MenuRepo) FetchByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Menu, error) {
	menus, err := r.fetchMenus(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return menus, nil
	}

	byMenu := make(map[string]*entity.Menu, len(menus))
	for _, m := range menus {
		byMenu[m.ID] = m
	}

	catsByID, err := r.fetchCategories(ctx, restaurantID, byMenu)
	if err != nil {
		return nil, err
	}
	if err := r.fetchOptions(ctx, restaurantID, catsByID); err != nil {
		return nil, err
	}
	// Las categorías se anexaron a cada menú mientras se escaneaban; las
	// opciones se apuntaron sobre las categorías del mapa. Reasignar al árbol.
	for _, m := range menus {
		for i := range m.Categories {
			m.Categories[i] = *catsByID[m.Categories[i].ID.String()]
		}
	}
	return menus, nil
}

func (r *MenuRepo) fetchMenus(ctx context.Context, restaurantID string) ([]*entity.Menu, error) {
	query := `
		SELECT id, restaurant_id, name, description, price, image_url, is_active, available_online, available_onsite, created_at, updated_at
		FROM menus WHERE restaurant_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()
	var menus []*entity.Menu
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.ImageURL,
			&m.IsActive, &m.AvailableOnline, &m.AvailableOnsite, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, &m)
	}
	return menus, rows.Err()
}

func (r *MenuRepo) fetchCategories(ctx context.Context, restaurantID string, byMenu map[string]*entity.Menu) (map[string]*entity.Category, error) {
	query := `
		SELECT c.id, c.menu_id, c.name, c.max_options, c.is_required, c.display_order
		FROM categories c
		JOIN menus m ON m.id = c.menu_id
		WHERE m.restaurant_id = $1
		ORDER BY c.menu_id, c.display_order`
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Category)
	for rows.Next() {
		var (
			c  entity.Category
			id string
		)
		if err := rows.Scan(&id, &c.MenuID, &c.Name, &c.MaxOptions, &c.IsRequired, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ID = identity.Persisted(id)
		out[id] = &c
		if m, ok := byMenu[c.MenuID]; ok {
			m.Categories = append(m.Categories, c)
		}
	}
	return out, rows.Err()
}

func (r *MenuRepo) fetchOptions(ctx context.Context, restaurantID string, catsByID map[string]*entity.Category) error {
	query := `
		SELECT o.id, o.category_id, o.name, o.additional_price, o.display_order
		FROM options o
		JOIN categories c ON c.id = o.category_id
		JOIN menus m ON m.id = c.menu_id
		WHERE m.restaurant_id = $1
		ORDER BY o.category_id, o.display_order`
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			o            entity.Option
			id, parentID string
		)
		if err := rows.Scan(&id, &parentID, &o.Name, &o.AdditionalPrice, &o.DisplayOrder); err != nil {
			return fmt.Errorf("scan option: %w", err)
		}
		o.ID = identity.Persisted(id)
		o.CategoryID = identity.Persisted(parentID)
		if c, ok := catsByID[parentID]; ok {
			c.Options = append(c.Options, o)
		}
	}
	return rows.Err()
}

// Upsert aplica el payload de sincronización dentro de una transacción:
// todo o nada por petición. Convención por entrada: _delete borra, id
// actualiza, sin id inserta (la BD asigna el UUID). Devuelve el id del menú.
func (r *MenuRepo) Upsert(ctx context.Context, payload *dto.MenuSyncRequest) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	menuID := payload.MenuID
	if !payload.ScalarsOnly {
		if menuID == "" {
			menuID = uuid.New().String()
			_, err = tx.Exec(ctx, `
				INSERT INTO menus (id, restaurant_id, name, description, price, image_url, is_active, available_online, available_onsite, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`,
				menuID, payload.RestaurantID, payload.Name, payload.Description, payload.Price,
				payload.ImageURL, payload.IsActive, payload.AvailableOnline, payload.AvailableOnsite,
			)
		} else {
			_, err = tx.Exec(ctx, `
				UPDATE menus SET name = $2, description = $3, price = $4, image_url = $5, is_active = $6, available_online = $7, available_onsite = $8, updated_at = now()
				WHERE id = $1`,
				menuID, payload.Name, payload.Description, payload.Price, payload.ImageURL,
				payload.IsActive, payload.AvailableOnline, payload.AvailableOnsite,
			)
		}
		if err != nil {
			return "", fmt.Errorf("upsert menu: %w", err)
		}
	}

	for _, cat := range payload.Categories {
		if err := r.applyCategory(ctx, tx, menuID, payload.ScalarsOnly, cat); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return menuID, nil
}

func (r *MenuRepo) applyCategory(ctx context.Context, q Querier, menuID string, scalarsOnly bool, cat dto.CategorySyncEntry) error {
	if cat.Delete {
		if _, err := q.Exec(ctx, `DELETE FROM options WHERE category_id = $1`, cat.ID); err != nil {
			return fmt.Errorf("delete category options: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND menu_id = $2`, cat.ID, menuID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	}

	catID := cat.ID
	if !scalarsOnly {
		var err error
		if catID == "" {
			catID = uuid.New().String()
			_, err = q.Exec(ctx, `
				INSERT INTO categories (id, menu_id, name, max_options, is_required, display_order)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				catID, menuID, cat.Name, cat.MaxOptions, cat.IsRequired, cat.DisplayOrder,
			)
		} else {
			_, err = q.Exec(ctx, `
				UPDATE categories SET name = $3, max_options = $4, is_required = $5, display_order = $6
				WHERE id = $1 AND menu_id = $2`,
				catID, menuID, cat.Name, cat.MaxOptions, cat.IsRequired, cat.DisplayOrder,
			)
		}
		if err != nil {
			return fmt.Errorf("upsert category: %w", err)
		}
	}

	for _, opt := range cat.Options {
		if err := r.applyOption(ctx, q, catID, scalarsOnly, opt); err != nil {
			return err
		}
	}
	return nil
}

func (r *MenuRepo) applyOption(ctx context.Context, q Querier, categoryID string, scalarsOnly bool, opt dto.OptionSyncEntry) error {
	if opt.Delete {
		if _, err := q.Exec(ctx, `DELETE FROM options WHERE id = $1 AND category_id = $2`, opt.ID, categoryID); err != nil {
			return fmt.Errorf("delete option: %w", err)
		}
		return nil
	}
	if scalarsOnly {
		return nil
	}
	var err error
	if opt.ID == "" {
		_, err = q.Exec(ctx, `
			INSERT INTO options (id, category_id, name, additional_price, display_order)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), categoryID, opt.Name, opt.AdditionalPrice, opt.DisplayOrder,
		)
	} else {
		_, err = q.Exec(ctx, `
			UPDATE options SET name = $3, additional_price = $4, display_order = $5
			WHERE id = $1 AND category_id = $2`,
			opt.ID, categoryID, opt.Name, opt.AdditionalPrice, opt.DisplayOrder,
		)
	}
	if err != nil {
		return fmt.Errorf("upsert option: %w", err)
	}
	return nil
}

// DeleteMenu borra la carta y cascada categorías y opciones en la misma
// transacción.
func (r *MenuRepo) DeleteMenu(ctx context.Context, menuID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM options WHERE category_id IN (SELECT id FROM categories WHERE menu_id = $1)`, menuID); err != nil {
		return fmt.Errorf("delete menu options: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE menu_id = $1`, menuID); err != nil {
		return fmt.Errorf("delete menu categories: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM menus WHERE id = $1`, menuID); err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return tx.Commit(ctx)
}
