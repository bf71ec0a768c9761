package repository

import (
	"context"

	"github.com/tu-usuario/carta-pro/internal/domain/entity"
)

// MenuRepository define el puerto de lectura/borrado para el árbol de cartas (DIP).
// La BD no entiende de árboles: guarda filas planas de categorías/opciones con
// referencia al padre; este puerto las entrega ya ensambladas y ordenadas.
// El upsert del diff vive en el puerto MenuSyncer de la capa de aplicación.
type MenuRepository interface {
	// FetchByRestaurant devuelve todas las cartas del restaurante con sus
	// categorías y opciones anidadas, cada nivel ordenado por display_order.
	FetchByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Menu, error)

	// DeleteMenu elimina la carta y cascada sus categorías y opciones.
	DeleteMenu(ctx context.Context, menuID string) error
}
