package catalog

import (
	"sync"

	"github.com/tu-usuario/carta-pro/internal/domain/entity"
)

// List es la lista canónica de cartas: la última representación traída del
// backend. Se reemplaza entera en cada fetch exitoso, nunca se parchea en el
// lugar; el único escritor es el refresh del editor.
type List struct {
	mu    sync.RWMutex
	menus []*entity.Menu
}

// NewList construye la lista vacía.
func NewList() *List {
	return &List{}
}

// Replace sustituye la lista completa por la representación del servidor.
func (l *List) Replace(menus []*entity.Menu) {
	l.mu.Lock()
	l.menus = menus
	l.mu.Unlock()
}

// Menus devuelve la lista actual (copia del slice; las entradas son del servidor
// y no deben mutarse).
func (l *List) Menus() []*entity.Menu {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*entity.Menu, len(l.menus))
	copy(out, l.menus)
	return out
}

// Get devuelve la carta con el id dado, o nil si no está en la lista.
func (l *List) Get(menuID string) *entity.Menu {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, m := range l.menus {
		if m.ID == menuID {
			return m
		}
	}
	return nil
}
