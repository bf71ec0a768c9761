package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// draftPrefix marca los ids generados en cliente que aún no existen en la BD.
const draftPrefix = "tmp-"

// NodeID identifica un nodo del árbol de la carta (categoría u opción).
// La variante se lleva como etiqueta explícita: un id es Persisted (asignado
// por la BD) o Draft (asignado localmente por el allocator). El código de
// aplicación decide por la etiqueta, nunca inspeccionando el string.
type NodeID struct {
	value string
	draft bool
}

// Persisted construye un NodeID para un id que ya existe en la BD.
func Persisted(id string) NodeID {
	return NodeID{value: id}
}

// NewDraft asigna un id temporal de cliente: prefijo reconocible + timestamp
// + sufijo aleatorio. Nunca falla y la probabilidad de colisión dentro de
// una sesión es despreciable.
func NewDraft() NodeID {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return NodeID{
		value: fmt.Sprintf("%s%d-%s", draftPrefix, time.Now().UnixNano(), suffix),
		draft: true,
	}
}

// FromWire clasifica un id crudo que llega por la frontera HTTP. Solo ahí
// hace falta mirar el prefijo; dentro del proceso la etiqueta viaja con el valor.
func FromWire(raw string) NodeID {
	return NodeID{value: raw, draft: strings.HasPrefix(raw, draftPrefix)}
}

// IsDraft indica si el nodo todavía no fue persistido.
func (id NodeID) IsDraft() bool { return id.draft }

// IsZero indica si el id está vacío.
func (id NodeID) IsZero() bool { return id.value == "" }

// String devuelve el valor tal como viaja por el wire.
func (id NodeID) String() string { return id.value }

// Equal compara por valor.
func (id NodeID) Equal(other NodeID) bool { return id.value == other.value }
