package editor

import (
	"context"

	"github.com/tu-usuario/carta-pro/internal/application/dto"
)

// MenuSyncer aplica un payload de sincronización de forma atómica por
// petición: entradas con id actualizan, sin id insertan, con _delete borran.
// Sirve tanto al commit completo como al borrado inmediato de un solo nodo.
type MenuSyncer interface {
	Upsert(ctx context.Context, payload *dto.MenuSyncRequest) (menuID string, err error)
}

// ConfirmationGate presenta una decisión sí/no al usuario antes de borrar un
// nodo persistido. false cancela la operación sin efectos.
type ConfirmationGate interface {
	Confirm(ctx context.Context, prompt string) bool
}

// BlobStore sube una imagen codificada y devuelve su URL pública. El core
// solo guarda y reenvía esa URL, nunca los bytes después del upload inicial.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
