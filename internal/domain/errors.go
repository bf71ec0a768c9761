package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del editor de cartas.
	ErrNoDraft         = errors.New("no hay borrador abierto para esta carta")
	ErrIndexOutOfRange = errors.New("índice fuera de rango")
	ErrDeclined        = errors.New("operación rechazada por el usuario")
	ErrEmptyName       = errors.New("el nombre no puede estar vacío")
	ErrInvalidPrice    = errors.New("precio inválido")
)
