package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; los casos de uso nunca los recuperan
// localmente.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")

	// Conflictos del ciclo de vida de notas.
	ErrNoteTerminal      = errors.New("la nota está en estado terminal")
	ErrLineDecided       = errors.New("la línea ya fue decidida")
	ErrLinesNotDecided   = errors.New("hay líneas pendientes de decidir")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
