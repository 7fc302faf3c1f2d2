package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("la estiba ya está registrada")
	ErrTokenDecode       = errors.New("token ilegible o con esquema inválido")
	ErrUnknownUnit       = errors.New("la estiba no existe en el sistema")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOutOfRange        = errors.New("valor fuera del rango permitido")
	ErrLedgerCorrupt     = errors.New("el libro de movimientos no concilia con el estado actual")
)
