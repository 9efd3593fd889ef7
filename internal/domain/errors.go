package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSaleLocked         = errors.New("la venta ya pertenece a un periodo de cobro")
	ErrNoPendingSales     = errors.New("no hay ventas pendientes en el rango")
	ErrNoDebt             = errors.New("el usuario no tiene deuda pendiente")
	ErrPaymentTooLow      = errors.New("el monto no cubre la deuda total")
)
