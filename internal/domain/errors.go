package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrAccountSuspended       = errors.New("cuenta suspendida")
	ErrNoActiveRole           = errors.New("sin rol activo en la sesión")
	ErrForbidden              = errors.New("acceso denegado")
	ErrEmptyCart              = errors.New("la venta no tiene ítems")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
)

// InsufficientStockError lleva el detalle disponible/solicitado por producto.
// errors.Is(err, ErrInsufficientStock) retorna true, así los handlers mapean
// con el sentinel sin conocer el tipo concreto.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
