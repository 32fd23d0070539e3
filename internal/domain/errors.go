package domain

import "errors"

// Errores de dominio (sin dependencias externas). Toda falla de persistencia
// se traduce a uno de estos valores en la capa de aplicación; nada de pgx
// llega crudo al transporte.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidRole        = errors.New("rol no reconocido")
	ErrDuplicateIdentity  = errors.New("la identidad ya está registrada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInvalidCartFormat  = errors.New("el carrito no tiene un formato válido")
	ErrTransactionFailure = errors.New("la transacción de la orden falló")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
	ErrStaleSession       = errors.New("sesión obsoleta, se requiere autenticación")
	ErrForbidden          = errors.New("acceso denegado")
)
