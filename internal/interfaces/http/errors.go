package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain"
)

// respondError traduce la taxonomía de dominio al envelope uniforme de la
// API. Ningún error de pgx llega aquí sin mapear; el detalle de campo de las
// credenciales nunca se expone.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "cuenta o contraseña incorrecta, o cuenta no activada"})
	case errors.Is(err, domain.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROLE", Message: "selección de identidad inválida"})
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_IDENTITY", Message: "la cuenta ya existe"})
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
	case errors.Is(err, domain.ErrInvalidCartFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CART", Message: "el carrito no tiene un formato válido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrStaleSession):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "STALE_SESSION", Message: "la sesión ya no es válida"})
	case errors.Is(err, domain.ErrTransactionFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TRANSACTION_FAILED", Message: "no se pudo crear la orden; no quedó ningún registro"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "servicio temporalmente no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
