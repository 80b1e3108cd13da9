package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + dto.ErrorResponse.
// Los sentinelas se revisan antes que StoreError: un StoreError puede envolver uno.
func writeError(c *fiber.Ctx, err error) error {
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "SCHEMA", Message: schemaErr.Error(), Missing: schemaErr.Missing,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "código duplicado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrSourceUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SOURCE_UNAVAILABLE", Message: err.Error()})
	case domain.IsStoreError(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE", Message: "almacenamiento no disponible, intente más tarde"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// ErrorHandler handler de errores de Fiber: *fiber.Error conserva su status, el resto pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Message: fe.Message})
	}
	return writeError(c, err)
}
