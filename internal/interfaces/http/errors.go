package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse. Los errores internos
// nunca exponen su causa.
func writeError(c *fiber.Ctx, err error) error {
	var (
		verr      *domain.ValidationError
		conflict  *domain.ConflictError
		integrity *domain.IntegrityError
		notFound  *domain.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		code := "VALIDATION"
		switch verr.Kind {
		case domain.ValidationMissingFields:
			code = "MISSING_FIELDS"
		case domain.ValidationInvalidTypes:
			code = "INVALID_TYPE"
		case domain.ValidationNegativeQuantity:
			code = "NEGATIVE_QUANTITY"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: verr.Error()})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SKU", Message: conflict.Error()})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFound.Error()})
	case errors.As(err, &integrity), errors.Is(err, domain.ErrIntegrity):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTEGRITY_ERROR",
			Message: "violación de integridad en la base de datos",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
