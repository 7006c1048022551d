package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrDuplicateSKU = fmt.Errorf("%w: sku", ErrDuplicate)
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrIntegrity    = errors.New("violación de integridad")
	ErrInternal     = errors.New("error interno")
)

// ValidationKind clasifica el motivo de un ValidationError.
type ValidationKind string

const (
	ValidationMissingFields    ValidationKind = "missing_fields"
	ValidationInvalidTypes     ValidationKind = "invalid_types"
	ValidationNegativeQuantity ValidationKind = "negative_quantity"
)

// ValidationError agrupa todas las violaciones detectadas antes de tocar la base de datos.
// Para ValidationMissingFields, Fields lista cada campo ausente en el orden del contrato.
type ValidationError struct {
	Kind   ValidationKind
	Fields []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationMissingFields:
		return "faltan campos requeridos: " + strings.Join(e.Fields, ", ")
	case ValidationInvalidTypes:
		if len(e.Fields) == 0 {
			return "tipo de dato inválido en el cuerpo de la petición"
		}
		return "tipo de dato inválido para: " + strings.Join(e.Fields, ", ")
	case ValidationNegativeQuantity:
		return "initial_quantity no puede ser negativo"
	default:
		return ErrInvalidInput.Error()
	}
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConflictError el SKU ya existe; la transacción fue revertida.
type ConflictError struct {
	SKU string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ya existe un producto con SKU '%s'", e.SKU)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict || target == ErrDuplicate || target == ErrDuplicateSKU
}

// IntegrityError cualquier otra restricción rechazada por el motor de almacenamiento.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Reason == "" {
		return ErrIntegrity.Error()
	}
	return ErrIntegrity.Error() + ": " + e.Reason
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

// NotFoundError recurso inexistente (resultado esperado, no se registra como error).
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InternalError falla inesperada. Error() nunca expone la causa; Unwrap sí, para los logs.
type InternalError struct {
	Op    string
	Cause error
}

func (e *InternalError) Error() string { return ErrInternal.Error() }

func (e *InternalError) Unwrap() error { return e.Cause }

func (e *InternalError) Is(target error) bool { return target == ErrInternal }
