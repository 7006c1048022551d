package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-alerts-api/internal/domain"
)

const constraintProductsSKU = "products_sku_key"

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isIntegrityViolation cualquier error de la clase 23 (integrity_constraint_violation).
func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// classifyWriteError traduce errores de escritura a errores de dominio:
// SKU repetido -> domain.ErrDuplicateSKU, otra restricción -> *domain.IntegrityError.
// El resto se envuelve tal cual con op.
func classifyWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || !isIntegrityViolation(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if isUniqueViolation(err) && pgErr.ConstraintName == constraintProductsSKU {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateSKU)
	}
	reason := pgErr.ConstraintName
	if reason == "" && pgErr.ColumnName != "" {
		reason = pgErr.ColumnName + " not null"
	}
	return fmt.Errorf("%s: %w", op, &domain.IntegrityError{Reason: reason})
}
