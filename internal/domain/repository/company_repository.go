package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

// CompanyRepository define el puerto de lectura de empresas (DIP).
type CompanyRepository interface {
	// GetByID devuelve (nil, nil) si la empresa no existe.
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	// ListIDs devuelve los IDs de todas las empresas, ordenados.
	ListIDs(ctx context.Context) ([]int64, error)
}
