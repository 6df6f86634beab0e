package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// Repository читает справочник марок и моделей
type Repository interface {
	Makes(ctx context.Context) ([]models.CarMake, error)
	Models(ctx context.Context, makeID uuid.UUID) ([]models.CarModel, error)
}

// PgRepository реализация Repository поверх Postgres
type PgRepository struct {
	q db.Querier
}

// NewPgRepository создает репозиторий справочника
func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

// Makes возвращает все марки в алфавитном порядке
func (r *PgRepository) Makes(ctx context.Context) ([]models.CarMake, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name FROM car_makes ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса марок: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.CarMake])
}

// Models возвращает модели марки в алфавитном порядке
func (r *PgRepository) Models(ctx context.Context, makeID uuid.UUID) ([]models.CarModel, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, make_id, name FROM car_models WHERE make_id = $1 ORDER BY name ASC
	`, makeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса моделей: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.CarModel])
}
