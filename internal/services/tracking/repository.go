package tracking

import (
	"context"
	"fmt"

	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// Repository сохраняет события поиска
type Repository interface {
	Record(ctx context.Context, event *models.SearchEvent) error
}

// PgRepository реализация Repository поверх Postgres
type PgRepository struct {
	q db.Querier
}

// NewPgRepository создает репозиторий событий поиска
func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

// Record сохраняет событие. Если make_id или model_id не переданы,
// они ищутся в справочнике по названиям из фильтров.
func (r *PgRepository) Record(ctx context.Context, event *models.SearchEvent) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO search_tracking (session_id, make_id, model_id, filters, clicked_listing_id)
		VALUES (
			$1,
			COALESCE($2::uuid, (
				SELECT id FROM car_makes WHERE lower(name) = lower($4::jsonb->>'make') LIMIT 1
			)),
			COALESCE($3::uuid, (
				SELECT m.id FROM car_models m
				JOIN car_makes mk ON mk.id = m.make_id
				WHERE lower(m.name) = lower($4::jsonb->>'model')
					AND lower(mk.name) = lower($4::jsonb->>'make')
				LIMIT 1
			)),
			$4::jsonb,
			$5
		)
		RETURNING id, make_id, model_id, created_at
	`,
		event.SessionID, event.MakeID, event.ModelID, event.Filters, event.ClickedListingID,
	).Scan(&event.ID, &event.MakeID, &event.ModelID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения события поиска: %w", err)
	}
	return nil
}
