package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// ErrListingNotFound возвращается, если публичного объявления с таким ID нет
var ErrListingNotFound = errors.New("listing not found")

// Repository выполняет поисковый запрос против хранилища объявлений
type Repository interface {
	Search(ctx context.Context, q SearchQuery) ([]models.Listing, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

// PgRepository реализация Repository поверх Postgres
type PgRepository struct {
	q db.Querier
}

// NewPgRepository создает репозиторий поверх пула соединений
func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

// Search возвращает страницу объявлений и точное число совпадений
func (r *PgRepository) Search(ctx context.Context, q SearchQuery) ([]models.Listing, int, error) {
	sql, args := q.SQL()
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка запроса объявлений: %w", err)
	}

	listings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Listing])
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сканирования объявлений: %w", err)
	}

	var total int
	countSQL, countArgs := q.CountSQL()
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета объявлений: %w", err)
	}

	return listings, total, nil
}

// Get возвращает одно публичное объявление
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	rows, err := r.q.Query(ctx, fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = $1 AND is_public = true", listingColumns, listingsTable,
	), id)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса объявления: %w", err)
	}

	listing, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Listing])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования объявления: %w", err)
	}
	return &listing, nil
}
