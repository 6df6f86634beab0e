package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// ErrLeadNotFound возвращается, если заявки нет
var ErrLeadNotFound = errors.New("lead not found")

// Repository хранит заявки покупателей
type Repository interface {
	ListingExists(ctx context.Context, listingID uuid.UUID) (bool, error)
	Create(ctx context.Context, lead *models.Lead) error
	Get(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Update(ctx context.Context, id uuid.UUID, upd models.LeadUpdate) (*models.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PgRepository реализация Repository поверх Postgres
type PgRepository struct {
	q db.Querier
}

// NewPgRepository создает репозиторий заявок
func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

const leadColumns = `l.id, l.listing_id, l.from_user_id, l.name, l.email, l.phone, l.city, l.message,
	l.status, l.source_type, l.source_id, l.created_at, l.updated_at, cl.dealer_id`

func scanLead(row pgx.Row) (*models.Lead, error) {
	var l models.Lead
	err := row.Scan(
		&l.ID, &l.ListingID, &l.FromUserID, &l.Name, &l.Email, &l.Phone, &l.City, &l.Message,
		&l.Status, &l.SourceType, &l.SourceID, &l.CreatedAt, &l.UpdatedAt, &l.ListingDealerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListingExists проверяет, что объявление существует
func (r *PgRepository) ListingExists(ctx context.Context, listingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM car_listings WHERE id = $1)
	`, listingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки объявления: %w", err)
	}
	return exists, nil
}

// Create сохраняет новую заявку и заполняет ID и временные метки
func (r *PgRepository) Create(ctx context.Context, lead *models.Lead) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO leads (
			listing_id, from_user_id, name, email, phone, city, message, status, source_type, source_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`,
		lead.ListingID, lead.FromUserID, lead.Name, lead.Email, lead.Phone, lead.City,
		lead.Message, lead.Status, lead.SourceType, lead.SourceID,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании заявки: %w", err)
	}
	return nil
}

// Get возвращает заявку вместе с владельцем объявления
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := scanLead(r.q.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads l
		JOIN car_listings cl ON cl.id = l.listing_id
		WHERE l.id = $1
	`, id))
	if err != nil && !errors.Is(err, ErrLeadNotFound) {
		return nil, fmt.Errorf("ошибка при получении заявки: %w", err)
	}
	return lead, err
}

// Update применяет непустые поля обновления и возвращает заявку
func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, upd models.LeadUpdate) (*models.Lead, error) {
	lead, err := scanLead(r.q.QueryRow(ctx, `
		WITH l AS (
			UPDATE leads SET
				name = COALESCE($2, name),
				email = COALESCE($3, email),
				phone = COALESCE($4, phone),
				city = COALESCE($5, city),
				message = COALESCE($6, message),
				status = COALESCE($7, status),
				source_type = COALESCE($8, source_type),
				source_id = COALESCE($9, source_id),
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+leadColumns+`
		FROM l
		JOIN car_listings cl ON cl.id = l.listing_id
	`, id, upd.Name, upd.Email, upd.Phone, upd.City, upd.Message, upd.Status, upd.SourceType, upd.SourceID))
	if err != nil && !errors.Is(err, ErrLeadNotFound) {
		return nil, fmt.Errorf("ошибка при обновлении заявки: %w", err)
	}
	return lead, err
}

// Delete удаляет заявку
func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}
