package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// ErrUserNotFound возвращается, если пользователя нет в таблице users
var ErrUserNotFound = errors.New("user not found")

// RoleLookup определяет роль пользователя
type RoleLookup interface {
	UserRole(ctx context.Context, userID uuid.UUID) (models.Role, error)
}

// UserStore читает сведения о пользователях
type UserStore struct {
	q Querier
}

// NewUserStore создает UserStore поверх пула или транзакции
func NewUserStore(q Querier) *UserStore {
	return &UserStore{q: q}
}

// UserRole получает роль пользователя из таблицы users
func (s *UserStore) UserRole(ctx context.Context, userID uuid.UUID) (models.Role, error) {
	var role *string

	err := s.q.QueryRow(ctx, `
		SELECT role FROM users WHERE id = $1
	`, userID).Scan(&role)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("ошибка при получении роли пользователя: %w", err)
	}

	// NULL в колонке role означает обычного пользователя
	if role == nil {
		return models.RoleUser, nil
	}
	return models.ParseRole(*role), nil
}
