package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

// stubRow отдает заранее заданное значение колонки role
type stubRow struct {
	role *string
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(**string)) = r.role
	return nil
}

type stubQuerier struct {
	row  stubRow
	args []any
}

func (q *stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (q *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *stubQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestUserRole(t *testing.T) {
	admin, dealer, unknown := "admin", "Dealer", "owner"
	userID := uuid.New()

	tests := []struct {
		name string
		row  stubRow
		want models.Role
	}{
		{"admin", stubRow{role: &admin}, models.RoleAdmin},
		{"case insensitive", stubRow{role: &dealer}, models.RoleDealer},
		{"unknown role", stubRow{role: &unknown}, models.RoleUser},
		{"null role", stubRow{}, models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &stubQuerier{row: tt.row}
			role, err := NewUserStore(q).UserRole(context.Background(), userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
			assert.Equal(t, []any{userID}, q.args)
		})
	}
}

func TestUserRoleErrors(t *testing.T) {
	_, err := NewUserStore(&stubQuerier{row: stubRow{err: pgx.ErrNoRows}}).UserRole(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = NewUserStore(&stubQuerier{row: stubRow{err: errors.New("conn closed")}}).UserRole(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
