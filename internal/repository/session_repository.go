package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/Freeeeeet/cabinet_desk/internal/repository/base"
)

// SessionRepository хранит токены auth-service по Telegram ID
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(db base.DB) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(db)}
}

// Upsert создаёт сессию или заменяет токен существующей
func (r *SessionRepository) Upsert(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions (telegram_id, token, user_id, role, cabinet_id, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE SET
			token = EXCLUDED.token,
			user_id = EXCLUDED.user_id,
			role = EXCLUDED.role,
			cabinet_id = EXCLUDED.cabinet_id,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		s.TelegramID,
		s.Token,
		s.UserID,
		string(s.Role),
		s.CabinetID,
		s.ExpiresAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID возвращает nil, nil если сессии нет
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `
		SELECT telegram_id, token, user_id, role, cabinet_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE telegram_id = $1
	`

	var (
		s    model.Session
		role string
	)
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&s.TelegramID,
		&s.Token,
		&s.UserID,
		&role,
		&s.CabinetID,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}

	s.Role = model.Role(role)
	return &s, nil
}

// Delete удаляет сессию (выход)
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired удаляет сессии с истёкшим токеном
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at IS NOT NULL AND expires_at <= $1
	`

	n, err := r.ExecAffected(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}
