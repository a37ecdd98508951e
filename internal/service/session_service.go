package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

type SessionService struct {
	store    SessionStore
	idp      IdentityProvider
	users    UserDirectory
	cabinets CabinetDirectory
	decoder  *auth.Decoder
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionService(
	store SessionStore,
	idp IdentityProvider,
	users UserDirectory,
	cabinets CabinetDirectory,
	decoder *auth.Decoder,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		store:    store,
		idp:      idp,
		users:    users,
		cabinets: cabinets,
		decoder:  decoder,
		logger:   logger,
		now:      time.Now,
	}
}

// Login получает токен в auth-service и сохраняет сессию Telegram-пользователя
func (s *SessionService) Login(ctx context.Context, telegramID int64, login, password string) (*model.Session, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: empty credentials", model.ErrInvalidInput)
	}

	resp, err := s.idp.Login(ctx, login, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", model.ErrUnauthorized, resp.Error)
	}
	if resp.TokenExpired || resp.Token == "" {
		return nil, fmt.Errorf("%w: no valid token issued", model.ErrUnauthorized)
	}

	identity, err := s.decoder.Decode(resp.Token)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		TelegramID: telegramID,
		Token:      resp.Token,
		UserID:     identity.UserID,
		Role:       identity.Role,
		CabinetID:  identity.CabinetID,
		ExpiresAt:  identity.ExpiresAt,
	}

	// В токене администратора кабинета может не быть, берём из профиля
	if session.CabinetID == 0 {
		session.CabinetID = s.lookupCabinet(ctx, session)
	}

	if err := s.store.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("user_id", session.UserID),
		zap.String("role", string(session.Role)),
		zap.Int64("cabinet_id", session.CabinetID),
	)

	return session, nil
}

func (s *SessionService) lookupCabinet(ctx context.Context, session *model.Session) int64 {
	if s.users == nil {
		return 0
	}
	user, err := s.users.Get(sessionContext(ctx, session), session.UserID)
	if err != nil {
		s.logger.Warn("Failed to load user profile", zap.Int64("user_id", session.UserID), zap.Error(err))
		return 0
	}
	return user.CabinetID
}

// Current возвращает живую сессию или ErrUnauthorized.
// Истёкшая или испорченная сессия удаляется.
func (s *SessionService) Current(ctx context.Context, telegramID int64) (*model.Session, error) {
	session, err := s.store.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: not logged in", model.ErrUnauthorized)
	}

	if err := auth.RequireSession(session, s.now()); err != nil {
		s.drop(ctx, telegramID)
		return nil, err
	}

	if _, err := s.decoder.Decode(session.Token); err != nil {
		s.drop(ctx, telegramID)
		return nil, err
	}

	return session, nil
}

func (s *SessionService) drop(ctx context.Context, telegramID int64) {
	if err := s.store.Delete(ctx, telegramID); err != nil {
		s.logger.Warn("Failed to drop stale session", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
}

func (s *SessionService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.store.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// PurgeExpired удаляет все сессии с истёкшим токеном
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}

// Profile данные для /whoami
type Profile struct {
	Session *model.Session
	User    *model.User    // nil если user-service недоступен
	Cabinet *model.Cabinet // nil если кабинет не найден
}

// Profile собирает профиль; сбои справочников не ломают ответ
func (s *SessionService) Profile(ctx context.Context, session *model.Session) *Profile {
	p := &Profile{Session: session}
	ctx = sessionContext(ctx, session)

	if s.users != nil {
		user, err := s.users.Get(ctx, session.UserID)
		if err != nil {
			s.logger.Warn("Failed to load user", zap.Int64("user_id", session.UserID), zap.Error(err))
		} else {
			p.User = user
		}
	}

	if s.cabinets != nil && session.CabinetID != 0 {
		cabinet, err := s.cabinets.Get(ctx, session.CabinetID)
		if err != nil {
			s.logger.Warn("Failed to load cabinet", zap.Int64("cabinet_id", session.CabinetID), zap.Error(err))
		} else {
			p.Cabinet = cabinet
		}
	}

	return p
}
