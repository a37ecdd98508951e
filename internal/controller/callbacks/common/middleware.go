package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession создаёт HandlerContext и загружает сессию.
// При ошибке сам отвечает пользователю и не вызывает handler.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Info("Callback without valid session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithAction то же, что WithSession, плюс проверка роли на действие
func WithAction(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	action string,
	handler func(*HandlerContext),
) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		if !auth.Allowed(hc.Session.Role, action) {
			h.Logger.Info("Action denied",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("role", string(hc.Session.Role)),
				zap.String("action", action))
			hc.AnswerAlert(ErrorMessage(model.ErrForbidden))
			return
		}
		handler(hc)
	})
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err),
	}
	if IsUserError(err) {
		hc.Handler.Logger.Info("Operation rejected", fields...)
	} else {
		hc.Handler.Logger.Error("Operation failed", fields...)
	}
	hc.AnswerAlert(ErrorMessage(err))
}

// IsUserError ошибка вызвана действием пользователя, а не сбоем
func IsUserError(err error) bool {
	for _, target := range []error{
		model.ErrSlotTaken,
		model.ErrUnauthorized,
		model.ErrForbidden,
		model.ErrInvalidTransition,
		model.ErrInvalidInput,
		model.ErrNotFound,
		ErrInvalidFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
