package handlers

import (
	"context"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession загружает живую сессию автора сообщения.
// Возвращает session и true если OK, иначе сам отвечает пользователю.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	session, err := h.Sessions.Current(ctx, telegramID)
	if err != nil {
		h.Logger.Info("Command without valid session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return nil, false
	}

	return session, true
}

// requireAction то же, что requireSession, плюс проверка роли
func (h *Handlers) requireAction(ctx context.Context, b *bot.Bot, update *models.Update, action string) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !auth.Allowed(session.Role, action) {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(model.ErrForbidden))
		return nil, false
	}

	return session, true
}

// reportError логирует ошибку операции и отправляет понятное сообщение
func (h *Handlers) reportError(ctx context.Context, b *bot.Bot, chatID int64, err error, operation string) {
	fields := []zap.Field{zap.String("operation", operation), zap.Int64("chat_id", chatID), zap.Error(err)}
	if common.IsUserError(err) {
		h.Logger.Info("Operation rejected", fields...)
	} else {
		h.Logger.Error("Operation failed", fields...)
	}
	h.sendError(ctx, b, chatID, common.ErrorMessage(err))
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.Logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML-сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := b.SendMessage(ctx, params)
	if err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
