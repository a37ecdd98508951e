package schedule

import (
	"context"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAgendaDay открывает сетку дня (agenda:DATE)
func HandleAgendaDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	date, err := common.ParseDate(callback.Data)
	if err != nil {
		h.Logger.Warn("Bad agenda callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionViewAgenda, func(hc *common.HandlerContext) {
		ShowDay(hc, date)
	})
}

// HandleToday открывает сводку за сегодня
func HandleToday(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAction(ctx, b, callback, h, auth.ActionViewAgenda, func(hc *common.HandlerContext) {
		text, kb, err := common.DashboardView(hc.Ctx, hc.Handler, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "today")
			return
		}
		hc.Answer("")
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show dashboard", zap.Error(err))
		}
	})
}

// ShowDay перерисовывает текущее сообщение сеткой дня
func ShowDay(hc *common.HandlerContext, date string) {
	text, kb, err := common.AgendaView(hc.Ctx, hc.Handler, hc.Session, date)
	if err != nil {
		common.HandleError(hc, err, "agenda")
		return
	}
	hc.Answer("")
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show agenda",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("date", date),
			zap.Error(err))
	}
}
