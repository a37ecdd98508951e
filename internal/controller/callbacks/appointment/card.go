package appointment

import (
	"context"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleView открывает карточку записи (appt:ID)
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	id, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionViewAgenda, func(hc *common.HandlerContext) {
		hc.Answer("")
		showCard(hc, id)
	})
}

// showCard перерисовывает сообщение карточкой записи.
// Callback к этому моменту уже должен быть отвечен.
func showCard(hc *common.HandlerContext, id int64) {
	text, kb, err := common.AppointmentView(hc.Ctx, hc.Handler, hc.Session, id)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to load appointment card",
			zap.Int64("appointment_id", id),
			zap.Error(err))
		if sendErr := hc.SendMessage(common.ErrorMessage(err), nil); sendErr != nil {
			hc.Handler.Logger.Error("Failed to send message", zap.Error(sendErr))
		}
		return
	}
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show appointment card",
			zap.Int64("appointment_id", id),
			zap.Error(err))
	}
}

// withAppointment разбирает ID, проверяет роль и передаёт управление handler
func withAppointment(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	action string,
	handler func(hc *common.HandlerContext, id int64),
) {
	id, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Warn("Bad appointment callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, action, func(hc *common.HandlerContext) {
		handler(hc, id)
	})
}
