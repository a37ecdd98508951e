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

// HandleMoveDay показывает свободные слоты дня для переноса (appt_move:ID:DATE)
func HandleMoveDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	id, date, err := common.ParseMoveDay(callback.Data)
	if err != nil {
		h.Logger.Warn("Bad move callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionReschedule, func(hc *common.HandlerContext) {
		text, kb, err := common.MoveView(hc.Ctx, h, hc.Session, id, date)
		if err != nil {
			common.HandleError(hc, err, "move_day")
			return
		}
		hc.Answer("")
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show move screen", zap.Error(err))
		}
	})
}

// HandleMoveTo переносит запись на выбранный слот (move_to:ID:DATE:HHMM)
func HandleMoveTo(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	ref, err := common.ParseMoveTo(callback.Data)
	if err != nil {
		h.Logger.Warn("Bad move callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionReschedule, func(hc *common.HandlerContext) {
		if _, err := h.Booking.Reschedule(hc.Ctx, hc.Session, ref.AppointmentID, ref.Date, ref.Time); err != nil {
			common.HandleError(hc, err, "reschedule")
			return
		}
		hc.Answer("🔁 Rendez-vous déplacé au " + ref.Time)
		showCard(hc, ref.AppointmentID)
	})
}
