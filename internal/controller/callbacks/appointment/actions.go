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

// HandleConfirm PENDING -> CONFIRMED
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAppointment(ctx, b, callback, h, auth.ActionConfirm, func(hc *common.HandlerContext, id int64) {
		if _, err := h.Booking.Confirm(hc.Ctx, hc.Session, id); err != nil {
			common.HandleError(hc, err, "confirm")
			return
		}
		hc.Answer("✅ Rendez-vous confirmé")
		showCard(hc, id)
	})
}

// HandleCancel отмена записи; повторная отмена ничего не меняет
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAppointment(ctx, b, callback, h, auth.ActionCancel, func(hc *common.HandlerContext, id int64) {
		_, changed, err := h.Booking.Cancel(hc.Ctx, hc.Session, id)
		if err != nil {
			common.HandleError(hc, err, "cancel")
			return
		}
		if changed {
			hc.Answer("❌ Rendez-vous annulé, le créneau est libéré")
		} else {
			hc.Answer("Ce rendez-vous était déjà annulé")
		}
		showCard(hc, id)
	})
}

// HandleStartConsultation CONFIRMED -> IN_PROGRESS
func HandleStartConsultation(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAppointment(ctx, b, callback, h, auth.ActionStartConsult, func(hc *common.HandlerContext, id int64) {
		if _, err := h.Booking.StartConsultation(hc.Ctx, hc.Session, id); err != nil {
			common.HandleError(hc, err, "start_consultation")
			return
		}
		hc.Answer("🩺 Consultation démarrée")
		showCard(hc, id)
	})
}

// HandleFinishConsultation IN_PROGRESS -> DONE
func HandleFinishConsultation(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAppointment(ctx, b, callback, h, auth.ActionFinish, func(hc *common.HandlerContext, id int64) {
		if _, err := h.Booking.FinishConsultation(hc.Ctx, hc.Session, id); err != nil {
			common.HandleError(hc, err, "finish_consultation")
			return
		}
		hc.Answer("✔️ Consultation terminée")
		showCard(hc, id)
	})
}

// HandleDelete запрашивает подтверждение удаления
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAppointment(ctx, b, callback, h, auth.ActionDelete, func(hc *common.HandlerContext, id int64) {
		card, err := h.Lookup.AppointmentCard(hc.Ctx, hc.Session, id)
		if err != nil {
			common.HandleError(hc, err, "delete")
			return
		}
		hc.Answer("")
		text, kb := common.BuildDeleteConfirmScreen(card.Appointment)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show delete confirmation", zap.Error(err))
		}
	})
}

// HandleConfirmDelete удаляет запись и возвращает к сетке её дня
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAppointment(ctx, b, callback, h, auth.ActionDelete, func(hc *common.HandlerContext, id int64) {
		card, err := h.Lookup.AppointmentCard(hc.Ctx, hc.Session, id)
		if err != nil {
			common.HandleError(hc, err, "delete")
			return
		}
		if err := h.Booking.Delete(hc.Ctx, hc.Session, id); err != nil {
			common.HandleError(hc, err, "delete")
			return
		}

		date := card.Appointment.Date
		text, kb, err := common.AgendaView(hc.Ctx, h, hc.Session, date)
		hc.Answer("🗑 Rendez-vous supprimé")
		if err != nil {
			if editErr := hc.EditMessage("🗑 Rendez-vous supprimé.", nil); editErr != nil {
				h.Logger.Error("Failed to edit message", zap.Error(editErr))
			}
			return
		}
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show agenda", zap.Error(err))
		}
	})
}
