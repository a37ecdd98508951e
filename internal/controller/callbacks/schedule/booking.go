package schedule

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/state"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBookSlot начинает запись пациента на свободный слот (book:DATE:HHMM)
func HandleBookSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	ref, err := common.ParseBook(callback.Data)
	if err != nil {
		h.Logger.Warn("Bad book callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionBook, func(hc *common.HandlerContext) {
		slotTime, err := h.Booking.ValidateSlot(ref.Date, ref.Time)
		if err != nil {
			common.HandleError(hc, err, "book_slot")
			return
		}
		ref.Time = slotTime

		// Быстрая проверка по сетке; окончательная будет перед созданием
		day, err := h.Agenda.Day(hc.Ctx, hc.Session, ref.Date)
		if err == nil {
			if slot, ok := day.Slot(ref.Time); ok && !slot.IsFree {
				common.HandleError(hc, model.ErrSlotTaken, "book_slot")
				return
			}
		}

		hc.SetDialog(state.Dialog{
			State: state.StateBookPatient,
			Date:  ref.Date,
			Time:  ref.Time,
		})

		h.Logger.Info("Booking dialog started",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("date", ref.Date),
			zap.String("time", ref.Time))

		hc.Answer("")
		text := fmt.Sprintf(
			"➕ <b>Nouveau rendez-vous</b>\n\n"+
				"📅 %s à %s\n\n"+
				"Envoyez l'identifiant du patient ou son nom de famille pour le rechercher.\n"+
				"/cancel pour abandonner.",
			formatting.FormatDateLong(ref.Date), ref.Time,
		)
		if err := hc.SendMessage(text, nil); err != nil {
			h.Logger.Error("Failed to send booking prompt", zap.Error(err))
		}
	})
}

// HandleBookPatient выбор пациента из результатов поиска (book_pat:ID)
func HandleBookPatient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	patientID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionBook, func(hc *common.HandlerContext) {
		if hc.Dialog().State != state.StateBookPatient {
			hc.AnswerAlert("⌛ Aucune prise de rendez-vous en cours")
			return
		}

		patient, err := h.Booking.CheckPatient(hc.Ctx, hc.Session, patientID)
		if err != nil {
			common.HandleError(hc, err, "book_patient")
			return
		}

		d := h.StateManager.Update(hc.TelegramID, func(d *state.Dialog) {
			d.PatientID = patient.ID
			d.State = state.StateBookReason
		})

		hc.Answer("")
		if err := hc.EditMessage(common.ReasonPrompt(d, patient), nil); err != nil {
			h.Logger.Error("Failed to send reason prompt", zap.Error(err))
		}
	})
}
