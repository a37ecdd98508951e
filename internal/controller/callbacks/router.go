package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/appointment"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/patient"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Форматы callback data описаны в common/callbackdata.go

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Admin =====
	case data == common.Overview:
		admin.HandleOverview(ctx, b, callback, h)

	// ===== Agenda =====
	case data == common.Today:
		schedule.HandleToday(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AgendaDay):
		schedule.HandleAgendaDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookSlot):
		schedule.HandleBookSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookPatient):
		schedule.HandleBookPatient(ctx, b, callback, h)

	// ===== Appointment lifecycle =====
	case strings.HasPrefix(data, common.ViewAppointment):
		appointment.HandleView(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ConfirmAppointment):
		appointment.HandleConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CancelAppointment):
		appointment.HandleCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, common.StartConsultation):
		appointment.HandleStartConsultation(ctx, b, callback, h)
	case strings.HasPrefix(data, common.FinishConsultation):
		appointment.HandleFinishConsultation(ctx, b, callback, h)
	case strings.HasPrefix(data, common.DeleteAppointment):
		appointment.HandleDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ConfirmDelete):
		appointment.HandleConfirmDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MoveAppointment):
		appointment.HandleMoveDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MoveTo):
		appointment.HandleMoveTo(ctx, b, callback, h)

	// ===== Patients =====
	case strings.HasPrefix(data, common.ViewPatient):
		patient.HandleView(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Commande inconnue")
	}
}
