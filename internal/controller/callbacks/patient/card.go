package patient

import (
	"context"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleView отправляет карточку пациента новым сообщением (patient:ID),
// чтобы карточка записи осталась на месте
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	patientID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithAction(ctx, b, callback, h, auth.ActionViewPatient, func(hc *common.HandlerContext) {
		text, kb, err := common.PatientView(hc.Ctx, h, hc.Session, patientID)
		if err != nil {
			common.HandleError(hc, err, "patient_card")
			return
		}
		hc.Answer("")
		if err := hc.SendMessage(text, kb); err != nil {
			h.Logger.Error("Failed to send patient card",
				zap.Int64("patient_id", patientID),
				zap.Error(err))
		}
	})
}
