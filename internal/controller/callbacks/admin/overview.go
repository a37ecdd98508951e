package admin

import (
	"context"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleOverview перерисовывает сводку администратора (кнопка "Actualiser")
func HandleOverview(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAction(ctx, b, callback, h, auth.ActionOverview, func(hc *common.HandlerContext) {
		text, kb, err := common.OverviewView(hc.Ctx, hc.Handler, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "overview")
			return
		}
		hc.Answer("")
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show overview", zap.Error(err))
		}
	})
}
