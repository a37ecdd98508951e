package handlers

import (
	"context"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	name := html.EscapeString(update.Message.From.FirstName)
	session, err := h.Sessions.Current(ctx, update.Message.From.ID)
	if err != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"👋 Bonjour "+name+" !\n\n"+
				"Ce bot donne accès à l'agenda du cabinet médical.\n\n"+
				"Connectez-vous avec votre compte du cabinet : /login", nil)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"👋 Bonjour "+name+" !\n\n"+portalIntro(session.Role)+"\n\n"+commandsFor(session.Role), nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	session, err := h.Sessions.Current(ctx, update.Message.From.ID)
	if err != nil {
		session = nil
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText(session), nil)
}

// HandleLogin начинает диалог входа
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.StateManager.Set(telegramID, state.Dialog{State: state.StateLoginLogin})

	h.Logger.Info("Login dialog started", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 <b>Connexion</b>\n\n"+
			"Étape 1 sur 2 : envoyez votre identifiant.\n\n"+
			"Pour annuler : /cancel", nil)
}

// HandleLogout удаляет сессию пользователя
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.StateManager.ClearState(telegramID)

	if err := h.Sessions.Logout(ctx, telegramID); err != nil {
		h.reportError(ctx, b, update.Message.Chat.ID, err, "logout")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Vous êtes déconnecté.\n\nPour revenir : /login", nil)
}

// HandleWhoami показывает профиль текущей сессии
func (h *Handlers) HandleWhoami(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	profile := h.Sessions.Profile(ctx, session)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildWhoamiText(profile), nil)
}

// HandleAgenda обрабатывает /agenda [date]
func (h *Handlers) HandleAgenda(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAction(ctx, b, update, auth.ActionViewAgenda)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	date, err := parseAgendaDate(commandArg(update.Message.Text), h.Agenda.Today())
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Date invalide. Exemples : /agenda 2026-01-02, /agenda 02/01/2026, /agenda demain")
		return
	}

	text, kb, err := common.AgendaView(ctx, h.Handler, session, date)
	if err != nil {
		h.reportError(ctx, b, chatID, err, "agenda")
		return
	}
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleToday обрабатывает /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAction(ctx, b, update, auth.ActionViewAgenda)
	if !ok {
		return
	}

	text, kb, err := common.DashboardView(ctx, h.Handler, session)
	if err != nil {
		h.reportError(ctx, b, update.Message.Chat.ID, err, "today")
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleOverview обрабатывает /overview
func (h *Handlers) HandleOverview(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAction(ctx, b, update, auth.ActionOverview)
	if !ok {
		return
	}

	text, kb, err := common.OverviewView(ctx, h.Handler, session)
	if err != nil {
		h.reportError(ctx, b, update.Message.Chat.ID, err, "overview")
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandlePatient обрабатывает /patient <id|nom>
func (h *Handlers) HandlePatient(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAction(ctx, b, update, auth.ActionViewPatient)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	arg := commandArg(update.Message.Text)
	if arg == "" {
		h.sendError(ctx, b, chatID, "❌ Indiquez l'identifiant ou le nom du patient : /patient 42 ou /patient Alami")
		return
	}

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		text, kb, err := common.PatientView(ctx, h.Handler, session, id)
		if err != nil {
			h.reportError(ctx, b, chatID, err, "patient_card")
			return
		}
		h.sendMessage(ctx, b, chatID, text, kb)
		return
	}

	found, err := h.Lookup.SearchPatients(ctx, session, arg)
	if err != nil {
		h.reportError(ctx, b, chatID, err, "patient_search")
		return
	}
	if len(found) == 0 {
		h.sendMessage(ctx, b, chatID, "🔎 Aucun patient trouvé pour « "+html.EscapeString(arg)+" ».", nil)
		return
	}

	kb := keyboard.NewBuilder()
	for _, p := range found {
		kb.Row(keyboard.Button(p.FullName(), common.AppointmentData(common.ViewPatient, p.ID)))
	}
	h.sendMessage(ctx, b, chatID, "🔎 Patients trouvés :", kb.Build())
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if !h.StateManager.Get(telegramID).InProgress() {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Aucune opération en cours.", nil)
		return
	}

	h.StateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Opération annulée.\n\n/help pour la liste des commandes.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	telegramID := update.Message.From.ID
	dialog := h.StateManager.Get(telegramID)

	if strings.HasPrefix(update.Message.Text, "/") {
		if !dialog.InProgress() {
			h.sendMessage(ctx, b, update.Message.Chat.ID, "❓ Commande inconnue. /help pour la liste des commandes.", nil)
		}
		return
	}

	switch dialog.State {
	case state.StateNone:
		h.Logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
	case state.StateLoginLogin:
		h.handleLoginStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handlePasswordStep(ctx, b, update, dialog)
	case state.StateBookPatient:
		h.handleBookPatientStep(ctx, b, update, dialog)
	case state.StateBookReason:
		h.handleBookReasonStep(ctx, b, update, dialog)
	default:
		h.Logger.Warn("Unknown state", zap.String("state", string(dialog.State)))
		h.StateManager.ClearState(telegramID)
	}
}
