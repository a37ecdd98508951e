package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/state"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/Freeeeeet/cabinet_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleLoginStep шаг 1 входа: идентификатор
func (h *Handlers) handleLoginStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	login := strings.TrimSpace(update.Message.Text)
	if login == "" || utf8.RuneCountInString(login) > LoginMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Identifiant invalide (1 à %d caractères). Réessayez ou /cancel", LoginMaxLength))
		return
	}

	h.StateManager.Set(telegramID, state.Dialog{State: state.StateLoginPassword, Login: login})

	h.sendMessage(ctx, b, chatID,
		"🔐 <b>Connexion</b>\n\n"+
			"Étape 2 sur 2 : envoyez votre mot de passe.\n"+
			"<i>Le message sera supprimé aussitôt.</i>", nil)
}

// handlePasswordStep шаг 2 входа: пароль и обмен на токен
func (h *Handlers) handlePasswordStep(ctx context.Context, b *bot.Bot, update *models.Update, dialog state.Dialog) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// пароль не должен оставаться в истории чата
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	}); err != nil {
		h.Logger.Warn("Failed to delete password message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	h.StateManager.ClearState(telegramID)

	session, err := h.Sessions.Login(ctx, telegramID, dialog.Login, password)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			h.Logger.Info("Login rejected", zap.Int64("telegram_id", telegramID))
			h.sendError(ctx, b, chatID, "❌ Identifiant ou mot de passe incorrect.\n\nRéessayez : /login")
			return
		}
		h.reportError(ctx, b, chatID, err, "login")
		return
	}

	text := fmt.Sprintf("✅ <b>Connecté</b> en tant que %s\n", formatting.RoleLabel(session.Role)) +
		common.SessionExpiry(session, h.now()) +
		"\n" + portalIntro(session.Role) + "\n\n" + commandsFor(session.Role)
	h.sendMessage(ctx, b, chatID, text, nil)
}

// handleBookPatientStep выбор пациента: id или часть фамилии
func (h *Handlers) handleBookPatientStep(ctx context.Context, b *bot.Bot, update *models.Update, dialog state.Dialog) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		h.StateManager.ClearState(update.Message.From.ID)
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	input := strings.TrimSpace(update.Message.Text)

	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		patient, err := h.Booking.CheckPatient(ctx, session, id)
		if err != nil {
			h.reportError(ctx, b, chatID, err, "book_check_patient")
			return
		}
		dialog = h.StateManager.Update(telegramID, func(d *state.Dialog) {
			d.State = state.StateBookReason
			d.PatientID = patient.ID
		})
		h.sendMessage(ctx, b, chatID, common.ReasonPrompt(dialog, patient), nil)
		return
	}

	if utf8.RuneCountInString(input) < PatientQueryMinLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Au moins %d caractères pour la recherche. Réessayez ou /cancel", PatientQueryMinLength))
		return
	}

	found, err := h.Lookup.SearchPatients(ctx, session, input)
	if err != nil {
		h.reportError(ctx, b, chatID, err, "book_search_patient")
		return
	}
	if len(found) == 0 {
		h.sendMessage(ctx, b, chatID,
			"🔎 Aucun patient trouvé pour « "+html.EscapeString(input)+" ».\n\nEssayez un autre nom ou /cancel", nil)
		return
	}

	h.sendMessage(ctx, b, chatID, "👤 Choisissez le patient :", common.BuildPatientChoice(found))
}

// handleBookReasonStep мотив и создание записи
func (h *Handlers) handleBookReasonStep(ctx context.Context, b *bot.Bot, update *models.Update, dialog state.Dialog) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		h.StateManager.ClearState(update.Message.From.ID)
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	reason := strings.TrimSpace(update.Message.Text)
	n := utf8.RuneCountInString(reason)
	if n < ReasonMinLength || n > ReasonMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Le motif doit contenir entre %d et %d caractères. Réessayez ou /cancel", ReasonMinLength, ReasonMaxLength))
		return
	}

	appointment, err := h.Booking.Book(ctx, session, service.BookingRequest{
		Date:      dialog.Date,
		Time:      dialog.Time,
		PatientID: dialog.PatientID,
		Reason:    reason,
	})
	switch {
	case err == nil:
	case errors.Is(err, model.ErrSlotTaken):
		h.StateManager.ClearState(telegramID)
		h.Logger.Info("Booking conflict",
			zap.Int64("telegram_id", telegramID),
			zap.String("date", dialog.Date),
			zap.String("time", dialog.Time))
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 Voir l'agenda", common.AgendaData(dialog.Date))).
			Build()
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err), kb)
		return
	default:
		// диалог сохраняется, мотив можно отправить ещё раз
		h.reportError(ctx, b, chatID, err, "book")
		return
	}

	h.StateManager.ClearState(telegramID)

	h.Logger.Info("Appointment booked",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("appointment_id", appointment.ID),
		zap.String("date", appointment.Date),
		zap.String("time", appointment.Time))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Ouvrir le rendez-vous", common.AppointmentData(common.ViewAppointment, appointment.ID))).
		Row(keyboard.Button("📅 Agenda du jour", common.AgendaData(dialog.Date))).
		Build()

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("✅ <b>Rendez-vous créé</b>\n\n📅 %s à %s\n📝 %s\n🏷 %s",
			formatting.FormatDateLong(dialog.Date), dialog.Time,
			html.EscapeString(reason), formatting.StatusLabel(appointment.Status)),
		kb)
}
