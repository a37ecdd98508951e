package common

import (
	"context"

	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/go-telegram/bot/models"
)

// Экраны, которые открываются и командой, и кнопкой.
// Каждый загружает данные через сервисы и возвращает текст с клавиатурой.

// AgendaView сетка дня кабинета сессии
func AgendaView(ctx context.Context, h *callbacktypes.Handler, session *model.Session, date string) (string, *models.InlineKeyboardMarkup, error) {
	day, err := h.Agenda.Day(ctx, session, date)
	if err != nil {
		return "", nil, err
	}

	var names map[int64]string
	if day.FreeCount() < len(day.Slots) {
		// без имён экран всё равно строится
		names, _ = h.Agenda.PatientNames(ctx, session)
	}

	text, kb := BuildAgendaScreen(day, names, session.Role)
	return text, kb, nil
}

// AppointmentView карточка записи
func AppointmentView(ctx context.Context, h *callbacktypes.Handler, session *model.Session, id int64) (string, *models.InlineKeyboardMarkup, error) {
	card, err := h.Lookup.AppointmentCard(ctx, session, id)
	if err != nil {
		return "", nil, err
	}
	text, kb := BuildAppointmentScreen(card, session.Role)
	return text, kb, nil
}

// DashboardView сводка за сегодня
func DashboardView(ctx context.Context, h *callbacktypes.Handler, session *model.Session) (string, *models.InlineKeyboardMarkup, error) {
	d, err := h.Dashboard.Today(ctx, session)
	if err != nil {
		return "", nil, err
	}
	text, kb := BuildDashboardScreen(d)
	return text, kb, nil
}

// OverviewView сводка администратора по кабинетам
func OverviewView(ctx context.Context, h *callbacktypes.Handler, session *model.Session) (string, *models.InlineKeyboardMarkup, error) {
	o, err := h.Admin.Overview(ctx, session)
	if err != nil {
		return "", nil, err
	}
	text, kb := BuildOverviewScreen(o)
	return text, kb, nil
}

// PatientView карточка пациента
func PatientView(ctx context.Context, h *callbacktypes.Handler, session *model.Session, patientID int64) (string, *models.InlineKeyboardMarkup, error) {
	card, err := h.Lookup.PatientCard(ctx, session, patientID)
	if err != nil {
		return "", nil, err
	}
	text, kb := BuildPatientScreen(card)
	return text, kb, nil
}

// MoveView выбор нового слота для записи id на дату date
func MoveView(ctx context.Context, h *callbacktypes.Handler, session *model.Session, id int64, date string) (string, *models.InlineKeyboardMarkup, error) {
	card, err := h.Lookup.AppointmentCard(ctx, session, id)
	if err != nil {
		return "", nil, err
	}
	a := card.Appointment
	if a.Status != model.StatusPending && a.Status != model.StatusConfirmed {
		return "", nil, model.ErrInvalidTransition
	}

	day, err := h.Agenda.DayOf(ctx, session, a, date)
	if err != nil {
		return "", nil, err
	}
	text, kb := BuildMoveScreen(a, day)
	return text, kb, nil
}
