package agenda

import (
	"fmt"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// Разрешённые переходы. CANCELLED и DONE терминальные.
var transitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.StatusPending:    {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed:  {model.StatusCancelled, model.StatusInProgress},
	model.StatusInProgress: {model.StatusDone},
}

// InitialStatus статус новой записи
const InitialStatus = model.StatusPending

// IsTerminal проверяет что из статуса нет переходов
func IsTerminal(status model.AppointmentStatus) bool {
	return len(transitions[status]) == 0
}

// CanTransition проверяет допустимость перехода from -> to
func CanTransition(from, to model.AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition возвращает ErrInvalidTransition для недопустимого перехода
func CheckTransition(from, to model.AppointmentStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, to)
	}
	return nil
}

// NextStatuses возвращает статусы, доступные из текущего
func NextStatuses(from model.AppointmentStatus) []model.AppointmentStatus {
	next := transitions[from]
	out := make([]model.AppointmentStatus, len(next))
	copy(out, next)
	return out
}

// Cancel переводит запись в CANCELLED. Повторная отмена ничего не меняет
// и возвращает changed=false.
func Cancel(a *model.Appointment) (changed bool, err error) {
	if a.Status == model.StatusCancelled {
		return false, nil
	}
	if err := CheckTransition(a.Status, model.StatusCancelled); err != nil {
		return false, err
	}
	a.Status = model.StatusCancelled
	return true, nil
}
