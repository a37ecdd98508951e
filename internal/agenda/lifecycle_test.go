package agenda

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLifecycle(t *testing.T) {
	allowed := map[[2]model.AppointmentStatus]bool{
		{model.StatusPending, model.StatusConfirmed}:    true,
		{model.StatusPending, model.StatusCancelled}:    true,
		{model.StatusConfirmed, model.StatusCancelled}:  true,
		{model.StatusConfirmed, model.StatusInProgress}: true,
		{model.StatusInProgress, model.StatusDone}:      true,
	}
	all := []model.AppointmentStatus{
		model.StatusPending, model.StatusConfirmed, model.StatusCancelled,
		model.StatusInProgress, model.StatusDone,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]model.AppointmentStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)

			err := CheckTransition(from, to)
			if want {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, model.ErrInvalidTransition))
			}
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminal(model.StatusCancelled))
	assert.True(t, IsTerminal(model.StatusDone))
	assert.False(t, IsTerminal(model.StatusPending))
	assert.Equal(t, model.StatusPending, InitialStatus)
	assert.Empty(t, NextStatuses(model.StatusDone))
	assert.Equal(t, []model.AppointmentStatus{model.StatusDone}, NextStatuses(model.StatusInProgress))
}

func TestCountByStatus(t *testing.T) {
	appointments := []model.Appointment{
		apt(1, "09:00", model.StatusConfirmed),
		apt(2, "09:30", model.StatusPending),
		apt(3, "10:00", model.StatusPending),
		apt(4, "10:30", model.StatusCancelled),
		apt(5, "11:00", model.AppointmentStatus("REPORTE")),
	}

	stats := CountByStatus(appointments)
	assert.Equal(t, DayStats{Total: 5, Pending: 2, Confirmed: 1, Cancelled: 1}, stats)
}

func TestSortByTime(t *testing.T) {
	appointments := []model.Appointment{
		apt(3, "11:00:00", model.StatusConfirmed),
		apt(2, "09:00", model.StatusConfirmed),
		apt(1, "11:00", model.StatusConfirmed),
	}
	SortByTime(appointments)

	assert.Equal(t, int64(2), appointments[0].ID)
	assert.Equal(t, int64(1), appointments[1].ID)
	assert.Equal(t, int64(3), appointments[2].ID)
}
