package agenda

import (
	"testing"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apt(id int64, at string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID:        id,
		Date:      "2026-01-02",
		Time:      at,
		Status:    status,
		PatientID: 100 + id,
		CabinetID: 1,
	}
}

func mustGrid(t *testing.T, start, end, interval int) *Grid {
	t.Helper()
	g, err := NewGrid(start, end, interval)
	require.NoError(t, err)
	return g
}

func TestReconcileMarksOccupiedSlot(t *testing.T) {
	appointments := []model.Appointment{apt(1, "09:30:00", model.StatusConfirmed)}

	slots, anomalies := Reconcile(mustGrid(t, 9, 10, 30).Times(), appointments, "")

	require.Len(t, slots, 2)
	assert.Empty(t, anomalies)
	assert.Equal(t, model.TimeSlot{Time: "09:00", IsFree: true}, slots[0])
	assert.Equal(t, "09:30", slots[1].Time)
	assert.False(t, slots[1].IsFree)
	require.NotNil(t, slots[1].Appointment)
	assert.Equal(t, int64(1), slots[1].Appointment.ID)
}

func TestReconcileKeepsGridCardinality(t *testing.T) {
	times := mustGrid(t, 9, 17, 30).Times()
	sets := [][]model.Appointment{
		nil,
		{},
		{apt(1, "07:00", model.StatusConfirmed)},
		{apt(1, "09:00", model.StatusPending), apt(2, "09:00", model.StatusPending), apt(3, "16:30:00", model.StatusDone)},
	}

	for _, set := range sets {
		slots, _ := Reconcile(times, set, "2026-01-02")
		require.Len(t, slots, len(times))
		for i := range times {
			assert.Equal(t, times[i], slots[i].Time)
		}
	}
}

func TestReconcileIgnoresCancelled(t *testing.T) {
	appointments := []model.Appointment{
		apt(5, "10:00:00", model.StatusCancelled),
		apt(6, "10:30:00", model.StatusCancelled),
	}

	slots, anomalies := Reconcile(mustGrid(t, 10, 11, 30).Times(), appointments, "")

	assert.Empty(t, anomalies)
	for _, s := range slots {
		assert.True(t, s.IsFree, s.Time)
		assert.Nil(t, s.Appointment)
	}
}

func TestReconcileDuplicatePicksLowestID(t *testing.T) {
	appointments := []model.Appointment{
		apt(42, "14:00:00", model.StatusConfirmed),
		apt(17, "14:00", model.StatusPending),
		apt(30, "14:00:00", model.StatusCancelled),
	}
	times := mustGrid(t, 14, 15, 30).Times()

	first, firstAnomalies := Reconcile(times, appointments, "")
	second, secondAnomalies := Reconcile(times, appointments, "")

	require.Len(t, firstAnomalies, 1)
	assert.Equal(t, "14:00", firstAnomalies[0].Time)
	assert.Equal(t, int64(17), firstAnomalies[0].Kept.ID)
	require.Len(t, firstAnomalies[0].Dropped, 1)
	assert.Equal(t, int64(42), firstAnomalies[0].Dropped[0].ID)

	assert.Equal(t, int64(17), first[0].Appointment.ID)
	assert.Equal(t, first, second)
	assert.Equal(t, firstAnomalies, secondAnomalies)
}

func TestReconcileFiltersOtherDates(t *testing.T) {
	other := apt(9, "09:00", model.StatusConfirmed)
	other.Date = "2026-01-03"

	slots, _ := Reconcile([]string{"09:00"}, []model.Appointment{other}, "2026-01-02")
	assert.True(t, slots[0].IsFree)

	slots, _ = Reconcile([]string{"09:00"}, []model.Appointment{other}, "")
	assert.False(t, slots[0].IsFree)
}

func TestFreeTimes(t *testing.T) {
	appointments := []model.Appointment{apt(1, "09:30", model.StatusConfirmed)}
	slots, _ := Reconcile(mustGrid(t, 9, 11, 30).Times(), appointments, "")

	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, FreeTimes(slots))
}

func TestBuildDay(t *testing.T) {
	appointments := []model.Appointment{
		apt(1, "09:00:00", model.StatusConfirmed),
		apt(2, "09:30:00", model.StatusCancelled),
	}

	day := BuildDay(mustGrid(t, 9, 10, 30), 1, "2026-01-02", appointments)

	assert.Equal(t, "2026-01-02", day.Date)
	assert.Equal(t, 1, day.FreeCount())
	slot, ok := day.Slot("09:00:00")
	require.True(t, ok)
	assert.False(t, slot.IsFree)
	_, ok = day.Slot("12:00")
	assert.False(t, ok)
}
