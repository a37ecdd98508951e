package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayUsesCache(t *testing.T) {
	store := newFakeAppointments(appointment(1, "09:30", model.StatusConfirmed, 3))
	cache := newFakeCache()
	svc := newTestAgenda(store, newFakePatients(), cache)

	day, err := svc.Day(context.Background(), secretary(), testDate)
	require.NoError(t, err)
	assert.Len(t, day.Slots, 16)
	assert.Equal(t, 15, day.FreeCount())

	_, err = svc.Day(context.Background(), doctor(), testDate)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)

	svc.Invalidate(context.Background(), 7, testDate)
	_, err = svc.Day(context.Background(), secretary(), testDate)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}

func TestDayCacheFailureFallsBackToStore(t *testing.T) {
	store := newFakeAppointments(appointment(1, "09:30", model.StatusConfirmed, 3))
	cache := newFakeCache()
	cache.err = errors.New("redis down")
	svc := newTestAgenda(store, newFakePatients(), cache)

	day, err := svc.Day(context.Background(), secretary(), testDate)
	require.NoError(t, err)
	slot, ok := day.Slot("09:30")
	require.True(t, ok)
	assert.False(t, slot.IsFree)
}

func TestDayReportsDuplicates(t *testing.T) {
	store := newFakeAppointments(
		appointment(42, "09:30", model.StatusPending, 3),
		appointment(17, "09:30", model.StatusConfirmed, 4),
	)
	svc := newTestAgenda(store, newFakePatients(), newFakeCache())

	day, err := svc.Day(context.Background(), secretary(), testDate)
	require.NoError(t, err)
	require.Len(t, day.Anomalies, 1)

	slot, _ := day.Slot("09:30")
	require.NotNil(t, slot.Appointment)
	assert.Equal(t, int64(17), slot.Appointment.ID)
}

func TestDayErrors(t *testing.T) {
	svc := newTestAgenda(newFakeAppointments(), newFakePatients(), newFakeCache())

	_, err := svc.Day(context.Background(), nil, testDate)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = svc.Day(context.Background(), secretary(), "tomorrow")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	noCabinet := secretary()
	noCabinet.CabinetID = 0
	_, err = svc.Day(context.Background(), noCabinet, testDate)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	store := newFakeAppointments()
	store.listErr = model.ErrStoreUnavailable
	svc = newTestAgenda(store, newFakePatients(), newFakeCache())
	_, err = svc.Day(context.Background(), secretary(), testDate)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestDayForOtherCabinet(t *testing.T) {
	other := appointment(1, "10:00", model.StatusPending, 3)
	other.CabinetID = 9
	cache := newFakeCache()
	svc := newTestAgenda(newFakeAppointments(other), newFakePatients(), cache)

	day, err := svc.DayFor(context.Background(), admin(), 9, testDate)
	require.NoError(t, err)
	assert.Equal(t, int64(9), day.CabinetID)
	slot, ok := day.Slot("10:00")
	require.True(t, ok)
	assert.False(t, slot.IsFree)
	assert.Contains(t, cache.items, cacheKey(9, testDate))

	day, err = svc.Day(context.Background(), admin(), testDate)
	require.NoError(t, err)
	assert.Equal(t, len(day.Slots), day.FreeCount())

	_, err = svc.DayFor(context.Background(), admin(), 0, testDate)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestDayOfAppointmentWithoutCabinet(t *testing.T) {
	legacy := appointment(1, "09:30", model.StatusPending, 3)
	legacy.CabinetID = 0
	taken := appointment(2, "10:00", model.StatusConfirmed, 4)
	svc := newTestAgenda(newFakeAppointments(taken), newFakePatients(), newFakeCache())

	day, err := svc.DayOf(context.Background(), secretary(), &legacy, testDate)
	require.NoError(t, err)
	assert.Equal(t, int64(7), day.CabinetID)
	slot, ok := day.Slot("10:00")
	require.True(t, ok)
	assert.False(t, slot.IsFree)

	other := appointment(3, "11:00", model.StatusPending, 3)
	other.CabinetID = 9
	day, err = svc.DayOf(context.Background(), admin(), &other, testDate)
	require.NoError(t, err)
	assert.Equal(t, int64(9), day.CabinetID)

	assert.Equal(t, int64(0), AppointmentCabinet(nil, &legacy))
}

func TestPatientNames(t *testing.T) {
	patients := newFakePatients(model.Patient{ID: 3, FirstName: "Sara", LastName: "Alami", CabinetID: 7})
	svc := newTestAgenda(newFakeAppointments(), patients, newFakeCache())

	names, err := svc.PatientNames(context.Background(), secretary())
	require.NoError(t, err)
	assert.Equal(t, "Sara Alami", PatientName(names, 3))
	assert.Equal(t, model.UnknownPatientName, PatientName(names, 4))
}
