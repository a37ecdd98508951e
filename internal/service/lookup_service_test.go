package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppointmentCard(t *testing.T) {
	store := newFakeAppointments(
		appointment(1, "09:30", model.StatusDone, 3),
		appointment(2, "10:00", model.StatusPending, 4),
	)
	patients := newFakePatients(model.Patient{ID: 3, FirstName: "Sara", LastName: "Alami", CabinetID: 7})
	invoices := &fakeInvoices{items: map[int64]model.Invoice{1: {ID: 9, Status: model.InvoicePaid, AppointmentID: 1}}}
	svc := NewLookupService(store, patients, invoices, &fakeConsultations{}, &fakePrescriptions{}, zap.NewNop())

	card, err := svc.AppointmentCard(context.Background(), secretary(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Sara Alami", card.PatientName)
	require.NotNil(t, card.Invoice)
	assert.Equal(t, model.InvoicePaid, card.Invoice.Status)

	card, err = svc.AppointmentCard(context.Background(), secretary(), 2)
	require.NoError(t, err)
	assert.Equal(t, model.UnknownPatientName, card.PatientName)
	assert.Nil(t, card.Invoice)

	_, err = svc.AppointmentCard(context.Background(), secretary(), 5)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPatientCard(t *testing.T) {
	older := appointment(1, "09:30", model.StatusDone, 3)
	older.Date = "2025-12-20"
	store := newFakeAppointments(older, appointment(2, "10:00", model.StatusPending, 3))
	patients := newFakePatients(model.Patient{ID: 3, FirstName: "Sara", LastName: "Alami", CabinetID: 7})
	consultations := &fakeConsultations{items: []model.Consultation{{ID: 1, PatientID: 3}}}
	svc := NewLookupService(store, patients, &fakeInvoices{}, consultations, &fakePrescriptions{}, zap.NewNop())

	card, err := svc.PatientCard(context.Background(), doctor(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Sara Alami", card.Patient.FullName())
	require.Len(t, card.History, 2)
	assert.Equal(t, int64(2), card.History[0].ID)
	assert.Len(t, card.Consultations, 1)

	_, err = svc.PatientCard(context.Background(), doctor(), 4)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.PatientCard(context.Background(), doctor(), 0)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPatientCardConsultationsUnavailable(t *testing.T) {
	patients := newFakePatients(model.Patient{ID: 3, CabinetID: 7})
	consultations := &fakeConsultations{err: model.ErrStoreUnavailable}
	svc := NewLookupService(newFakeAppointments(), patients, &fakeInvoices{}, consultations, &fakePrescriptions{}, zap.NewNop())

	card, err := svc.PatientCard(context.Background(), secretary(), 3)
	require.NoError(t, err)
	assert.Empty(t, card.Consultations)
}

func TestPatientCardOtherCabinet(t *testing.T) {
	store := newFakeAppointments()
	patients := newFakePatients(model.Patient{ID: 42, LastName: "Bennani", CabinetID: 9})
	svc := NewLookupService(store, patients, &fakeInvoices{}, &fakeConsultations{}, &fakePrescriptions{}, zap.NewNop())

	_, err := svc.PatientCard(context.Background(), secretary(), 42)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.PatientCard(context.Background(), doctor(), 42)
	assert.ErrorIs(t, err, model.ErrForbidden)

	card, err := svc.PatientCard(context.Background(), admin(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(9), card.Patient.CabinetID)
}

func TestPatientCardPrescriptions(t *testing.T) {
	text := "Bilan sanguin complet"
	patients := newFakePatients(model.Patient{ID: 3, CabinetID: 7})
	consultations := &fakeConsultations{items: []model.Consultation{
		{ID: 1, PatientID: 3, Prescriptions: []model.Prescription{
			{ID: 11, Type: model.PrescriptionDrugs},
			{ID: 12, Type: model.PrescriptionExams, Text: &text},
		}},
		{ID: 2, PatientID: 3, Prescriptions: []model.Prescription{{ID: 13, Type: model.PrescriptionDrugs}}},
	}}
	prescriptions := &fakePrescriptions{items: map[int64]model.Prescription{
		11: {ID: 11, ConsultationID: 1, Type: model.PrescriptionDrugs, Medications: []model.Medication{
			{Name: "Amoxicilline", Dosage: "1g x2", Duration: "7 jours"},
		}},
	}}
	svc := NewLookupService(newFakeAppointments(), patients, &fakeInvoices{}, consultations, prescriptions, zap.NewNop())

	card, err := svc.PatientCard(context.Background(), doctor(), 3)
	require.NoError(t, err)
	require.Len(t, card.Prescriptions, 3)

	require.Len(t, card.Prescriptions[0].Medications, 1)
	assert.Equal(t, "Amoxicilline", card.Prescriptions[0].Medications[0].Name)
	assert.Equal(t, &text, card.Prescriptions[1].Text)
	// 13 не нашёлся, остаётся заглушка с номером консультации
	assert.False(t, card.Prescriptions[2].HasContent())
	assert.Equal(t, int64(2), card.Prescriptions[2].ConsultationID)

	assert.Equal(t, []int64{11, 13}, prescriptions.calls)
}

func TestPatientCardPrescriptionsUnavailable(t *testing.T) {
	patients := newFakePatients(model.Patient{ID: 3, CabinetID: 7})
	consultations := &fakeConsultations{items: []model.Consultation{
		{ID: 1, PatientID: 3, Prescriptions: []model.Prescription{{ID: 11, Type: model.PrescriptionDrugs}}},
	}}
	prescriptions := &fakePrescriptions{err: model.ErrStoreUnavailable}
	svc := NewLookupService(newFakeAppointments(), patients, &fakeInvoices{}, consultations, prescriptions, zap.NewNop())

	card, err := svc.PatientCard(context.Background(), doctor(), 3)
	require.NoError(t, err)
	require.Len(t, card.Prescriptions, 1)
	assert.Equal(t, int64(11), card.Prescriptions[0].ID)
	assert.Len(t, card.Consultations, 1)
}

func TestSearchPatients(t *testing.T) {
	patients := newFakePatients(
		model.Patient{ID: 3, FirstName: "Sara", LastName: "Alami", CabinetID: 7},
		model.Patient{ID: 4, FirstName: "Omar", LastName: "Alaoui", CabinetID: 8},
		model.Patient{ID: 5, FirstName: "Nadia", LastName: "Bennani", CabinetID: 7},
	)
	svc := NewLookupService(newFakeAppointments(), patients, &fakeInvoices{}, &fakeConsultations{}, &fakePrescriptions{}, zap.NewNop())
	svc.now = fixedNow

	found, err := svc.SearchPatients(context.Background(), secretary(), " ala ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(3), found[0].ID)

	found, err = svc.SearchPatients(context.Background(), admin(), "ala")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.SearchPatients(context.Background(), secretary(), "a")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
