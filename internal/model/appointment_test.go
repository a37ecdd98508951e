package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want AppointmentStatus
		ok   bool
	}{
		{"EN_ATTENTE", StatusPending, true},
		{"confirme", StatusConfirmed, true},
		{"ANNULE", StatusCancelled, true},
		{"EN_COURS", StatusInProgress, true},
		{"TERMINE", StatusDone, true},
		{"DONE", StatusDone, true},
		{"REPORTE", AppointmentStatus("REPORTE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestAppointmentDecodesServiceDTO(t *testing.T) {
	payload := `{"idRendezVous":7,"dateRdv":"2026-01-02","heureRdv":"11:00:00","motif":"Contrôle",
		"statut":"CONFIRME","notes":null,"medecinId":null,"patientId":12,"cabinetId":1}`

	var a Appointment
	require.NoError(t, json.Unmarshal([]byte(payload), &a))

	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, StatusConfirmed, a.Status)
	assert.Nil(t, a.DoctorID)
	assert.Empty(t, a.Notes)
	assert.True(t, a.IsActive())
}

func TestAppointmentRequestEncodesWireStatus(t *testing.T) {
	notes := "à jeun"
	req := AppointmentRequest{
		Date:      "2026-01-02",
		Time:      "09:30:00",
		Reason:    "Bilan",
		Status:    StatusPending,
		Notes:     &notes,
		PatientID: 3,
		CabinetID: 1,
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dateRdv":"2026-01-02","heureRdv":"09:30:00","motif":"Bilan","statut":"EN_ATTENTE",
		"notes":"à jeun","patientId":3,"cabinetId":1}`, string(data))
}

func TestRequestFrom(t *testing.T) {
	doctor := int64(4)
	a := &Appointment{ID: 1, Date: "2026-01-02", Time: "10:00:00", Status: StatusConfirmed, DoctorID: &doctor, PatientID: 2, CabinetID: 1}

	req := RequestFrom(a)
	assert.Equal(t, StatusConfirmed, req.Status)
	assert.Nil(t, req.Notes)
	assert.Equal(t, &doctor, req.DoctorID)
}
