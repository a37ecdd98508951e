package model

import (
	"encoding/json"
	"strings"
)

// AppointmentStatus статус записи на приём
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "PENDING"     // Создана, ждёт подтверждения
	StatusConfirmed  AppointmentStatus = "CONFIRMED"   // Подтверждена секретарём
	StatusCancelled  AppointmentStatus = "CANCELLED"   // Отменена (мягкое удаление)
	StatusInProgress AppointmentStatus = "IN_PROGRESS" // Врач начал консультацию
	StatusDone       AppointmentStatus = "DONE"        // Консультация завершена
)

// Значения статуса в API rendezvous-service
var statusWire = map[AppointmentStatus]string{
	StatusPending:    "EN_ATTENTE",
	StatusConfirmed:  "CONFIRME",
	StatusCancelled:  "ANNULE",
	StatusInProgress: "EN_COURS",
	StatusDone:       "TERMINE",
}

var wireStatus = map[string]AppointmentStatus{
	"EN_ATTENTE": StatusPending,
	"CONFIRME":   StatusConfirmed,
	"ANNULE":     StatusCancelled,
	"EN_COURS":   StatusInProgress,
	"TERMINE":    StatusDone,
}

// ParseStatus принимает как имя статуса, так и значение из API.
// Неизвестная строка возвращается как есть с ok=false.
func ParseStatus(s string) (AppointmentStatus, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if st, ok := wireStatus[v]; ok {
		return st, true
	}
	if _, ok := statusWire[AppointmentStatus(v)]; ok {
		return AppointmentStatus(v), true
	}
	return AppointmentStatus(s), false
}

// Known сообщает, входит ли статус в закрытое перечисление
func (s AppointmentStatus) Known() bool {
	_, ok := statusWire[s]
	return ok
}

// Wire возвращает значение статуса для API
func (s AppointmentStatus) Wire() string {
	if w, ok := statusWire[s]; ok {
		return w
	}
	return string(s)
}

func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Wire())
}

func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s, _ = ParseStatus(raw)
	return nil
}

// Appointment запись на приём (DTO rendezvous-service)
type Appointment struct {
	ID        int64             `json:"idRendezVous"`
	Date      string            `json:"dateRdv"`  // YYYY-MM-DD
	Time      string            `json:"heureRdv"` // HH:MM:SS или HH:MM
	Reason    string            `json:"motif"`
	Status    AppointmentStatus `json:"statut"`
	Notes     string            `json:"notes"`
	DoctorID  *int64            `json:"medecinId"` // nil пока врач не назначен
	PatientID int64             `json:"patientId"`
	CabinetID int64             `json:"cabinetId"`
}

// IsActive - запись занимает слот (не отменена)
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// AppointmentRequest тело запроса на создание/изменение записи
type AppointmentRequest struct {
	Date      string            `json:"dateRdv"`
	Time      string            `json:"heureRdv"` // всегда HH:MM:SS
	Reason    string            `json:"motif"`
	Status    AppointmentStatus `json:"statut"`
	Notes     *string           `json:"notes,omitempty"`
	DoctorID  *int64            `json:"medecinId,omitempty"`
	PatientID int64             `json:"patientId,omitempty"`
	CabinetID int64             `json:"cabinetId,omitempty"`
}

// RequestFrom собирает запрос на изменение из существующей записи
func RequestFrom(a *Appointment) AppointmentRequest {
	req := AppointmentRequest{
		Date:      a.Date,
		Time:      a.Time,
		Reason:    a.Reason,
		Status:    a.Status,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		CabinetID: a.CabinetID,
	}
	if a.Notes != "" {
		notes := a.Notes
		req.Notes = &notes
	}
	return req
}

// TimeSlot ячейка сетки дня
type TimeSlot struct {
	Time        string       `json:"time"` // HH:MM
	IsFree      bool         `json:"is_free"`
	Appointment *Appointment `json:"appointment,omitempty"` // только для чтения, слот не владеет записью
}
