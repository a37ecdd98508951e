package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

const appointmentsPath = "/api/rendezvous"

// AppointmentClient клиент rendezvous-service
type AppointmentClient struct {
	rest *restClient
}

func NewAppointmentClient(baseURL string, opts Options, logger *zap.Logger) *AppointmentClient {
	return &AppointmentClient{rest: newRestClient("appointments", baseURL, opts, logger)}
}

// ListByCabinet все записи кабинета
func (c *AppointmentClient) ListByCabinet(ctx context.Context, cabinetID int64) ([]model.Appointment, error) {
	var list []model.Appointment
	path := fmt.Sprintf("%s/cabinet/%d", appointmentsPath, cabinetID)
	if err := c.rest.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("list appointments by cabinet: %w", err)
	}
	return normalizeAll(list), nil
}

// ListByCabinetAndDate записи кабинета на дату.
// Сервис не умеет фильтровать по дате для кабинета, поэтому фильтр на клиенте.
func (c *AppointmentClient) ListByCabinetAndDate(ctx context.Context, cabinetID int64, date string) ([]model.Appointment, error) {
	list, err := c.ListByCabinet(ctx, cabinetID)
	if err != nil {
		return nil, err
	}
	return agenda.FilterByDate(list, date), nil
}

// ByDate записи всех кабинетов на дату
func (c *AppointmentClient) ByDate(ctx context.Context, date string) ([]model.Appointment, error) {
	var list []model.Appointment
	path := appointmentsPath + "/by-date?date=" + url.QueryEscape(date)
	if err := c.rest.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("list appointments by date: %w", err)
	}
	return normalizeAll(list), nil
}

// ByDoctor записи врача в кабинете на дату
func (c *AppointmentClient) ByDoctor(ctx context.Context, cabinetID, doctorID int64, date string) ([]model.Appointment, error) {
	var list []model.Appointment
	path := fmt.Sprintf("%s/cabinet/%d/medecin/%d?date=%s", appointmentsPath, cabinetID, doctorID, url.QueryEscape(date))
	if err := c.rest.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("list appointments by doctor: %w", err)
	}
	return normalizeAll(list), nil
}

// PatientHistory история записей пациента в кабинете
func (c *AppointmentClient) PatientHistory(ctx context.Context, cabinetID, patientID int64) ([]model.Appointment, error) {
	var list []model.Appointment
	path := fmt.Sprintf("%s/cabinet/%d/patient/%d", appointmentsPath, cabinetID, patientID)
	if err := c.rest.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return normalizeAll(list), nil
}

func (c *AppointmentClient) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var a model.Appointment
	if err := c.rest.get(ctx, fmt.Sprintf("%s/%d", appointmentsPath, id), &a); err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	normalize(&a)
	return &a, nil
}

// Create создаёт запись; время уходит в формате HH:MM:SS
func (c *AppointmentClient) Create(ctx context.Context, req model.AppointmentRequest) (*model.Appointment, error) {
	req.Time = agenda.ExpandTime(req.Time)
	var a model.Appointment
	if err := c.rest.send(ctx, http.MethodPost, appointmentsPath, req, &a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	normalize(&a)
	return &a, nil
}

func (c *AppointmentClient) Update(ctx context.Context, id int64, req model.AppointmentRequest) (*model.Appointment, error) {
	req.Time = agenda.ExpandTime(req.Time)
	var a model.Appointment
	if err := c.rest.send(ctx, http.MethodPut, fmt.Sprintf("%s/%d", appointmentsPath, id), req, &a); err != nil {
		return nil, fmt.Errorf("update appointment %d: %w", id, err)
	}
	normalize(&a)
	return &a, nil
}

func (c *AppointmentClient) Confirm(ctx context.Context, id int64) error {
	if err := c.rest.send(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/confirmer", appointmentsPath, id), nil, nil); err != nil {
		return fmt.Errorf("confirm appointment %d: %w", id, err)
	}
	return nil
}

// Cancel мягкое удаление: статус ANNULE
func (c *AppointmentClient) Cancel(ctx context.Context, id int64) error {
	if err := c.rest.send(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/annuler", appointmentsPath, id), nil, nil); err != nil {
		return fmt.Errorf("cancel appointment %d: %w", id, err)
	}
	return nil
}

// Delete окончательное удаление (только ADMIN)
func (c *AppointmentClient) Delete(ctx context.Context, id int64) error {
	if err := c.rest.send(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", appointmentsPath, id), nil, nil); err != nil {
		return fmt.Errorf("delete appointment %d: %w", id, err)
	}
	return nil
}

func normalize(a *model.Appointment) {
	a.Time = agenda.NormalizeTime(a.Time)
}

func normalizeAll(list []model.Appointment) []model.Appointment {
	for i := range list {
		normalize(&list[i])
	}
	return list
}
