package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

// PatientClient клиент patient-service
type PatientClient struct {
	rest *restClient
}

func NewPatientClient(baseURL string, opts Options, logger *zap.Logger) *PatientClient {
	return &PatientClient{rest: newRestClient("patients", baseURL, opts, logger)}
}

func (c *PatientClient) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var p model.Patient
	if err := c.rest.get(ctx, fmt.Sprintf("/api/patients/%d", id), &p); err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return &p, nil
}

func (c *PatientClient) ByCabinet(ctx context.Context, cabinetID int64) ([]model.Patient, error) {
	var list []model.Patient
	if err := c.rest.get(ctx, fmt.Sprintf("/api/patients/by-cabinet/%d", cabinetID), &list); err != nil {
		return nil, fmt.Errorf("list patients by cabinet: %w", err)
	}
	return list, nil
}

// List все пациенты (сводка администратора)
func (c *PatientClient) List(ctx context.Context) ([]model.Patient, error) {
	var list []model.Patient
	if err := c.rest.get(ctx, "/api/patients", &list); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return list, nil
}

// Search поиск по фамилии
func (c *PatientClient) Search(ctx context.Context, lastName string) ([]model.Patient, error) {
	var list []model.Patient
	if err := c.rest.get(ctx, "/api/patients/search?nom="+url.QueryEscape(lastName), &list); err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return list, nil
}

// BillingClient клиент сервиса счетов
type BillingClient struct {
	rest *restClient
}

func NewBillingClient(baseURL string, opts Options, logger *zap.Logger) *BillingClient {
	return &BillingClient{rest: newRestClient("billing", baseURL, opts, logger)}
}

func (c *BillingClient) ByCabinet(ctx context.Context, cabinetID int64) ([]model.Invoice, error) {
	var list []model.Invoice
	if err := c.rest.get(ctx, fmt.Sprintf("/api/factures/cabinet/%d", cabinetID), &list); err != nil {
		return nil, fmt.Errorf("list invoices by cabinet: %w", err)
	}
	return list, nil
}

// ByAppointment счёт записи; ErrNotFound если счёт не выставлен
func (c *BillingClient) ByAppointment(ctx context.Context, appointmentID int64) (*model.Invoice, error) {
	var inv model.Invoice
	if err := c.rest.get(ctx, fmt.Sprintf("/api/factures/rendez-vous/%d", appointmentID), &inv); err != nil {
		return nil, fmt.Errorf("get invoice for appointment %d: %w", appointmentID, err)
	}
	if inv.ID == 0 {
		return nil, fmt.Errorf("get invoice for appointment %d: %w", appointmentID, model.ErrNotFound)
	}
	return &inv, nil
}

// ConsultationClient клиент consultation-service
type ConsultationClient struct {
	rest *restClient
}

func NewConsultationClient(baseURL string, opts Options, logger *zap.Logger) *ConsultationClient {
	return &ConsultationClient{rest: newRestClient("consultations", baseURL, opts, logger)}
}

func (c *ConsultationClient) ByPatient(ctx context.Context, patientID int64) ([]model.Consultation, error) {
	var list []model.Consultation
	if err := c.rest.get(ctx, fmt.Sprintf("/api/consultations/patient/%d", patientID), &list); err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return list, nil
}

// PrescriptionClient клиент ordonnance-service, только чтение
type PrescriptionClient struct {
	rest *restClient
}

func NewPrescriptionClient(baseURL string, opts Options, logger *zap.Logger) *PrescriptionClient {
	return &PrescriptionClient{rest: newRestClient("ordonnances", baseURL, opts, logger)}
}

func (c *PrescriptionClient) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	var p model.Prescription
	if err := c.rest.get(ctx, fmt.Sprintf("/api/ordonnances/%d", id), &p); err != nil {
		return nil, fmt.Errorf("get prescription %d: %w", id, err)
	}
	return &p, nil
}

// UserClient клиент user-service
type UserClient struct {
	rest *restClient
}

func NewUserClient(baseURL string, opts Options, logger *zap.Logger) *UserClient {
	return &UserClient{rest: newRestClient("users", baseURL, opts, logger)}
}

func (c *UserClient) Get(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := c.rest.get(ctx, fmt.Sprintf("/api/users/%d", id), &u); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (c *UserClient) List(ctx context.Context) ([]model.User, error) {
	var list []model.User
	if err := c.rest.get(ctx, "/api/users", &list); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// CabinetClient клиент cabinet-service
type CabinetClient struct {
	rest *restClient
}

func NewCabinetClient(baseURL string, opts Options, logger *zap.Logger) *CabinetClient {
	return &CabinetClient{rest: newRestClient("cabinets", baseURL, opts, logger)}
}

func (c *CabinetClient) Get(ctx context.Context, id int64) (*model.Cabinet, error) {
	var cab model.Cabinet
	if err := c.rest.get(ctx, fmt.Sprintf("/api/cabinets/%d", id), &cab); err != nil {
		return nil, fmt.Errorf("get cabinet %d: %w", id, err)
	}
	return &cab, nil
}

func (c *CabinetClient) List(ctx context.Context) ([]model.Cabinet, error) {
	var list []model.Cabinet
	if err := c.rest.get(ctx, "/api/cabinets", &list); err != nil {
		return nil, fmt.Errorf("list cabinets: %w", err)
	}
	return list, nil
}
