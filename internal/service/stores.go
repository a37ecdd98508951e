package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// Интерфейсы внешних хранилищ. Реализации: internal/client, internal/repository, internal/cache.

type SessionStore interface {
	Upsert(ctx context.Context, s *model.Session) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error)
	Delete(ctx context.Context, telegramID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type IdentityProvider interface {
	Login(ctx context.Context, login, password string) (*model.LoginResponse, error)
}

type UserDirectory interface {
	Get(ctx context.Context, id int64) (*model.User, error)
}

type CabinetDirectory interface {
	Get(ctx context.Context, id int64) (*model.Cabinet, error)
}

// Списки для сводки администратора

type CabinetCatalog interface {
	List(ctx context.Context) ([]model.Cabinet, error)
}

type UserCatalog interface {
	List(ctx context.Context) ([]model.User, error)
}

type PatientCatalog interface {
	List(ctx context.Context) ([]model.Patient, error)
}

type AppointmentStore interface {
	ListByCabinetAndDate(ctx context.Context, cabinetID int64, date string) ([]model.Appointment, error)
	PatientHistory(ctx context.Context, cabinetID, patientID int64) ([]model.Appointment, error)
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	Create(ctx context.Context, req model.AppointmentRequest) (*model.Appointment, error)
	Update(ctx context.Context, id int64, req model.AppointmentRequest) (*model.Appointment, error)
	Confirm(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type PatientDirectory interface {
	Get(ctx context.Context, id int64) (*model.Patient, error)
	ByCabinet(ctx context.Context, cabinetID int64) ([]model.Patient, error)
	Search(ctx context.Context, lastName string) ([]model.Patient, error)
}

type InvoiceLookup interface {
	ByAppointment(ctx context.Context, appointmentID int64) (*model.Invoice, error)
}

type ConsultationLookup interface {
	ByPatient(ctx context.Context, patientID int64) ([]model.Consultation, error)
}

type PrescriptionLookup interface {
	Get(ctx context.Context, id int64) (*model.Prescription, error)
}

type AgendaCache interface {
	Get(ctx context.Context, cabinetID int64, date string) ([]model.Appointment, bool, error)
	Set(ctx context.Context, cabinetID int64, date string, list []model.Appointment) error
	Invalidate(ctx context.Context, cabinetID int64, date string) error
}

// sessionContext передаёт токен сессии REST-клиентам
func sessionContext(ctx context.Context, s *model.Session) context.Context {
	return auth.WithToken(ctx, s.Token)
}
