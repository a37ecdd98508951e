package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

// PatientCard карточка пациента
type PatientCard struct {
	Patient       *model.Patient
	History       []model.Appointment // новые сверху
	Consultations []model.Consultation
	Prescriptions []model.Prescription // ордонансы консультаций, не больше maxPrescriptions
}

// AppointmentCard карточка записи
type AppointmentCard struct {
	Appointment *model.Appointment
	PatientName string
	Invoice     *model.Invoice // nil если счёт не выставлен или недоступен
}

type LookupService struct {
	store         AppointmentStore
	patients      PatientDirectory
	invoices      InvoiceLookup
	consultations ConsultationLookup
	prescriptions PrescriptionLookup
	logger        *zap.Logger
	now           func() time.Time
}

func NewLookupService(
	store AppointmentStore,
	patients PatientDirectory,
	invoices InvoiceLookup,
	consultations ConsultationLookup,
	prescriptions PrescriptionLookup,
	logger *zap.Logger,
) *LookupService {
	return &LookupService{
		store:         store,
		patients:      patients,
		invoices:      invoices,
		consultations: consultations,
		prescriptions: prescriptions,
		logger:        logger,
		now:           time.Now,
	}
}

// PatientCard пациент, его записи в кабинете и консультации
func (s *LookupService) PatientCard(ctx context.Context, session *model.Session, patientID int64) (*PatientCard, error) {
	if err := auth.Require(session, auth.ActionViewPatient, s.now()); err != nil {
		return nil, err
	}
	if patientID <= 0 {
		return nil, fmt.Errorf("%w: bad patient id", model.ErrInvalidInput)
	}
	ctx = sessionContext(ctx, session)

	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient card: %w", err)
	}
	if err := checkPatientCabinet(session, patient); err != nil {
		return nil, err
	}
	card := &PatientCard{Patient: patient}

	if session.CabinetID != 0 {
		history, err := s.store.PatientHistory(ctx, session.CabinetID, patientID)
		if err != nil {
			s.logger.Warn("Failed to load patient history", zap.Int64("patient_id", patientID), zap.Error(err))
		} else {
			sortNewestFirst(history)
			card.History = history
		}
	}

	if s.consultations != nil {
		consultations, err := s.consultations.ByPatient(ctx, patientID)
		if err != nil {
			s.logger.Warn("Failed to load consultations", zap.Int64("patient_id", patientID), zap.Error(err))
		} else {
			card.Consultations = consultations
			card.Prescriptions = s.loadPrescriptions(ctx, consultations)
		}
	}

	return card, nil
}

// maxPrescriptions столько ордонансов показываем в карточке
const maxPrescriptions = 5

// loadPrescriptions дозагружает содержимое ордонансов.
// Если ordonnance-service недоступен, остаётся заглушка из списка консультаций.
func (s *LookupService) loadPrescriptions(ctx context.Context, consultations []model.Consultation) []model.Prescription {
	var out []model.Prescription
	for _, c := range consultations {
		for _, p := range c.Prescriptions {
			if len(out) == maxPrescriptions {
				return out
			}
			if p.ConsultationID == 0 {
				p.ConsultationID = c.ID
			}
			if p.HasContent() || s.prescriptions == nil || p.ID == 0 {
				out = append(out, p)
				continue
			}
			full, err := s.prescriptions.Get(ctx, p.ID)
			if err != nil {
				s.logger.Warn("Failed to load prescription", zap.Int64("prescription_id", p.ID), zap.Error(err))
				out = append(out, p)
				continue
			}
			out = append(out, *full)
		}
	}
	return out
}

// AppointmentCard запись с именем пациента и счётом
func (s *LookupService) AppointmentCard(ctx context.Context, session *model.Session, id int64) (*AppointmentCard, error) {
	if err := auth.Require(session, auth.ActionViewAgenda, s.now()); err != nil {
		return nil, err
	}
	ctx = sessionContext(ctx, session)

	a, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("appointment card: %w", err)
	}
	if err := checkCabinet(session, a); err != nil {
		return nil, err
	}

	card := &AppointmentCard{Appointment: a, PatientName: model.UnknownPatientName}

	patient, err := s.patients.Get(ctx, a.PatientID)
	if err != nil {
		s.logger.Warn("Failed to load patient", zap.Int64("patient_id", a.PatientID), zap.Error(err))
	} else {
		card.PatientName = patient.FullName()
	}

	if s.invoices != nil {
		invoice, err := s.invoices.ByAppointment(ctx, id)
		switch {
		case err == nil:
			card.Invoice = invoice
		case errors.Is(err, model.ErrNotFound):
		default:
			s.logger.Warn("Failed to load invoice", zap.Int64("appointment_id", id), zap.Error(err))
		}
	}

	return card, nil
}

// maxSearchResults столько пациентов помещается в клавиатуру выбора
const maxSearchResults = 8

// SearchPatients ищет пациентов кабинета по фамилии
func (s *LookupService) SearchPatients(ctx context.Context, session *model.Session, query string) ([]model.Patient, error) {
	if err := auth.Require(session, auth.ActionViewPatient, s.now()); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, fmt.Errorf("%w: search query too short", model.ErrInvalidInput)
	}

	found, err := s.patients.Search(sessionContext(ctx, session), query)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}

	out := make([]model.Patient, 0, len(found))
	for _, p := range found {
		if checkPatientCabinet(session, &p) != nil {
			continue
		}
		out = append(out, p)
		if len(out) == maxSearchResults {
			break
		}
	}
	return out, nil
}

func sortNewestFirst(list []model.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].Time > list[j].Time
	})
}
