package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/metrics"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

// BookingRequest данные новой записи из диалога бронирования
type BookingRequest struct {
	Date      string
	Time      string
	PatientID int64
	Reason    string
	DoctorID  *int64
	Notes     string
}

type BookingService struct {
	agenda   *AgendaService
	store    AppointmentStore
	patients PatientDirectory
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	agendaService *AgendaService,
	store AppointmentStore,
	patients PatientDirectory,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		agenda:   agendaService,
		store:    store,
		patients: patients,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateSlot проверяет дату и что время лежит на сетке.
// Возвращает время в каноничном виде HH:MM ("9:30" -> "09:30").
func (s *BookingService) ValidateSlot(date, t string) (string, error) {
	if _, err := agenda.ParseDate(date); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	parsed, err := agenda.ParseSlotTime(t)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	canonical := parsed.Format(agenda.TimeLayout)
	if !s.agenda.Grid().Contains(canonical) {
		return "", fmt.Errorf("%w: %s is outside the working grid", model.ErrInvalidInput, t)
	}
	return canonical, nil
}

// CheckPatient проверяет что пациент существует и относится к кабинету сессии
func (s *BookingService) CheckPatient(ctx context.Context, session *model.Session, patientID int64) (*model.Patient, error) {
	if err := auth.RequireSession(session, s.now()); err != nil {
		return nil, err
	}
	if patientID <= 0 {
		return nil, fmt.Errorf("%w: bad patient id", model.ErrInvalidInput)
	}
	patient, err := s.patients.Get(sessionContext(ctx, session), patientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if err := checkPatientCabinet(session, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Book создаёт запись со статусом PENDING после проверки свободного слота
func (s *BookingService) Book(ctx context.Context, session *model.Session, req BookingRequest) (*model.Appointment, error) {
	if err := auth.Require(session, auth.ActionBook, s.now()); err != nil {
		return nil, err
	}
	if err := requireCabinet(session); err != nil {
		return nil, err
	}
	slotTime, err := s.ValidateSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	req.Time = slotTime
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: empty reason", model.ErrInvalidInput)
	}
	if _, err := s.CheckPatient(ctx, session, req.PatientID); err != nil {
		return nil, err
	}

	// Перед отправкой проверяем по свежему списку, не по кэшу
	list, err := s.agenda.Fresh(ctx, session, req.Date)
	if err != nil {
		return nil, err
	}
	if !agenda.IsAvailable(list, req.Time, agenda.NoExclusion) {
		s.metrics.ObserveSlotConflict()
		return nil, fmt.Errorf("%w: %s %s", model.ErrSlotTaken, req.Date, req.Time)
	}

	create := model.AppointmentRequest{
		Date:      req.Date,
		Time:      agenda.ExpandTime(req.Time),
		Reason:    req.Reason,
		Status:    agenda.InitialStatus,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		CabinetID: session.CabinetID,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		create.Notes = &notes
	}

	appointment, err := s.store.Create(sessionContext(ctx, session), create)
	if err != nil {
		s.observeConflict(err)
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	s.agenda.Invalidate(ctx, session.CabinetID, req.Date)

	s.logger.Info("Appointment booked",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("cabinet_id", session.CabinetID),
		zap.Int64("patient_id", req.PatientID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)

	return appointment, nil
}

// Reschedule переносит запись; сама запись не блокирует своё время
func (s *BookingService) Reschedule(ctx context.Context, session *model.Session, id int64, date, t string) (*model.Appointment, error) {
	if err := auth.Require(session, auth.ActionReschedule, s.now()); err != nil {
		return nil, err
	}
	t, err := s.ValidateSlot(date, t)
	if err != nil {
		return nil, err
	}

	current, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.StatusPending && current.Status != model.StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot move %s appointment", model.ErrInvalidTransition, current.Status)
	}

	cabinetID := AppointmentCabinet(session, current)
	list, err := s.agenda.FreshFor(ctx, session, cabinetID, date)
	if err != nil {
		return nil, err
	}
	if !agenda.IsAvailable(list, t, current.ID) {
		s.metrics.ObserveSlotConflict()
		return nil, fmt.Errorf("%w: %s %s", model.ErrSlotTaken, date, t)
	}

	req := model.RequestFrom(current)
	req.Date = date
	req.Time = agenda.ExpandTime(t)

	updated, err := s.store.Update(sessionContext(ctx, session), id, req)
	if err != nil {
		s.observeConflict(err)
		return nil, fmt.Errorf("reschedule appointment: %w", err)
	}
	s.agenda.Invalidate(ctx, cabinetID, current.Date)
	if date != current.Date {
		s.agenda.Invalidate(ctx, cabinetID, date)
	}

	s.logger.Info("Appointment rescheduled",
		zap.Int64("appointment_id", id),
		zap.String("from", current.Date+" "+current.Time),
		zap.String("to", date+" "+t),
	)

	return updated, nil
}

// Confirm PENDING -> CONFIRMED
func (s *BookingService) Confirm(ctx context.Context, session *model.Session, id int64) (*model.Appointment, error) {
	if err := auth.Require(session, auth.ActionConfirm, s.now()); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := agenda.CheckTransition(a.Status, model.StatusConfirmed); err != nil {
		return nil, err
	}

	if err := s.store.Confirm(sessionContext(ctx, session), id); err != nil {
		return nil, fmt.Errorf("confirm appointment: %w", err)
	}
	a.Status = model.StatusConfirmed
	s.agenda.Invalidate(ctx, a.CabinetID, a.Date)

	s.logger.Info("Appointment confirmed", zap.Int64("appointment_id", id))
	return a, nil
}

// Cancel мягкое удаление. Повторная отмена ничего не делает и возвращает changed=false.
func (s *BookingService) Cancel(ctx context.Context, session *model.Session, id int64) (*model.Appointment, bool, error) {
	if err := auth.Require(session, auth.ActionCancel, s.now()); err != nil {
		return nil, false, err
	}
	a, err := s.load(ctx, session, id)
	if err != nil {
		return nil, false, err
	}

	changed, err := agenda.Cancel(a)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return a, false, nil
	}

	if err := s.store.Cancel(sessionContext(ctx, session), id); err != nil {
		return nil, false, fmt.Errorf("cancel appointment: %w", err)
	}
	s.agenda.Invalidate(ctx, a.CabinetID, a.Date)

	s.logger.Info("Appointment cancelled", zap.Int64("appointment_id", id))
	return a, true, nil
}

// StartConsultation CONFIRMED -> IN_PROGRESS
func (s *BookingService) StartConsultation(ctx context.Context, session *model.Session, id int64) (*model.Appointment, error) {
	return s.advance(ctx, session, id, auth.ActionStartConsult, model.StatusInProgress)
}

// FinishConsultation IN_PROGRESS -> DONE
func (s *BookingService) FinishConsultation(ctx context.Context, session *model.Session, id int64) (*model.Appointment, error) {
	return s.advance(ctx, session, id, auth.ActionFinish, model.StatusDone)
}

func (s *BookingService) advance(ctx context.Context, session *model.Session, id int64, action string, to model.AppointmentStatus) (*model.Appointment, error) {
	if err := auth.Require(session, action, s.now()); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	// Врач ведёт только свои приёмы
	if session.Role == model.RoleDoctor && a.DoctorID != nil && *a.DoctorID != session.UserID {
		return nil, fmt.Errorf("%w: appointment %d belongs to another doctor", model.ErrForbidden, id)
	}
	if err := agenda.CheckTransition(a.Status, to); err != nil {
		return nil, err
	}

	req := model.RequestFrom(a)
	req.Time = agenda.ExpandTime(a.Time)
	req.Status = to
	if req.DoctorID == nil && session.Role == model.RoleDoctor {
		doctorID := session.UserID
		req.DoctorID = &doctorID
	}

	updated, err := s.store.Update(sessionContext(ctx, session), id, req)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	s.agenda.Invalidate(ctx, a.CabinetID, a.Date)

	s.logger.Info("Appointment status changed",
		zap.Int64("appointment_id", id),
		zap.String("from", string(a.Status)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

// Delete окончательное удаление, только ADMIN
func (s *BookingService) Delete(ctx context.Context, session *model.Session, id int64) error {
	if err := auth.Require(session, auth.ActionDelete, s.now()); err != nil {
		return err
	}
	a, err := s.load(ctx, session, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(sessionContext(ctx, session), id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	s.agenda.Invalidate(ctx, a.CabinetID, a.Date)

	s.logger.Info("Appointment deleted", zap.Int64("appointment_id", id), zap.Int64("admin_id", session.UserID))
	return nil
}

// load получает запись и проверяет что она из кабинета сессии
func (s *BookingService) load(ctx context.Context, session *model.Session, id int64) (*model.Appointment, error) {
	a, err := s.store.Get(sessionContext(ctx, session), id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if err := checkCabinet(session, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *BookingService) observeConflict(err error) {
	if errors.Is(err, model.ErrSlotTaken) {
		s.metrics.ObserveSlotConflict()
	}
}

// checkCabinet запрещает действия с записями чужого кабинета (кроме ADMIN)
func checkCabinet(session *model.Session, a *model.Appointment) error {
	if session.Role == model.RoleAdmin || session.CabinetID == 0 || a.CabinetID == 0 {
		return nil
	}
	if a.CabinetID != session.CabinetID {
		return fmt.Errorf("%w: appointment %d is not in cabinet %d", model.ErrForbidden, a.ID, session.CabinetID)
	}
	return nil
}

// checkPatientCabinet не-ADMIN видит только пациентов своего кабинета
func checkPatientCabinet(session *model.Session, p *model.Patient) error {
	if session.Role == model.RoleAdmin {
		return nil
	}
	if p.CabinetID != session.CabinetID {
		return fmt.Errorf("%w: patient %d is not in cabinet %d", model.ErrForbidden, p.ID, session.CabinetID)
	}
	return nil
}
