package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/metrics"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

type AgendaService struct {
	grid     *agenda.Grid
	store    AppointmentStore
	patients PatientDirectory
	cache    AgendaCache
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewAgendaService(
	grid *agenda.Grid,
	store AppointmentStore,
	patients PatientDirectory,
	cache AgendaCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AgendaService {
	return &AgendaService{
		grid:     grid,
		store:    store,
		patients: patients,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AgendaService) Grid() *agenda.Grid {
	return s.grid
}

// Today текущая дата в формате YYYY-MM-DD
func (s *AgendaService) Today() string {
	return s.now().Format(agenda.DateLayout)
}

// Day сетка дня для кабинета сессии
func (s *AgendaService) Day(ctx context.Context, session *model.Session, date string) (*agenda.Day, error) {
	if err := auth.RequireSession(session, s.now()); err != nil {
		return nil, err
	}
	if err := requireCabinet(session); err != nil {
		return nil, err
	}
	return s.DayFor(ctx, session, session.CabinetID, date)
}

// DayFor сетка дня для явно указанного кабинета (перенос записи администратором)
func (s *AgendaService) DayFor(ctx context.Context, session *model.Session, cabinetID int64, date string) (*agenda.Day, error) {
	if err := auth.Require(session, auth.ActionViewAgenda, s.now()); err != nil {
		return nil, err
	}
	if cabinetID == 0 {
		return nil, fmt.Errorf("%w: no cabinet", model.ErrInvalidInput)
	}
	if _, err := agenda.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	list, err := s.appointmentsFor(ctx, session, cabinetID, date)
	if err != nil {
		return nil, err
	}

	day := agenda.BuildDay(s.grid, cabinetID, date, list)
	s.reportAnomalies(day)
	return day, nil
}

// DayOf сетка дня в кабинете записи a (экран переноса)
func (s *AgendaService) DayOf(ctx context.Context, session *model.Session, a *model.Appointment, date string) (*agenda.Day, error) {
	return s.DayFor(ctx, session, AppointmentCabinet(session, a), date)
}

// AppointmentCabinet кабинет записи; у записей без кабинета берётся кабинет сессии
func AppointmentCabinet(session *model.Session, a *model.Appointment) int64 {
	if a.CabinetID != 0 || session == nil {
		return a.CabinetID
	}
	return session.CabinetID
}

// Appointments список записей дня, сначала из кэша
func (s *AgendaService) Appointments(ctx context.Context, session *model.Session, date string) ([]model.Appointment, error) {
	return s.appointmentsFor(ctx, session, session.CabinetID, date)
}

func (s *AgendaService) appointmentsFor(ctx context.Context, session *model.Session, cabinetID int64, date string) ([]model.Appointment, error) {
	if s.cache != nil {
		list, found, err := s.cache.Get(ctx, cabinetID, date)
		switch {
		case err != nil:
			s.metrics.ObserveAgendaCache("error")
			s.logger.Warn("Agenda cache read failed", zap.Int64("cabinet_id", cabinetID), zap.String("date", date), zap.Error(err))
		case found:
			s.metrics.ObserveAgendaCache("hit")
			return list, nil
		default:
			s.metrics.ObserveAgendaCache("miss")
		}
	}

	list, err := s.FreshFor(ctx, session, cabinetID, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cabinetID, date, list); err != nil {
			s.logger.Warn("Agenda cache write failed", zap.Int64("cabinet_id", cabinetID), zap.String("date", date), zap.Error(err))
		}
	}
	return list, nil
}

// Fresh список записей дня напрямую из rendezvous-service
func (s *AgendaService) Fresh(ctx context.Context, session *model.Session, date string) ([]model.Appointment, error) {
	return s.FreshFor(ctx, session, session.CabinetID, date)
}

// FreshFor то же для явно указанного кабинета
func (s *AgendaService) FreshFor(ctx context.Context, session *model.Session, cabinetID int64, date string) ([]model.Appointment, error) {
	list, err := s.store.ListByCabinetAndDate(sessionContext(ctx, session), cabinetID, date)
	if err != nil {
		return nil, fmt.Errorf("load agenda: %w", err)
	}
	return list, nil
}

// Invalidate сбрасывает кэш дня; ошибка только логируется
func (s *AgendaService) Invalidate(ctx context.Context, cabinetID int64, date string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cabinetID, date); err != nil {
		s.logger.Warn("Agenda cache invalidation failed", zap.Int64("cabinet_id", cabinetID), zap.String("date", date), zap.Error(err))
	}
}

func (s *AgendaService) reportAnomalies(day *agenda.Day) {
	for _, a := range day.Anomalies {
		dropped := make([]int64, len(a.Dropped))
		for i, d := range a.Dropped {
			dropped[i] = d.ID
		}
		s.logger.Warn("Several active appointments on one slot",
			zap.Int64("cabinet_id", day.CabinetID),
			zap.String("date", day.Date),
			zap.String("time", a.Time),
			zap.Int64("kept_id", a.Kept.ID),
			zap.Int64s("dropped_ids", dropped),
		)
		s.metrics.ObserveAgendaAnomalies(len(a.Dropped))
	}
}

// PatientNames имена пациентов кабинета; при сбое пустая карта
func (s *AgendaService) PatientNames(ctx context.Context, session *model.Session) (map[int64]string, error) {
	names := make(map[int64]string)
	if s.patients == nil {
		return names, nil
	}
	patients, err := s.patients.ByCabinet(sessionContext(ctx, session), session.CabinetID)
	if err != nil {
		s.logger.Warn("Failed to load patients", zap.Int64("cabinet_id", session.CabinetID), zap.Error(err))
		return names, err
	}
	for i := range patients {
		names[patients[i].ID] = patients[i].FullName()
	}
	return names, nil
}

// PatientName имя из карты или "Patient inconnu"
func PatientName(names map[int64]string, patientID int64) string {
	if name, ok := names[patientID]; ok {
		return name
	}
	return model.UnknownPatientName
}

func requireCabinet(session *model.Session) error {
	if session.CabinetID == 0 {
		return fmt.Errorf("%w: no cabinet bound to session", model.ErrInvalidInput)
	}
	return nil
}
