package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

// DashboardEntry строка списка дня
type DashboardEntry struct {
	Appointment model.Appointment
	PatientName string
}

// Dashboard сводка кабинета за день
type Dashboard struct {
	Date     string
	Stats    agenda.DayStats
	Entries  []DashboardEntry
	Degraded bool // часть данных не загрузилась
}

type DashboardService struct {
	agenda *AgendaService
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(agendaService *AgendaService, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		agenda: agendaService,
		logger: logger,
		now:    time.Now,
	}
}

// Today сводка за сегодня. Сбой любого источника даёт пустой список, а не ошибку.
func (s *DashboardService) Today(ctx context.Context, session *model.Session) (*Dashboard, error) {
	if err := auth.Require(session, auth.ActionViewAgenda, s.now()); err != nil {
		return nil, err
	}
	if err := requireCabinet(session); err != nil {
		return nil, err
	}

	d := &Dashboard{Date: s.now().Format(agenda.DateLayout)}

	list, err := s.agenda.Appointments(ctx, session, d.Date)
	if err != nil {
		s.logger.Warn("Dashboard: appointments unavailable", zap.Int64("cabinet_id", session.CabinetID), zap.Error(err))
		list = nil
		d.Degraded = true
	}

	var names map[int64]string
	if len(list) > 0 {
		names, err = s.agenda.PatientNames(ctx, session)
		if err != nil {
			d.Degraded = true
		}
	}

	sorted := make([]model.Appointment, len(list))
	copy(sorted, list)
	agenda.SortByTime(sorted)

	d.Stats = agenda.CountByStatus(sorted)
	d.Entries = make([]DashboardEntry, 0, len(sorted))
	for _, a := range sorted {
		d.Entries = append(d.Entries, DashboardEntry{
			Appointment: a,
			PatientName: PatientName(names, a.PatientID),
		})
	}

	return d, nil
}
