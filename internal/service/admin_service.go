package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

// CabinetOverview строка сводки по кабинету
type CabinetOverview struct {
	Cabinet  model.Cabinet
	Users    int
	Patients int
}

// Overview сводка администратора по всем кабинетам
type Overview struct {
	Cabinets       int
	ActiveCabinets int
	NewThisMonth   int
	Users          int
	Doctors        int
	Secretaries    int
	Patients       int
	PerCabinet     []CabinetOverview // активные сверху, затем по имени
	Degraded       bool              // часть списков не загрузилась
}

type AdminService struct {
	cabinets CabinetCatalog
	users    UserCatalog
	patients PatientCatalog
	logger   *zap.Logger
	now      func() time.Time
}

func NewAdminService(cabinets CabinetCatalog, users UserCatalog, patients PatientCatalog, logger *zap.Logger) *AdminService {
	return &AdminService{
		cabinets: cabinets,
		users:    users,
		patients: patients,
		logger:   logger,
		now:      time.Now,
	}
}

// Overview считает кабинеты, сотрудников и пациентов.
// Недоступный список считается пустым, сводка помечается Degraded.
func (s *AdminService) Overview(ctx context.Context, session *model.Session) (*Overview, error) {
	if err := auth.Require(session, auth.ActionOverview, s.now()); err != nil {
		return nil, err
	}
	ctx = sessionContext(ctx, session)
	o := &Overview{}

	cabinets, err := s.cabinets.List(ctx)
	if err != nil {
		s.logger.Warn("Overview: cabinets unavailable", zap.Error(err))
		o.Degraded = true
	}
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Warn("Overview: users unavailable", zap.Error(err))
		o.Degraded = true
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		s.logger.Warn("Overview: patients unavailable", zap.Error(err))
		o.Degraded = true
	}

	month := s.now().Format("2006-01")
	usersByCabinet := make(map[int64]int)
	for _, u := range users {
		usersByCabinet[u.CabinetID]++
		switch u.Role {
		case model.RoleDoctor:
			o.Doctors++
		case model.RoleSecretary:
			o.Secretaries++
		}
	}
	patientsByCabinet := make(map[int64]int)
	for _, p := range patients {
		patientsByCabinet[p.CabinetID]++
	}

	o.Cabinets = len(cabinets)
	o.Users = len(users)
	o.Patients = len(patients)
	o.PerCabinet = make([]CabinetOverview, 0, len(cabinets))
	for _, c := range cabinets {
		if c.Active {
			o.ActiveCabinets++
		}
		if createdIn(c.CreatedAt, month) {
			o.NewThisMonth++
		}
		o.PerCabinet = append(o.PerCabinet, CabinetOverview{
			Cabinet:  c,
			Users:    usersByCabinet[c.ID],
			Patients: patientsByCabinet[c.ID],
		})
	}
	sort.SliceStable(o.PerCabinet, func(i, j int) bool {
		a, b := o.PerCabinet[i].Cabinet, o.PerCabinet[j].Cabinet
		if a.Active != b.Active {
			return a.Active
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return o, nil
}

// createdIn createdAt приходит датой или датой со временем
func createdIn(createdAt, month string) bool {
	if len(createdAt) < len(agenda.DateLayout) {
		return false
	}
	if _, err := agenda.ParseDate(createdAt[:len(agenda.DateLayout)]); err != nil {
		return false
	}
	return createdAt[:len(month)] == month
}
