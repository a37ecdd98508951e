package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

const testDate = "2026-01-02"

var testNow = time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func secretary() *model.Session {
	return &model.Session{TelegramID: 1, Token: "tok", UserID: 10, Role: model.RoleSecretary, CabinetID: 7}
}

func doctor() *model.Session {
	return &model.Session{TelegramID: 2, Token: "tok", UserID: 20, Role: model.RoleDoctor, CabinetID: 7}
}

func admin() *model.Session {
	return &model.Session{TelegramID: 3, Token: "tok", UserID: 30, Role: model.RoleAdmin, CabinetID: 7}
}

type fakeAppointments struct {
	mu        sync.Mutex
	items     map[int64]model.Appointment
	nextID    int64
	listCalls int
	listErr   error
	createErr error
	created   []model.AppointmentRequest
	updated   []model.AppointmentRequest
	cancelled []int64
	confirmed []int64
	deleted   []int64
	tokens    []string
}

func newFakeAppointments(items ...model.Appointment) *fakeAppointments {
	f := &fakeAppointments{items: make(map[int64]model.Appointment), nextID: 100}
	for _, a := range items {
		f.items[a.ID] = a
	}
	return f
}

func (f *fakeAppointments) seen(ctx context.Context) {
	if token, ok := auth.TokenFromContext(ctx); ok {
		f.tokens = append(f.tokens, token)
	}
}

func (f *fakeAppointments) ListByCabinetAndDate(ctx context.Context, cabinetID int64, date string) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen(ctx)
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Appointment
	for _, a := range f.items {
		if a.CabinetID == cabinetID && a.Date == date {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAppointments) PatientHistory(ctx context.Context, cabinetID, patientID int64) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Appointment
	for _, a := range f.items {
		if a.CabinetID == cabinetID && a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("get appointment %d: %w", id, model.ErrNotFound)
	}
	return &a, nil
}

func (f *fakeAppointments) Create(ctx context.Context, req model.AppointmentRequest) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen(ctx)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	f.nextID++
	a := model.Appointment{
		ID:        f.nextID,
		Date:      req.Date,
		Time:      agenda.NormalizeTime(req.Time),
		Reason:    req.Reason,
		Status:    req.Status,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		CabinetID: req.CabinetID,
	}
	f.items[a.ID] = a
	return &a, nil
}

func (f *fakeAppointments) Update(ctx context.Context, id int64, req model.AppointmentRequest) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	f.updated = append(f.updated, req)
	a.Date = req.Date
	a.Time = agenda.NormalizeTime(req.Time)
	a.Status = req.Status
	a.DoctorID = req.DoctorID
	f.items[id] = a
	return &a, nil
}

func (f *fakeAppointments) setStatus(id int64, status model.AppointmentStatus) error {
	a, ok := f.items[id]
	if !ok {
		return model.ErrNotFound
	}
	a.Status = status
	f.items[id] = a
	return nil
}

func (f *fakeAppointments) Confirm(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, id)
	return f.setStatus(id, model.StatusConfirmed)
}

func (f *fakeAppointments) Cancel(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	return f.setStatus(id, model.StatusCancelled)
}

func (f *fakeAppointments) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	delete(f.items, id)
	return nil
}

type fakePatients struct {
	items map[int64]model.Patient
	err   error
}

func newFakePatients(items ...model.Patient) *fakePatients {
	f := &fakePatients{items: make(map[int64]model.Patient)}
	for _, p := range items {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakePatients) Get(ctx context.Context, id int64) (*model.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("get patient %d: %w", id, model.ErrNotFound)
	}
	return &p, nil
}

func (f *fakePatients) ByCabinet(ctx context.Context, cabinetID int64) ([]model.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Patient
	for _, p := range f.items {
		if p.CabinetID == cabinetID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatients) Search(ctx context.Context, lastName string) ([]model.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Patient
	for _, p := range f.items {
		if strings.Contains(strings.ToLower(p.LastName), strings.ToLower(lastName)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCache struct {
	items       map[string][]model.Appointment
	invalidated []string
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]model.Appointment)}
}

func cacheKey(cabinetID int64, date string) string {
	return fmt.Sprintf("%d:%s", cabinetID, date)
}

func (f *fakeCache) Get(ctx context.Context, cabinetID int64, date string) ([]model.Appointment, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	list, ok := f.items[cacheKey(cabinetID, date)]
	return list, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, cabinetID int64, date string, list []model.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.items[cacheKey(cabinetID, date)] = list
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, cabinetID int64, date string) error {
	key := cacheKey(cabinetID, date)
	f.invalidated = append(f.invalidated, key)
	delete(f.items, key)
	return f.err
}

type fakeSessions struct {
	items   map[int64]model.Session
	deleted []int64
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{items: make(map[int64]model.Session)}
}

func (f *fakeSessions) Upsert(ctx context.Context, s *model.Session) error {
	s.CreatedAt = testNow
	s.UpdatedAt = testNow
	f.items[s.TelegramID] = *s
	return nil
}

func (f *fakeSessions) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	s, ok := f.items[telegramID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Delete(ctx context.Context, telegramID int64) error {
	f.deleted = append(f.deleted, telegramID)
	delete(f.items, telegramID)
	return nil
}

func (f *fakeSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range f.items {
		if s.Expired(now) {
			delete(f.items, id)
			n++
		}
	}
	return n, nil
}

type fakeIDP struct {
	resp *model.LoginResponse
	err  error
}

func (f *fakeIDP) Login(ctx context.Context, login, password string) (*model.LoginResponse, error) {
	return f.resp, f.err
}

type fakeUsers struct {
	user *model.User
	err  error
}

func (f *fakeUsers) Get(ctx context.Context, id int64) (*model.User, error) {
	return f.user, f.err
}

type fakeCabinets struct {
	cabinet *model.Cabinet
	err     error
}

func (f *fakeCabinets) Get(ctx context.Context, id int64) (*model.Cabinet, error) {
	return f.cabinet, f.err
}

type fakeInvoices struct {
	items map[int64]model.Invoice
	err   error
}

func (f *fakeInvoices) ByAppointment(ctx context.Context, id int64) (*model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &inv, nil
}

type fakeConsultations struct {
	items []model.Consultation
	err   error
}

func (f *fakeConsultations) ByPatient(ctx context.Context, patientID int64) ([]model.Consultation, error) {
	return f.items, f.err
}

type fakePrescriptions struct {
	items map[int64]model.Prescription
	err   error
	calls []int64
}

func (f *fakePrescriptions) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("get prescription %d: %w", id, model.ErrNotFound)
	}
	return &p, nil
}

func appointment(id int64, at string, status model.AppointmentStatus, patientID int64) model.Appointment {
	return model.Appointment{
		ID:        id,
		Date:      testDate,
		Time:      at,
		Reason:    "Contrôle",
		Status:    status,
		PatientID: patientID,
		CabinetID: 7,
	}
}

func testGrid() *agenda.Grid {
	g, err := agenda.NewGrid(9, 17, 30)
	if err != nil {
		panic(err)
	}
	return g
}

func newTestAgenda(store *fakeAppointments, patients *fakePatients, cache *fakeCache) *AgendaService {
	s := NewAgendaService(testGrid(), store, patients, cache, nil, zap.NewNop())
	s.now = fixedNow
	return s
}

func newTestBooking(store *fakeAppointments, patients *fakePatients, cache *fakeCache) *BookingService {
	s := NewBookingService(newTestAgenda(store, patients, cache), store, patients, nil, zap.NewNop())
	s.now = fixedNow
	return s
}
