package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalog[T any] struct {
	items  []T
	err    error
	tokens []string
}

func (f *fakeCatalog[T]) List(ctx context.Context) ([]T, error) {
	if token, ok := auth.TokenFromContext(ctx); ok {
		f.tokens = append(f.tokens, token)
	}
	return f.items, f.err
}

func newTestAdmin(cabinets *fakeCatalog[model.Cabinet], users *fakeCatalog[model.User], patients *fakeCatalog[model.Patient]) *AdminService {
	s := NewAdminService(cabinets, users, patients, zap.NewNop())
	s.now = fixedNow
	return s
}

func TestOverview(t *testing.T) {
	cabinets := &fakeCatalog[model.Cabinet]{items: []model.Cabinet{
		{ID: 9, Name: "Cabinet Zitoune", Active: false, CreatedAt: "2025-06-01"},
		{ID: 7, Name: "Cabinet Atlas", Active: true, CreatedAt: "2026-01-01T09:00:00"},
		{ID: 8, Name: "cabinet Badr", Active: true, CreatedAt: "2025-12-31T23:00:00"},
	}}
	users := &fakeCatalog[model.User]{items: []model.User{
		{ID: 1, CabinetID: 7, Role: model.RoleDoctor},
		{ID: 2, CabinetID: 7, Role: model.RoleSecretary},
		{ID: 3, CabinetID: 8, Role: model.RoleDoctor},
		{ID: 4, Role: model.RoleAdmin},
	}}
	patients := &fakeCatalog[model.Patient]{items: []model.Patient{
		{ID: 1, CabinetID: 7}, {ID: 2, CabinetID: 7}, {ID: 3, CabinetID: 9},
	}}

	o, err := newTestAdmin(cabinets, users, patients).Overview(context.Background(), admin())
	require.NoError(t, err)

	assert.False(t, o.Degraded)
	assert.Equal(t, 3, o.Cabinets)
	assert.Equal(t, 2, o.ActiveCabinets)
	assert.Equal(t, 1, o.NewThisMonth)
	assert.Equal(t, 4, o.Users)
	assert.Equal(t, 2, o.Doctors)
	assert.Equal(t, 1, o.Secretaries)
	assert.Equal(t, 3, o.Patients)

	require.Len(t, o.PerCabinet, 3)
	assert.Equal(t, int64(7), o.PerCabinet[0].Cabinet.ID)
	assert.Equal(t, 2, o.PerCabinet[0].Users)
	assert.Equal(t, 2, o.PerCabinet[0].Patients)
	assert.Equal(t, int64(8), o.PerCabinet[1].Cabinet.ID)
	assert.Equal(t, int64(9), o.PerCabinet[2].Cabinet.ID)
	assert.Equal(t, 0, o.PerCabinet[2].Users)
	assert.Equal(t, 1, o.PerCabinet[2].Patients)

	assert.Equal(t, []string{"tok"}, cabinets.tokens)
}

func TestOverviewDegrades(t *testing.T) {
	cabinets := &fakeCatalog[model.Cabinet]{items: []model.Cabinet{{ID: 7, Name: "Cabinet Atlas", Active: true}}}
	users := &fakeCatalog[model.User]{err: model.ErrStoreUnavailable}
	patients := &fakeCatalog[model.Patient]{items: []model.Patient{{ID: 1, CabinetID: 7}}}

	o, err := newTestAdmin(cabinets, users, patients).Overview(context.Background(), admin())
	require.NoError(t, err)
	assert.True(t, o.Degraded)
	assert.Equal(t, 1, o.Cabinets)
	assert.Equal(t, 0, o.Users)
	require.Len(t, o.PerCabinet, 1)
	assert.Equal(t, 1, o.PerCabinet[0].Patients)
}

func TestOverviewAdminOnly(t *testing.T) {
	svc := newTestAdmin(&fakeCatalog[model.Cabinet]{}, &fakeCatalog[model.User]{}, &fakeCatalog[model.Patient]{})

	_, err := svc.Overview(context.Background(), secretary())
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = svc.Overview(context.Background(), doctor())
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = svc.Overview(context.Background(), nil)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestCreatedIn(t *testing.T) {
	assert.True(t, createdIn("2026-01-15", "2026-01"))
	assert.True(t, createdIn("2026-01-15T10:00:00Z", "2026-01"))
	assert.False(t, createdIn("2025-01-15", "2026-01"))
	assert.False(t, createdIn("", "2026-01"))
	assert.False(t, createdIn("janvier 2026", "2026-01"))
}
