package callbacktypes

import (
	"github.com/Freeeeeet/cabinet_desk/internal/controller/state"
	"github.com/Freeeeeet/cabinet_desk/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Sessions     *service.SessionService
	Agenda       *service.AgendaService
	Booking      *service.BookingService
	Dashboard    *service.DashboardService
	Lookup       *service.LookupService
	Admin        *service.AdminService
	StateManager *state.Manager
	Logger       *zap.Logger
}
