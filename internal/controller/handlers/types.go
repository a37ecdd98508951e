package handlers

import (
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
)

// Handlers содержит все зависимости для обработки команд.
// Зависимости общие с callback handlers.
type Handlers struct {
	*callbacktypes.Handler
	now func() time.Time
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		Handler: deps,
		now:     time.Now,
	}
}
