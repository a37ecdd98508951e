package auth

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// Portal раздел интерфейса для роли
type Portal string

const (
	PortalAdmin     Portal = "admin"
	PortalDoctor    Portal = "doctor"
	PortalSecretary Portal = "secretary"
)

// PortalFor возвращает раздел, в который попадает пользователь после входа
func PortalFor(role model.Role) (Portal, bool) {
	switch role {
	case model.RoleAdmin:
		return PortalAdmin, true
	case model.RoleDoctor:
		return PortalDoctor, true
	case model.RoleSecretary:
		return PortalSecretary, true
	}
	return "", false
}

// Действия, для которых проверяется роль
const (
	ActionViewAgenda   = "view_agenda"
	ActionBook         = "book"
	ActionReschedule   = "reschedule"
	ActionConfirm      = "confirm"
	ActionCancel       = "cancel"
	ActionStartConsult = "start_consultation"
	ActionFinish       = "finish_consultation"
	ActionDelete       = "delete"
	ActionViewPatient  = "view_patient"
	ActionOverview     = "admin_overview"
)

// ADMIN проходит любую проверку
var permissions = map[string][]model.Role{
	ActionViewAgenda:   {model.RoleSecretary, model.RoleDoctor},
	ActionBook:         {model.RoleSecretary},
	ActionReschedule:   {model.RoleSecretary},
	ActionConfirm:      {model.RoleSecretary},
	ActionCancel:       {model.RoleSecretary},
	ActionStartConsult: {model.RoleDoctor},
	ActionFinish:       {model.RoleDoctor},
	ActionDelete:       {},
	ActionViewPatient:  {model.RoleSecretary, model.RoleDoctor},
	ActionOverview:     {},
}

// Allowed проверяет право роли на действие
func Allowed(role model.Role, action string) bool {
	if role == model.RoleAdmin {
		return true
	}
	for _, r := range permissions[action] {
		if r == role {
			return true
		}
	}
	return false
}

// RequireSession проверяет наличие живой сессии
func RequireSession(s *model.Session, now time.Time) error {
	if s == nil || s.Token == "" {
		return fmt.Errorf("%w: no session", model.ErrUnauthorized)
	}
	if s.Expired(now) {
		return fmt.Errorf("%w: session expired", model.ErrUnauthorized)
	}
	return nil
}

// Require проверяет сессию и право на действие
func Require(s *model.Session, action string, now time.Time) error {
	if err := RequireSession(s, now); err != nil {
		return err
	}
	if !Allowed(s.Role, action) {
		return fmt.Errorf("%w: %s cannot %s", model.ErrForbidden, s.Role, action)
	}
	return nil
}
