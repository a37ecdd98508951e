package model

import "time"

// Role роль пользователя в кабинете
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDoctor    Role = "MEDECIN"
	RoleSecretary Role = "SECRETARY"
)

// Valid проверяет что роль из известного набора
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleSecretary:
		return true
	}
	return false
}

// User сотрудник кабинета (user-service)
type User struct {
	ID          int64  `json:"id"`
	CabinetID   int64  `json:"cabinetId"`
	CabinetName string `json:"nomCabinet"`
	Login       string `json:"login"`
	LastName    string `json:"nom"`
	FirstName   string `json:"prenom"`
	Phone       string `json:"numTel"`
	Role        Role   `json:"role"`
}

// Cabinet медицинский кабинет (cabinet-service)
type Cabinet struct {
	ID        int64  `json:"id"`
	Name      string `json:"nom"`
	Specialty string `json:"specialite"`
	Address   string `json:"adresse"`
	Phone     string `json:"telephone"`
	Email     string `json:"email"`
	Active    bool   `json:"actif"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Session привязка Telegram-пользователя к токену auth-service
type Session struct {
	TelegramID int64      `json:"telegram_id"`
	Token      string     `json:"-"`
	UserID     int64      `json:"user_id"`
	Role       Role       `json:"role"`
	CabinetID  int64      `json:"cabinet_id"`
	ExpiresAt  *time.Time `json:"expires_at"` // nil - токен без exp
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Expired проверяет истёк ли токен сессии
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// LoginResponse ответ auth-service на /login
type LoginResponse struct {
	Token        string `json:"token"`
	TokenExpired bool   `json:"tokenExpired"`
	Error        string `json:"error"`
	UserRole     string `json:"userRole"`
}
