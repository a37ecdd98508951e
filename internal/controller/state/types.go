package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход
	StateLoginLogin    UserState = "login_login"
	StateLoginPassword UserState = "login_password"

	// Новая запись на приём
	StateBookPatient UserState = "book_patient"
	StateBookReason  UserState = "book_reason"
)

// Dialog данные текущего диалога пользователя
type Dialog struct {
	State UserState

	Login string // StateLoginPassword

	Date      string // YYYY-MM-DD выбранного слота
	Time      string // HH:MM выбранного слота
	PatientID int64  // выбран на шаге StateBookPatient
}

// InProgress есть ли незавершённый диалог
func (d Dialog) InProgress() bool {
	return d.State != StateNone
}
