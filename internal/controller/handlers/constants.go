package handlers

// Ограничения ввода в диалогах
const (
	// Мотив консультации
	ReasonMinLength = 2
	ReasonMaxLength = 255

	// Поиск пациента по фамилии
	PatientQueryMinLength = 2

	// Логин сотрудника
	LoginMaxLength = 64
)
