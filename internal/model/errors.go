package model

import "errors"

// Ошибки домена. Слой бота переводит их в сообщения пользователю.
var (
	ErrSlotTaken         = errors.New("slot already taken")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden for role")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
)
