package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// Ошибки уровня бота
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrSlotTaken):
		return "⛔ Ce créneau est déjà pris. Choisissez un autre horaire."
	case errors.Is(err, model.ErrUnauthorized):
		return "🔒 Session absente ou expirée. Connectez-vous avec /login"
	case errors.Is(err, model.ErrForbidden):
		return "🚫 Action non autorisée pour votre rôle"
	case errors.Is(err, model.ErrInvalidTransition):
		return "⚠️ Action impossible pour le statut actuel du rendez-vous"
	case errors.Is(err, model.ErrNotFound):
		return "🔎 Élément introuvable"
	case errors.Is(err, model.ErrStoreUnavailable):
		return "⏳ Service momentanément indisponible. Réessayez dans un instant."
	case errors.Is(err, model.ErrInvalidInput):
		return "❌ Données invalides"
	case errors.Is(err, ErrNoMessage):
		return "❌ Message introuvable"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Format de données invalide"
	default:
		return "❌ Une erreur est survenue"
	}
}

// IsMessageNotModifiedError Telegram отвечает так на редактирование тем же текстом
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
