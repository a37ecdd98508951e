package formatting

import (
	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// StatusLabel "⏳ En attente"
func StatusLabel(status model.AppointmentStatus) string {
	d := agenda.Describe(status)
	return d.Emoji + " " + d.Label
}

// InvoiceStatusDisplay представляет отображение статуса счёта
type InvoiceStatusDisplay struct {
	Emoji string
	Text  string
}

// GetInvoiceStatusDisplay возвращает emoji и текст для статуса счёта
func GetInvoiceStatusDisplay(status model.InvoiceStatus) InvoiceStatusDisplay {
	displays := map[model.InvoiceStatus]InvoiceStatusDisplay{
		model.InvoicePaid:      {"💚", "Payée"},
		model.InvoicePending:   {"🟡", "En attente"},
		model.InvoiceCancelled: {"⚫️", "Annulée"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return InvoiceStatusDisplay{"❓", string(status)}
}

// PaymentModeLabel подпись способа оплаты; "-" если не указан
func PaymentModeLabel(mode *model.PaymentMode) string {
	if mode == nil || *mode == "" {
		return "-"
	}
	switch *mode {
	case model.PaymentCash:
		return "Espèces"
	case model.PaymentCard:
		return "Carte bancaire"
	case model.PaymentCheque:
		return "Chèque"
	case model.PaymentTransfer:
		return "Virement"
	}
	return string(*mode)
}

// RoleLabel подпись роли сотрудника
func RoleLabel(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "👑 Administrateur"
	case model.RoleDoctor:
		return "🩺 Médecin"
	case model.RoleSecretary:
		return "🗂 Secrétaire"
	}
	return string(role)
}
