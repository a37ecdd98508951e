package formatting

import (
	"testing"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "⏳ En attente", StatusLabel(model.StatusPending))
	assert.Equal(t, "✅ Confirmé", StatusLabel(model.StatusConfirmed))
	assert.Equal(t, "❓ REPORTE", StatusLabel(model.AppointmentStatus("REPORTE")))
}

func TestInvoiceLabels(t *testing.T) {
	assert.Equal(t, "Payée", GetInvoiceStatusDisplay(model.InvoicePaid).Text)
	assert.Equal(t, "En attente", GetInvoiceStatusDisplay(model.InvoicePending).Text)
	assert.Equal(t, "Annulée", GetInvoiceStatusDisplay(model.InvoiceCancelled).Text)
	assert.Equal(t, "REMBOURSEE", GetInvoiceStatusDisplay("REMBOURSEE").Text)

	cheque := model.PaymentCheque
	other := model.PaymentMode("PAYPAL")
	assert.Equal(t, "Chèque", PaymentModeLabel(&cheque))
	assert.Equal(t, "PAYPAL", PaymentModeLabel(&other))
	assert.Equal(t, "-", PaymentModeLabel(nil))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "02/01/2026", FormatDate("2026-01-02"))
	assert.Equal(t, "vendredi 2 janvier 2026", FormatDateLong("2026-01-02"))
	assert.Equal(t, "demain", FormatDate("demain"))
	assert.Equal(t, "09:30", FormatTime("09:30:00"))
	assert.Equal(t, "350.00 DH", FormatAmount(350))
}
