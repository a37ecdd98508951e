package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// BackButton создаёт кнопку "Retour"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Retour", callbackData)
}

// TodayButton создаёт кнопку "Aujourd'hui"
func TodayButton() models.InlineKeyboardButton {
	return Button("📋 Aujourd'hui", "today")
}

// CancelButton создаёт кнопку "Annuler"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Annuler", callbackData)
}

// ConfirmButton создаёт кнопку "Confirmer"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirmer", callbackData)
}

// ConfirmCancelButtons ряд с кнопками Confirmer/Annuler
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// DayNavigation ряд ◀️ дата ▶️ для перелистывания дней
func DayNavigation(prevData, label, nextData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", prevData),
		Button(label, "noop"),
		Button("▶️", nextData),
	}
}

// AddBackButton добавляет кнопку "Retour" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// Grid раскладывает кнопки по perRow в ряд
func (b *Builder) Grid(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	if perRow <= 0 {
		perRow = 1
	}
	for start := 0; start < len(buttons); start += perRow {
		end := start + perRow
		if end > len(buttons) {
			end = len(buttons)
		}
		b.Row(buttons[start:end]...)
	}
	return b
}
