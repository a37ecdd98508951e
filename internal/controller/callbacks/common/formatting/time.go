package formatting

import (
	"fmt"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
)

var weekdays = []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var months = []string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate YYYY-MM-DD -> DD/MM/YYYY; нераспознанная дата возвращается как есть
func FormatDate(date string) string {
	t, err := agenda.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// FormatDateLong "vendredi 2 janvier 2026"
func FormatDateLong(date string) string {
	t, err := agenda.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// FormatTime HH:MM:SS -> HH:MM
func FormatTime(t string) string {
	return agenda.NormalizeTime(t)
}

// FormatAmount сумма в дирхамах
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f DH", amount)
}
