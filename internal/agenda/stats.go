package agenda

import (
	"sort"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// DayStats счётчики записей за день по статусам
type DayStats struct {
	Total      int
	Pending    int
	Confirmed  int
	Cancelled  int
	InProgress int
	Done       int
}

// CountByStatus считает записи дня. Записи с неизвестным статусом
// попадают только в Total.
func CountByStatus(appointments []model.Appointment) DayStats {
	stats := DayStats{Total: len(appointments)}
	for _, apt := range appointments {
		switch apt.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusConfirmed:
			stats.Confirmed++
		case model.StatusCancelled:
			stats.Cancelled++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusDone:
			stats.Done++
		}
	}
	return stats
}

// SortByTime сортирует записи по времени, при равенстве по ID
func SortByTime(appointments []model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		ti, tj := NormalizeTime(appointments[i].Time), NormalizeTime(appointments[j].Time)
		if ti != tj {
			return ti < tj
		}
		return appointments[i].ID < appointments[j].ID
	})
}

// FilterByDate оставляет только записи на дату date
func FilterByDate(appointments []model.Appointment, date string) []model.Appointment {
	out := make([]model.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Date == date {
			out = append(out, apt)
		}
	}
	return out
}
