package agenda

import (
	"sort"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// Anomaly несколько активных записей претендуют на один слот.
// Для отображения выбирается запись с меньшим ID.
type Anomaly struct {
	Time    string
	Kept    *model.Appointment
	Dropped []*model.Appointment
}

// Reconcile раскладывает записи дня по сетке. Отменённые записи слот не занимают.
// Если date не пустая, записи на другие даты отбрасываются.
// Результат всегда той же длины и в том же порядке, что и times.
func Reconcile(times []string, appointments []model.Appointment, date string) ([]model.TimeSlot, []Anomaly) {
	occupants := make(map[string][]*model.Appointment)
	for i := range appointments {
		apt := &appointments[i]
		if !apt.IsActive() {
			continue
		}
		if date != "" && apt.Date != "" && apt.Date != date {
			continue
		}
		key := NormalizeTime(apt.Time)
		occupants[key] = append(occupants[key], apt)
	}

	slots := make([]model.TimeSlot, 0, len(times))
	var anomalies []Anomaly

	for _, t := range times {
		candidates := occupants[t]
		if len(candidates) == 0 {
			slots = append(slots, model.TimeSlot{Time: t, IsFree: true})
			continue
		}

		if len(candidates) > 1 {
			sorted := make([]*model.Appointment, len(candidates))
			copy(sorted, candidates)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
			candidates = sorted
			anomalies = append(anomalies, Anomaly{
				Time:    t,
				Kept:    sorted[0],
				Dropped: sorted[1:],
			})
		}

		slots = append(slots, model.TimeSlot{
			Time:        t,
			IsFree:      false,
			Appointment: candidates[0],
		})
	}

	return slots, anomalies
}

// FreeTimes возвращает только свободные слоты
func FreeTimes(slots []model.TimeSlot) []string {
	var free []string
	for _, s := range slots {
		if s.IsFree {
			free = append(free, s.Time)
		}
	}
	return free
}
