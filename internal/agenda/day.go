package agenda

import "github.com/Freeeeeet/cabinet_desk/internal/model"

// Day сетка одного дня для одного кабинета
type Day struct {
	CabinetID    int64
	Date         string
	Slots        []model.TimeSlot
	Anomalies    []Anomaly
	Appointments []model.Appointment // все записи дня, включая отменённые
}

// BuildDay строит сетку дня из уже загруженных записей
func BuildDay(g *Grid, cabinetID int64, date string, appointments []model.Appointment) *Day {
	slots, anomalies := Reconcile(g.Times(), appointments, date)
	return &Day{
		CabinetID:    cabinetID,
		Date:         date,
		Slots:        slots,
		Anomalies:    anomalies,
		Appointments: appointments,
	}
}

// FreeCount количество свободных слотов
func (d *Day) FreeCount() int {
	n := 0
	for _, s := range d.Slots {
		if s.IsFree {
			n++
		}
	}
	return n
}

// Slot возвращает слот по времени
func (d *Day) Slot(t string) (model.TimeSlot, bool) {
	t = NormalizeTime(t)
	for _, s := range d.Slots {
		if s.Time == t {
			return s, true
		}
	}
	return model.TimeSlot{}, false
}
