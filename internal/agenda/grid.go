package agenda

import (
	"fmt"
)

// Grid фиксированная сетка слотов рабочего дня.
// StartHour включительно, EndHour не включительно.
type Grid struct {
	StartHour       int
	EndHour         int
	IntervalMinutes int
}

// NewGrid проверяет параметры сетки. Интервал обязан делить час нацело,
// иначе минуты не совпадают на границе часа.
func NewGrid(startHour, endHour, intervalMinutes int) (*Grid, error) {
	if intervalMinutes <= 0 || 60%intervalMinutes != 0 {
		return nil, fmt.Errorf("interval %d min must be positive and divide 60", intervalMinutes)
	}
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("invalid working hours %d-%d", startHour, endHour)
	}

	return &Grid{
		StartHour:       startHour,
		EndHour:         endHour,
		IntervalMinutes: intervalMinutes,
	}, nil
}

// Len количество слотов в дне
func (g *Grid) Len() int {
	return (g.EndHour - g.StartHour) * 60 / g.IntervalMinutes
}

// Times возвращает упорядоченный список слотов HH:MM
func (g *Grid) Times() []string {
	times := make([]string, 0, g.Len())
	for m := g.StartHour * 60; m < g.EndHour*60; m += g.IntervalMinutes {
		times = append(times, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return times
}

// Contains проверяет что время попадает ровно в слот сетки
func (g *Grid) Contains(t string) bool {
	parsed, err := ParseSlotTime(t)
	if err != nil {
		return false
	}
	m := parsed.Hour()*60 + parsed.Minute()
	if m < g.StartHour*60 || m >= g.EndHour*60 {
		return false
	}
	return (m-g.StartHour*60)%g.IntervalMinutes == 0
}
