package agenda

import "github.com/Freeeeeet/cabinet_desk/internal/model"

// NoExclusion - при проверке ни одна запись не исключается
const NoExclusion int64 = 0

// IsAvailable проверяет что время t не занято активной записью.
// excludeID исключает саму редактируемую запись (перенос на то же время).
func IsAvailable(appointments []model.Appointment, t string, excludeID int64) bool {
	target := NormalizeTime(t)
	for i := range appointments {
		apt := &appointments[i]
		if !apt.IsActive() {
			continue
		}
		if excludeID != NoExclusion && apt.ID == excludeID {
			continue
		}
		if NormalizeTime(apt.Time) == target {
			return false
		}
	}
	return true
}
