package agenda

import "github.com/Freeeeeet/cabinet_desk/internal/model"

// StatusTag визуальная категория статуса
type StatusTag string

const (
	TagSuccess StatusTag = "success"
	TagWarning StatusTag = "warning"
	TagDanger  StatusTag = "danger"
	TagInfo    StatusTag = "info"
	TagNeutral StatusTag = "neutral"
)

// StatusDisplay представляет отображение статуса записи
type StatusDisplay struct {
	Emoji string
	Label string
	Tag   StatusTag
}

var statusDisplays = map[model.AppointmentStatus]StatusDisplay{
	model.StatusPending:    {"⏳", "En attente", TagWarning},
	model.StatusConfirmed:  {"✅", "Confirmé", TagSuccess},
	model.StatusCancelled:  {"❌", "Annulé", TagDanger},
	model.StatusInProgress: {"🩺", "En cours", TagInfo},
	model.StatusDone:       {"✔️", "Terminé", TagNeutral},
}

// DescribeStatus возвращает подпись и категорию для статуса.
// Принимает имя статуса или значение из API; неизвестная строка
// возвращается как подпись без изменений с нейтральной категорией.
func DescribeStatus(status string) StatusDisplay {
	st, ok := model.ParseStatus(status)
	if ok {
		return statusDisplays[st]
	}
	return StatusDisplay{Emoji: "❓", Label: status, Tag: TagNeutral}
}

// Describe то же, что DescribeStatus, для типизированного статуса
func Describe(status model.AppointmentStatus) StatusDisplay {
	return DescribeStatus(string(status))
}
