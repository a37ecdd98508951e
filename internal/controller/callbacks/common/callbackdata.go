package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
)

// Форматы callback data. Telegram ограничивает данные 64 байтами,
// поэтому время кодируется без двоеточия: 09:30 -> 0930.
const (
	Noop     = "noop"
	Today    = "today"
	Overview = "overview"

	AgendaDay   = "agenda:"   // agenda:2026-01-02
	BookSlot    = "book:"     // book:2026-01-02:0930
	BookPatient = "book_pat:" // book_pat:patient_id (выбор из поиска)

	ViewAppointment    = "appt:"         // appt:123
	ConfirmAppointment = "appt_confirm:" // appt_confirm:123
	CancelAppointment  = "appt_cancel:"  // appt_cancel:123
	StartConsultation  = "appt_start:"   // appt_start:123
	FinishConsultation = "appt_done:"    // appt_done:123
	DeleteAppointment  = "appt_delete:"  // appt_delete:123 (запрос подтверждения)
	ConfirmDelete      = "appt_delok:"   // appt_delok:123
	MoveAppointment    = "appt_move:"    // appt_move:123:2026-01-02
	MoveTo             = "move_to:"      // move_to:123:2026-01-02:0930

	ViewPatient = "patient:" // patient:45
)

// CompactTime 09:30 -> 0930
func CompactTime(t string) string {
	return strings.Replace(agenda.NormalizeTime(t), ":", "", 1)
}

// ExpandCompactTime 0930 -> 09:30
func ExpandCompactTime(s string) (string, error) {
	if len(s) != 4 {
		return "", fmt.Errorf("%w: time %q", ErrInvalidFormat, s)
	}
	t := s[:2] + ":" + s[2:]
	if _, err := agenda.ParseSlotTime(t); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return t, nil
}

func AgendaData(date string) string {
	return AgendaDay + date
}

func BookData(date, t string) string {
	return BookSlot + date + ":" + CompactTime(t)
}

func AppointmentData(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

func MoveDayData(id int64, date string) string {
	return fmt.Sprintf("%s%d:%s", MoveAppointment, id, date)
}

func MoveToData(id int64, date, t string) string {
	return fmt.Sprintf("%s%d:%s:%s", MoveTo, id, date, CompactTime(t))
}

// SlotRef дата и время слота из callback data
type SlotRef struct {
	AppointmentID int64 // 0 для book:
	Date          string
	Time          string
}

// ParseDate agenda:DATE
func ParseDate(data string) (string, error) {
	args, err := ParseArgs(data, 1)
	if err != nil {
		return "", err
	}
	if _, err := agenda.ParseDate(args[0]); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return args[0], nil
}

// ParseBook book:DATE:HHMM
func ParseBook(data string) (SlotRef, error) {
	args, err := ParseArgs(data, 2)
	if err != nil {
		return SlotRef{}, err
	}
	return parseSlot(0, args[0], args[1])
}

// ParseMoveDay appt_move:ID:DATE
func ParseMoveDay(data string) (int64, string, error) {
	args, err := ParseArgs(data, 2)
	if err != nil {
		return 0, "", err
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, "", err
	}
	if _, err := agenda.ParseDate(args[1]); err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return id, args[1], nil
}

// ParseMoveTo move_to:ID:DATE:HHMM
func ParseMoveTo(data string) (SlotRef, error) {
	args, err := ParseArgs(data, 3)
	if err != nil {
		return SlotRef{}, err
	}
	id, err := parseID(args[0])
	if err != nil {
		return SlotRef{}, err
	}
	return parseSlot(id, args[1], args[2])
}

func parseSlot(id int64, date, compact string) (SlotRef, error) {
	if _, err := agenda.ParseDate(date); err != nil {
		return SlotRef{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	t, err := ExpandCompactTime(compact)
	if err != nil {
		return SlotRef{}, err
	}
	return SlotRef{AppointmentID: id, Date: date, Time: t}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidFormat, s)
	}
	return id, nil
}
