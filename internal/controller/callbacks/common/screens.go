package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/state"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/Freeeeeet/cabinet_desk/internal/service"
	"github.com/go-telegram/bot/models"
)

const (
	freeSlotsPerRow   = 4
	historyLines      = 10
	historyButtons    = 5
	dashboardPerRow   = 2
	buttonNameMaxRune = 18
	overviewCabinets  = 15
)

// BuildAgendaScreen сетка дня: занятые слоты ведут в карточку записи,
// свободные в запись пациента (если роль может записывать)
func BuildAgendaScreen(day *agenda.Day, names map[int64]string, role model.Role) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Agenda du %s</b>\n", formatting.FormatDateLong(day.Date))
	fmt.Fprintf(&sb, "🟢 Créneaux libres : %d/%d\n\n", day.FreeCount(), len(day.Slots))

	kb := keyboard.NewBuilder()
	canBook := auth.Allowed(role, auth.ActionBook)
	var free []models.InlineKeyboardButton

	for _, slot := range day.Slots {
		if slot.IsFree || slot.Appointment == nil {
			fmt.Fprintf(&sb, "▫️ %s  libre\n", slot.Time)
			if canBook {
				free = append(free, keyboard.Button("➕ "+slot.Time, BookData(day.Date, slot.Time)))
			}
			continue
		}

		a := slot.Appointment
		name := service.PatientName(names, a.PatientID)
		status := agenda.Describe(a.Status)
		fmt.Fprintf(&sb, "%s %s  <b>%s</b>", status.Emoji, slot.Time, html.EscapeString(name))
		if a.Reason != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(a.Reason))
		}
		sb.WriteString("\n")

		kb.Row(keyboard.Button(
			fmt.Sprintf("%s %s %s", slot.Time, status.Emoji, shorten(name)),
			AppointmentData(ViewAppointment, a.ID),
		))
	}

	if n := len(day.Anomalies); n > 0 {
		fmt.Fprintf(&sb, "\n⚠️ %d créneau(x) avec plusieurs rendez-vous actifs, seul le premier est affiché.\n", n)
	}

	kb.Grid(freeSlotsPerRow, free...)
	kb.Row(dayNavigation(day.Date, AgendaData)...)
	kb.Row(keyboard.TodayButton())

	return sb.String(), kb.Build()
}

// AppointmentActions кнопки действий, доступных роли из текущего статуса
func AppointmentActions(a *model.Appointment, role model.Role) []models.InlineKeyboardButton {
	var buttons []models.InlineKeyboardButton

	if auth.Allowed(role, auth.ActionConfirm) && agenda.CanTransition(a.Status, model.StatusConfirmed) {
		buttons = append(buttons, keyboard.Button("✅ Confirmer", AppointmentData(ConfirmAppointment, a.ID)))
	}
	if auth.Allowed(role, auth.ActionStartConsult) && agenda.CanTransition(a.Status, model.StatusInProgress) {
		buttons = append(buttons, keyboard.Button("🩺 Démarrer la consultation", AppointmentData(StartConsultation, a.ID)))
	}
	if auth.Allowed(role, auth.ActionFinish) && agenda.CanTransition(a.Status, model.StatusDone) {
		buttons = append(buttons, keyboard.Button("✔️ Terminer la consultation", AppointmentData(FinishConsultation, a.ID)))
	}
	if auth.Allowed(role, auth.ActionReschedule) && (a.Status == model.StatusPending || a.Status == model.StatusConfirmed) {
		buttons = append(buttons, keyboard.Button("🔁 Déplacer", MoveDayData(a.ID, a.Date)))
	}
	if auth.Allowed(role, auth.ActionCancel) && agenda.CanTransition(a.Status, model.StatusCancelled) {
		buttons = append(buttons, keyboard.Button("❌ Annuler le rendez-vous", AppointmentData(CancelAppointment, a.ID)))
	}
	if auth.Allowed(role, auth.ActionDelete) {
		buttons = append(buttons, keyboard.Button("🗑 Supprimer", AppointmentData(DeleteAppointment, a.ID)))
	}

	return buttons
}

// BuildAppointmentScreen карточка записи
func BuildAppointmentScreen(card *service.AppointmentCard, role model.Role) (string, *models.InlineKeyboardMarkup) {
	a := card.Appointment

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>Rendez-vous #%d</b>\n\n", a.ID)
	fmt.Fprintf(&sb, "👤 Patient : %s\n", html.EscapeString(card.PatientName))
	fmt.Fprintf(&sb, "📅 Date : %s\n", formatting.FormatDateLong(a.Date))
	fmt.Fprintf(&sb, "🕐 Heure : %s\n", formatting.FormatTime(a.Time))
	fmt.Fprintf(&sb, "📝 Motif : %s\n", html.EscapeString(a.Reason))
	fmt.Fprintf(&sb, "📊 Statut : %s\n", formatting.StatusLabel(a.Status))
	if a.DoctorID != nil {
		fmt.Fprintf(&sb, "🩺 Médecin : #%d\n", *a.DoctorID)
	}
	if a.Notes != "" {
		fmt.Fprintf(&sb, "🗒 Notes : %s\n", html.EscapeString(a.Notes))
	}
	if inv := card.Invoice; inv != nil {
		st := formatting.GetInvoiceStatusDisplay(inv.Status)
		fmt.Fprintf(&sb, "\n💳 Facture %s : %s %s · %s · %s\n",
			html.EscapeString(inv.Number), st.Emoji, st.Text,
			formatting.FormatAmount(inv.Amount), formatting.PaymentModeLabel(inv.PaymentMode))
	}

	kb := keyboard.NewBuilder()
	for _, b := range AppointmentActions(a, role) {
		kb.Row(b)
	}
	if auth.Allowed(role, auth.ActionViewPatient) {
		kb.Row(keyboard.Button("👤 Fiche patient", AppointmentData(ViewPatient, a.PatientID)))
	}
	kb.AddBackButton(AgendaData(a.Date))

	return sb.String(), kb.Build()
}

// BuildDeleteConfirmScreen запрос подтверждения удаления
func BuildDeleteConfirmScreen(a *model.Appointment) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"🗑 <b>Supprimer le rendez-vous #%d ?</b>\n\n"+
			"📅 %s à %s\n\n"+
			"La suppression est définitive. Pour libérer le créneau sans perdre l'historique, utilisez plutôt l'annulation.",
		a.ID, formatting.FormatDate(a.Date), formatting.FormatTime(a.Time),
	)
	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(
			AppointmentData(ConfirmDelete, a.ID),
			AppointmentData(ViewAppointment, a.ID),
		))
	return text, kb.Build()
}

// MoveTargets свободные времена дня для переноса записи a.
// Сама запись своё время не блокирует, но текущий слот не предлагается.
func MoveTargets(a *model.Appointment, day *agenda.Day) []string {
	var out []string
	for _, slot := range day.Slots {
		t := slot.Time
		if day.Date == a.Date && t == agenda.NormalizeTime(a.Time) {
			continue
		}
		if agenda.IsAvailable(day.Appointments, t, a.ID) {
			out = append(out, t)
		}
	}
	return out
}

// BuildMoveScreen выбор нового слота для записи
func BuildMoveScreen(a *model.Appointment, day *agenda.Day) (string, *models.InlineKeyboardMarkup) {
	targets := MoveTargets(a, day)

	text := fmt.Sprintf(
		"🔁 <b>Déplacer le rendez-vous #%d</b>\n\n"+
			"Actuel : %s à %s\n"+
			"Créneaux libres le %s : %d\n\n"+
			"Choisissez le nouvel horaire :",
		a.ID, formatting.FormatDate(a.Date), formatting.FormatTime(a.Time),
		formatting.FormatDateLong(day.Date), len(targets),
	)

	buttons := make([]models.InlineKeyboardButton, 0, len(targets))
	for _, t := range targets {
		buttons = append(buttons, keyboard.Button(t, MoveToData(a.ID, day.Date, t)))
	}

	kb := keyboard.NewBuilder().Grid(freeSlotsPerRow, buttons...)
	kb.Row(dayNavigation(day.Date, func(date string) string { return MoveDayData(a.ID, date) })...)
	kb.AddBackButton(AppointmentData(ViewAppointment, a.ID))

	return text, kb.Build()
}

// BuildDashboardScreen сводка дня
func BuildDashboardScreen(d *service.Dashboard) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Tableau de bord du %s</b>\n\n", formatting.FormatDateLong(d.Date))
	fmt.Fprintf(&sb, "Total : <b>%d</b>\n", d.Stats.Total)
	fmt.Fprintf(&sb, "✅ Confirmés : %d\n", d.Stats.Confirmed)
	fmt.Fprintf(&sb, "⏳ En attente : %d\n", d.Stats.Pending)
	fmt.Fprintf(&sb, "🩺 En cours : %d\n", d.Stats.InProgress)
	fmt.Fprintf(&sb, "✔️ Terminés : %d\n", d.Stats.Done)
	fmt.Fprintf(&sb, "❌ Annulés : %d\n", d.Stats.Cancelled)

	if d.Degraded {
		sb.WriteString("\n⚠️ Certaines données sont momentanément indisponibles.\n")
	}

	kb := keyboard.NewBuilder()
	var buttons []models.InlineKeyboardButton

	if len(d.Entries) == 0 {
		sb.WriteString("\nAucun rendez-vous aujourd'hui.\n")
	} else {
		sb.WriteString("\n")
		for _, e := range d.Entries {
			a := e.Appointment
			t := formatting.FormatTime(a.Time)
			fmt.Fprintf(&sb, "%s %s  %s", agenda.Describe(a.Status).Emoji, t, html.EscapeString(e.PatientName))
			if a.Reason != "" {
				fmt.Fprintf(&sb, " · %s", html.EscapeString(a.Reason))
			}
			sb.WriteString("\n")
			if a.IsActive() {
				buttons = append(buttons, keyboard.Button(t+" "+shorten(e.PatientName), AppointmentData(ViewAppointment, a.ID)))
			}
		}
	}

	kb.Grid(dashboardPerRow, buttons...)
	kb.Row(keyboard.Button("📅 Agenda du jour", AgendaData(d.Date)))

	return sb.String(), kb.Build()
}

// BuildOverviewScreen сводка администратора: счётчики и строка на кабинет
func BuildOverviewScreen(o *service.Overview) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("👑 <b>Vue d'ensemble</b>\n\n")
	fmt.Fprintf(&sb, "🏥 Cabinets : <b>%d</b> (%d actifs, %d nouveaux ce mois)\n", o.Cabinets, o.ActiveCabinets, o.NewThisMonth)
	fmt.Fprintf(&sb, "👥 Utilisateurs : <b>%d</b> (%d médecins, %d secrétaires)\n", o.Users, o.Doctors, o.Secretaries)
	fmt.Fprintf(&sb, "🧑‍🤝‍🧑 Patients : <b>%d</b>\n", o.Patients)

	if o.Degraded {
		sb.WriteString("\n⚠️ Certaines données sont momentanément indisponibles.\n")
	}

	if len(o.PerCabinet) > 0 {
		sb.WriteString("\n<b>Par cabinet</b>\n")
	}
	for i, c := range o.PerCabinet {
		if i == overviewCabinets {
			fmt.Fprintf(&sb, "… et %d de plus\n", len(o.PerCabinet)-overviewCabinets)
			break
		}
		status := "🟢"
		if !c.Cabinet.Active {
			status = "⚪️"
		}
		fmt.Fprintf(&sb, "%s %s · %d utilisateurs · %d patients\n", status, html.EscapeString(c.Cabinet.Name), c.Users, c.Patients)
	}

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Button("🔄 Actualiser", Overview))
	return sb.String(), kb.Build()
}

// BuildPatientScreen карточка пациента с историей записей
func BuildPatientScreen(card *service.PatientCard) (string, *models.InlineKeyboardMarkup) {
	p := card.Patient

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 <b>%s</b>\n\n", html.EscapeString(p.FullName()))
	writeField(&sb, "🪪 CIN", p.CIN)
	writeField(&sb, "🎂 Date de naissance", formatting.FormatDate(p.BirthDate))
	writeField(&sb, "📞 Téléphone", p.Phone)
	writeField(&sb, "✉️ Email", p.Email)
	writeField(&sb, "🏥 Mutuelle", p.Insurance)
	fmt.Fprintf(&sb, "🩺 Consultations : %d\n", len(card.Consultations))
	writePrescriptions(&sb, card.Prescriptions)

	kb := keyboard.NewBuilder()

	fmt.Fprintf(&sb, "\n📚 <b>Historique (%d)</b>\n", len(card.History))
	for i, a := range card.History {
		if i == historyLines {
			fmt.Fprintf(&sb, "… et %d de plus\n", len(card.History)-historyLines)
			break
		}
		fmt.Fprintf(&sb, "%s %s %s", agenda.Describe(a.Status).Emoji, formatting.FormatDate(a.Date), formatting.FormatTime(a.Time))
		if a.Reason != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(a.Reason))
		}
		sb.WriteString("\n")
		if i < historyButtons {
			kb.Row(keyboard.Button(
				fmt.Sprintf("%s %s", formatting.FormatDate(a.Date), formatting.FormatTime(a.Time)),
				AppointmentData(ViewAppointment, a.ID),
			))
		}
	}

	return sb.String(), kb.Build()
}

var prescriptionLabels = map[model.PrescriptionType]string{
	model.PrescriptionDrugs: "Médicaments",
	model.PrescriptionExams: "Examens",
}

func writePrescriptions(sb *strings.Builder, list []model.Prescription) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n💊 <b>Ordonnances (%d)</b>\n", len(list))
	for _, p := range list {
		label, ok := prescriptionLabels[p.Type]
		if !ok {
			label = "Ordonnance"
		}
		fmt.Fprintf(sb, "• %s", label)
		if len(p.CreatedAt) >= len(agenda.DateLayout) {
			fmt.Fprintf(sb, " du %s", formatting.FormatDate(p.CreatedAt[:len(agenda.DateLayout)]))
		}
		sb.WriteString("\n")

		if !p.HasContent() {
			sb.WriteString("   <i>contenu indisponible</i>\n")
			continue
		}
		for _, m := range p.Medications {
			line := m.Name
			if m.Dosage != "" {
				line += " " + m.Dosage
			}
			if m.Duration != "" {
				line += " · " + m.Duration
			}
			fmt.Fprintf(sb, "   - %s\n", html.EscapeString(line))
		}
		if p.Text != nil && strings.TrimSpace(*p.Text) != "" {
			fmt.Fprintf(sb, "   %s\n", html.EscapeString(strings.TrimSpace(*p.Text)))
		}
	}
}

// BuildPatientChoice клавиатура выбора пациента из результатов поиска
func BuildPatientChoice(patients []model.Patient) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for _, p := range patients {
		label := p.FullName()
		if p.CIN != "" {
			label += " (" + p.CIN + ")"
		}
		kb.Row(keyboard.Button(label, AppointmentData(BookPatient, p.ID)))
	}
	return kb.Build()
}

// BuildWhoamiText профиль текущего пользователя
func BuildWhoamiText(p *service.Profile) string {
	s := p.Session

	var sb strings.Builder
	sb.WriteString("🪪 <b>Mon profil</b>\n\n")
	if p.User != nil {
		name := strings.TrimSpace(p.User.FirstName + " " + p.User.LastName)
		writeField(&sb, "👤 Nom", name)
		writeField(&sb, "🔑 Identifiant", p.User.Login)
	}
	fmt.Fprintf(&sb, "🆔 Utilisateur : #%d\n", s.UserID)
	fmt.Fprintf(&sb, "🎭 Rôle : %s\n", formatting.RoleLabel(s.Role))

	switch {
	case p.Cabinet != nil:
		fmt.Fprintf(&sb, "🏥 Cabinet : %s (#%d)\n", html.EscapeString(p.Cabinet.Name), p.Cabinet.ID)
	case s.CabinetID != 0:
		fmt.Fprintf(&sb, "🏥 Cabinet : #%d\n", s.CabinetID)
	default:
		sb.WriteString("🏥 Cabinet : aucun\n")
	}

	if s.ExpiresAt != nil {
		fmt.Fprintf(&sb, "⏰ Session valable jusqu'au %s\n", s.ExpiresAt.Local().Format("02/01/2006 15:04"))
	}

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value == "" {
		return
	}
	fmt.Fprintf(sb, "%s : %s\n", label, html.EscapeString(value))
}

func dayNavigation(date string, data func(string) string) []models.InlineKeyboardButton {
	prev, errPrev := agenda.ShiftDate(date, -1)
	next, errNext := agenda.ShiftDate(date, 1)
	if errPrev != nil || errNext != nil {
		return nil
	}
	return keyboard.DayNavigation(data(prev), formatting.FormatDate(date), data(next))
}

func shorten(s string) string {
	r := []rune(s)
	if len(r) <= buttonNameMaxRune {
		return s
	}
	return string(r[:buttonNameMaxRune-1]) + "…"
}

// SessionExpiry подпись срока действия для сообщения после входа
func SessionExpiry(s *model.Session, now time.Time) string {
	if s.ExpiresAt == nil {
		return ""
	}
	left := s.ExpiresAt.Sub(now).Round(time.Minute)
	if left <= 0 {
		return ""
	}
	return fmt.Sprintf("⏰ Session valable encore %s\n", left)
}

// ReasonPrompt запрос мотива после выбора пациента
func ReasonPrompt(d state.Dialog, patient *model.Patient) string {
	return fmt.Sprintf(
		"➕ <b>Nouveau rendez-vous</b>\n\n"+
			"📅 %s à %s\n"+
			"👤 Patient : %s\n\n"+
			"Envoyez le motif de la consultation.",
		formatting.FormatDateLong(d.Date), d.Time, html.EscapeString(patient.FullName()),
	)
}
