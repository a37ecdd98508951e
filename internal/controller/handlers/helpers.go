package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
)

// commandArg текст после команды: "/agenda 2026-01-02" -> "2026-01-02"
func commandArg(text string) string {
	text = strings.TrimSpace(text)
	i := strings.IndexAny(text, " \t\n")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i+1:])
}

// parseAgendaDate принимает YYYY-MM-DD, DD/MM/YYYY, "demain", "hier"; пусто - сегодня
func parseAgendaDate(arg, today string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "aujourd'hui":
		return today, nil
	case "demain":
		return agenda.ShiftDate(today, 1)
	case "hier":
		return agenda.ShiftDate(today, -1)
	}

	if d, err := agenda.ParseDate(arg); err == nil {
		return d.Format(agenda.DateLayout), nil
	}
	if d, err := time.Parse("02/01/2006", arg); err == nil {
		return d.Format(agenda.DateLayout), nil
	}
	return "", fmt.Errorf("%w: date %q", model.ErrInvalidInput, arg)
}

// commandsFor список команд, доступных роли
func commandsFor(role model.Role) string {
	var sb strings.Builder
	if auth.Allowed(role, auth.ActionViewAgenda) {
		sb.WriteString("/today - Tableau de bord du jour\n")
		sb.WriteString("/agenda [date] - Agenda d'une journée (AAAA-MM-JJ, JJ/MM/AAAA, demain)\n")
	}
	if auth.Allowed(role, auth.ActionViewPatient) {
		sb.WriteString("/patient &lt;id ou nom&gt; - Fiche patient\n")
	}
	if auth.Allowed(role, auth.ActionOverview) {
		sb.WriteString("/overview - Vue d'ensemble des cabinets\n")
	}
	sb.WriteString("/whoami - Mon profil\n")
	sb.WriteString("/logout - Se déconnecter\n")
	return sb.String()
}

// portalIntro что доступно в разделе роли
func portalIntro(role model.Role) string {
	portal, _ := auth.PortalFor(role)
	switch portal {
	case auth.PortalSecretary:
		return "🗂 Espace secrétariat : prise de rendez-vous, confirmation, déplacement et annulation."
	case auth.PortalDoctor:
		return "🩺 Espace médecin : consultation de l'agenda, démarrage et clôture des consultations."
	case auth.PortalAdmin:
		return "👑 Espace administrateur : toutes les actions, y compris la suppression définitive."
	}
	return ""
}

func helpText(session *model.Session) string {
	text := "📚 <b>Aide</b>\n\n"
	if session == nil {
		return text +
			"/login - Se connecter avec votre compte du cabinet\n" +
			"/help - Afficher cette aide\n\n" +
			"Connectez-vous pour accéder à l'agenda."
	}
	return text + portalIntro(session.Role) + "\n\n" + commandsFor(session.Role) +
		"/cancel - Abandonner l'opération en cours\n" +
		"/help - Afficher cette aide"
}
