package controller

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestBotCommands(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range BotCommands() {
		assert.False(t, seen[cmd.Command], "duplicate command %s", cmd.Command)
		seen[cmd.Command] = true
		assert.NotEmpty(t, cmd.Description)
	}

	for _, want := range []string{"start", "login", "logout", "agenda", "today", "patient", "overview", "whoami", "cancel", "help"} {
		assert.True(t, seen[want], want)
	}
}

func TestUpdateKind(t *testing.T) {
	tests := []struct {
		name   string
		update *models.Update
		want   string
	}{
		{"callback", &models.Update{CallbackQuery: &models.CallbackQuery{Data: "today"}}, "callback"},
		{"command", &models.Update{Message: &models.Message{Text: "/agenda demain"}}, "command"},
		{"text", &models.Update{Message: &models.Message{Text: "Alami"}}, "text"},
		{"photo", &models.Update{Message: &models.Message{}}, "other"},
		{"empty", &models.Update{}, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdateKind(tt.update))
		})
	}
}
