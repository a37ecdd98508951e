package controller

import (
	"context"
	"strings"

	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/handlers"
	"github.com/Freeeeeet/cabinet_desk/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewBotController собирает обработчики. Экземпляр бота привязывается позже
// через Attach, так как bot.New уже требует default handler.
func NewBotController(deps *callbacktypes.Handler, m *metrics.Metrics, logger *zap.Logger) *BotController {
	return &BotController{
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		metrics:         m,
		logger:          logger,
	}
}

// Options опции для bot.New
func (c *BotController) Options() []bot.Option {
	return []bot.Option{
		// Текст вне команд идёт в диалоги
		bot.WithDefaultHandler(c.handlers.HandleTextMessage),
		bot.WithMiddlewares(c.countUpdates),
		bot.WithErrorsHandler(func(err error) {
			c.logger.Error("Telegram API error", zap.Error(err))
		}),
	}
}

// Attach привязывает созданный экземпляр бота
func (c *BotController) Attach(b *bot.Bot) {
	c.bot = b
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/whoami", bot.MatchTypeExact, c.handlers.HandleWhoami)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Агенда
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/agenda", bot.MatchTypePrefix, c.handlers.HandleAgenda)

	// Администратор
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/overview", bot.MatchTypeExact, c.handlers.HandleOverview)

	// Пациенты
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/patient", bot.MatchTypePrefix, c.handlers.HandlePatient)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// BotCommands меню команд бота
func BotCommands() []models.BotCommand {
	return []models.BotCommand{
		{Command: "start", Description: "🚀 Démarrer"},
		{Command: "login", Description: "🔐 Se connecter"},
		{Command: "today", Description: "📊 Tableau de bord du jour"},
		{Command: "agenda", Description: "📅 Agenda (date optionnelle)"},
		{Command: "patient", Description: "👤 Fiche patient (id ou nom)"},
		{Command: "overview", Description: "👑 Vue d'ensemble (administrateur)"},
		{Command: "whoami", Description: "🪪 Mon profil"},
		{Command: "cancel", Description: "✖️ Annuler l'opération en cours"},
		{Command: "logout", Description: "🚪 Se déconnecter"},
		{Command: "help", Description: "❓ Aide"},
	}
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: BotCommands(),
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) countUpdates(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		c.metrics.ObserveUpdate(UpdateKind(update))
		next(ctx, b, update)
	}
}

// UpdateKind метка апдейта для метрик
func UpdateKind(update *models.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/"):
		return "command"
	case update.Message != nil && update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}
