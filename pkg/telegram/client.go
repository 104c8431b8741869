package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"golang-stock-intel/pkg/logger"
)

// Notifier defines the interface for a report notifier.
type Notifier interface {
	SendMessage(text string) error
}

// client is a Notifier that posts to a Telegram chat.
type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a new Telegram notifier client.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a message to the configured Telegram chat.
func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// logNotifier writes reports to the log instead of a chat.
type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a Notifier that logs every message at info level.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (n *logNotifier) SendMessage(text string) error {
	n.logger.Info("Daily report", logger.StringField("report", text))
	return nil
}

// NewNotifier returns a Telegram client when a bot token is configured and a
// log notifier otherwise.
func NewNotifier(botToken string, chatID int64, log *logger.Logger) Notifier {
	if botToken == "" || chatID == 0 {
		return NewLogNotifier(log)
	}
	c, err := NewClient(botToken, chatID)
	if err != nil {
		log.Warn("Failed to create Telegram client, reports will be logged", logger.ErrorField(err))
		return NewLogNotifier(log)
	}
	return c
}
