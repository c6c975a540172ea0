// Package log provides the bot's logger. Output goes to the console; when a
// log chat is configured, errors are mirrored there for the operators.
package log

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used across the bot.
type Logger interface {
	Info(msg string)
	Infof(format string, args ...any)
	Error(context string, err error)
	Fatal(context string, err error)
}

type botLogger struct {
	log       *logrus.Logger
	bot       *tgbotapi.BotAPI
	logChatID int64
}

// NewLogger creates a Logger. bot may be nil (console only); logChatID of 0
// disables chat mirroring.
func NewLogger(bot *tgbotapi.BotAPI, logChatID int64) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &botLogger{log: l, bot: bot, logChatID: logChatID}
}

func (l *botLogger) Info(msg string) {
	l.log.Info(msg)
}

func (l *botLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *botLogger) Error(context string, err error) {
	l.log.WithError(err).Error(context)
	l.mirror(fmt.Sprintf("[ERROR] %s: %v", context, err))
}

func (l *botLogger) Fatal(context string, err error) {
	l.mirror(fmt.Sprintf("[FATAL] %s: %v", context, err))
	l.log.WithError(err).Fatal(context)
}

// mirror posts an error line to the log chat, best effort. Long messages are
// truncated to stay well under Telegram's message size limit.
func (l *botLogger) mirror(msg string) {
	if l.bot == nil || l.logChatID == 0 {
		return
	}
	if len(msg) > 1900 {
		msg = msg[:1900] + "..."
	}
	if _, err := l.bot.Send(tgbotapi.NewMessage(l.logChatID, msg)); err != nil {
		l.log.WithError(err).Warn("Failed to mirror log message to Telegram")
	}
}
