// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands registers /start and /help. Non-admins get a short
// pointer to the public kiosk instead of the command list.
func RegisterBotCommands(b *telebot.Bot, adminTelegramID int64, baseLogger *logrus.Entry) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		if senderID == adminTelegramID {
			logCtx.Info("User identified as Admin")
			return c.Send(fmt.Sprintf("Γεια σας %s! Το bot εφημεριών είναι έτοιμο. Χρησιμοποιήστε /help.", c.Sender().FirstName))
		}
		logCtx.Info("User is unknown")
		return c.Send(publicReply)
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/help").WithField("sender_id", senderID)
		logCtx.Info("Processing /help command")

		if senderID == adminTelegramID {
			return c.Send(helpText())
		}
		return c.Send(publicReply)
	})
}

const publicReply = "Οι εφημερίες νοσοκομείων εμφανίζονται στο κιόσκι. Οι εντολές του bot είναι διαθέσιμες μόνο στον διαχειριστή."
