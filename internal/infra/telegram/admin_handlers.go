package telegram

import (
	"context"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const unauthorizedReply = "Σφάλμα: Δεν έχετε δικαίωμα για αυτή την εντολή."

// adminGuard wraps a handler with the admin check and a per-handler logger.
type adminGuard func(name string, run func(c telebot.Context, log *logrus.Entry) error) telebot.HandlerFunc

// RegisterAdminHandlers registers the duty and roster commands.
// Every command is restricted to the configured admin Telegram ID.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, commands *Commands, adminTelegramID int64, baseLogger *logrus.Entry) {
	var admin adminGuard = func(name string, run func(c telebot.Context, log *logrus.Entry) error) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			handlerLogger := baseLogger.WithFields(logrus.Fields{
				"handler":   name,
				"sender_id": c.Sender().ID,
			})
			handlerLogger.Info("Command received")

			if c.Sender().ID != adminTelegramID {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send(unauthorizedReply)
			}
			return run(c, handlerLogger)
		}
	}

	b.Handle("/duties", admin("/duties", func(c telebot.Context, log *logrus.Entry) error {
		return c.Send(commands.Duties(c.Args()))
	}))

	b.Handle("/shift", admin("/shift", func(c telebot.Context, log *logrus.Entry) error {
		return c.Send(commands.Shift(c.Args()))
	}))

	b.Handle("/setshift", admin("/setshift", func(c telebot.Context, log *logrus.Entry) error {
		args := c.Args() // /setshift <day> <field> <value...>
		log.WithField("args_count", len(args)).Debug("Updating roster field")
		return c.Send(commands.SetShift(ctx, args))
	}))

	b.Handle("/refresh", admin("/refresh", func(c telebot.Context, log *logrus.Entry) error {
		_ = c.Notify(telebot.Typing)
		reply := commands.Refresh(ctx)
		log.Info("Manual refresh finished")
		return c.Send(reply)
	}))

	RegisterRosterUploadHandlers(ctx, b, commands, admin)
}
