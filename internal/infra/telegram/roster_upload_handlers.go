// internal/infra/telegram/roster_upload_handlers.go
package telegram

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const maxRosterBytes = 10 << 20

var (
	confirmMarkup    = &telebot.ReplyMarkup{}
	btnConfirmImport = confirmMarkup.Data("Ναι, εισαγωγή", "import_yes")
	btnCancelImport  = confirmMarkup.Data("Όχι", "import_no")
)

func init() {
	confirmMarkup.Inline(confirmMarkup.Row(btnConfirmImport, btnCancelImport))
}

// RegisterRosterUploadHandlers imports DOCX rosters sent to the bot and
// handles the confirmation buttons for rosters of another month.
func RegisterRosterUploadHandlers(ctx context.Context, b *telebot.Bot, commands *Commands, admin adminGuard) {
	b.Handle(telebot.OnDocument, admin("document", func(c telebot.Context, log *logrus.Entry) error {
		doc := c.Message().Document
		if doc == nil {
			return nil
		}
		log = log.WithFields(logrus.Fields{"file_name": doc.FileName, "file_size": doc.FileSize})

		if !strings.HasSuffix(strings.ToLower(doc.FileName), ".docx") {
			log.Warn("Rejected non-DOCX upload")
			return c.Send("Υποστηρίζονται μόνο αρχεία .docx.")
		}
		if doc.FileSize > maxRosterBytes {
			log.Warn("Rejected oversized upload")
			return c.Send("Το αρχείο είναι πολύ μεγάλο.")
		}

		raw, err := download(c.Bot(), &doc.File)
		if err != nil {
			log.WithError(err).Error("Failed to download roster")
			return c.Send("Αποτυχία λήψης αρχείου. Δοκιμάστε ξανά.")
		}

		reply, needsConfirm := commands.ImportRoster(ctx, c.Sender().ID, raw)
		log.WithField("needs_confirm", needsConfirm).Info("Roster upload processed")
		if needsConfirm {
			return c.Send(reply, confirmMarkup)
		}
		return c.Send(reply)
	}))

	b.Handle(&btnConfirmImport, admin("import_yes", func(c telebot.Context, log *logrus.Entry) error {
		reply := commands.ConfirmImport(ctx, c.Sender().ID)
		_ = c.Respond()
		return c.Send(reply)
	}))

	b.Handle(&btnCancelImport, admin("import_no", func(c telebot.Context, log *logrus.Entry) error {
		reply := commands.CancelImport(c.Sender().ID)
		_ = c.Respond(&telebot.CallbackResponse{Text: reply})
		return c.Send(reply)
	}))
}

func download(b *telebot.Bot, file *telebot.File) ([]byte, error) {
	rc, err := b.File(file)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxRosterBytes))
}
