package telegram

import (
	"fmt"

	"hospital_duty_kiosk/internal/app"

	"github.com/sirupsen/logrus"
)

// AdminNotifier tells the admin when a scheduled refresh could not use live data.
type AdminNotifier struct {
	sender  Sender
	adminID int64
	logger  *logrus.Entry
}

func NewAdminNotifier(sender Sender, adminID int64, logger *logrus.Entry) *AdminNotifier {
	return &AdminNotifier{sender: sender, adminID: adminID, logger: logger}
}

// NotifyRefresh sends a message for refreshes that fell back to the snapshot
// or the sample dataset. Live refreshes are silent.
func (n *AdminNotifier) NotifyRefresh(report app.RefreshReport) {
	if report.Origin == app.OriginLive {
		return
	}
	text := fmt.Sprintf("Η ανανέωση %s δεν βρήκε ζωντανά δεδομένα (κατάσταση %s). Εμφανίζονται δεδομένα: %s, %d εγγραφές.",
		report.Date, report.Status, report.Origin, report.Records)
	if report.Status == app.StatusUnsupported {
		text += "\nΤο έγγραφο του Υπουργείου είναι σε μορφή DOC που δεν υποστηρίζεται."
	}
	if err := n.sender.SendMessage(n.adminID, text); err != nil {
		n.logger.WithError(err).WithField("run_id", report.RunID).Error("Failed to notify admin")
	}
}
