// File: internal/notifier/email.go
package notifier

import (
	"fmt"

	"plusone_backend/internal/config"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Notifier is the narrow side-channel capability the connection engine uses
// to tell people about request activity. Implementations are fire-and-forget:
// they never return an error and must never influence the caller's control
// flow.
type Notifier interface {
	RequestCreated(recipientEmail, recipientName, requesterName, message string)
	RequestAccepted(recipientEmail, recipientName, accepterName string)
}

const emailSubject = "There's been an update in PlusOne"

// EmailNotifier sends the notification emails over SMTP. When no SMTP host
// is configured it only logs, which keeps local development quiet.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

var _ Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier builds the SMTP-backed notifier from configuration.
func NewEmailNotifier(cfg *config.Config, logger *zap.Logger) *EmailNotifier {
	n := &EmailNotifier{
		from:   cfg.SMTPFrom,
		logger: logger.Named("notifier"),
	}
	if cfg.SMTPHost != "" {
		n.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return n
}

// RequestCreated notifies the recipient of a new connection request.
func (n *EmailNotifier) RequestCreated(recipientEmail, recipientName, requesterName, message string) {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"You have received a new connection request from %s on PlusOne!\n\n"+
			"Message: %s\n\n"+
			"Please log in to your PlusOne account to view and respond to this request.\n\n"+
			"Best regards,\nThe PlusOne Team",
		recipientName, requesterName, message,
	)
	n.send(recipientEmail, body)
}

// RequestAccepted notifies the original requester their request was accepted.
func (n *EmailNotifier) RequestAccepted(recipientEmail, recipientName, accepterName string) {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Great news! %s has accepted your connection request on PlusOne!\n\n"+
			"You are now connected and can start chatting and collaborating.\n\n"+
			"Best regards,\nThe PlusOne Team",
		recipientName, accepterName,
	)
	n.send(recipientEmail, body)
}

// send delivers one email. Any failure is logged and swallowed here, so the
// state transition that triggered the notification is never affected.
func (n *EmailNotifier) send(to, body string) {
	if n.dialer == nil {
		n.logger.Info("SMTP not configured, skipping notification email", zap.String("to", to))
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", emailSubject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Error("Failed to send notification email", zap.Error(err), zap.String("to", to))
	}
}
