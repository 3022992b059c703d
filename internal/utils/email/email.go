package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendWaitlistConfirmation thanks a visitor for joining the waitlist
func (s *Sender) SendWaitlistConfirmation(to string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "You're on the waitlist"
	e.Text = []byte(waitlistBody())
	return s.deliver(e)
}

// SendBillReminder lists the bills a user has coming up
func (s *Sender) SendBillReminder(to, username string, bills []models.UpcomingBill, currency string) error {
	if len(bills) == 0 {
		return nil
	}
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("%d upcoming bill(s)", len(bills))
	e.Text = []byte(reminderBody(username, bills, currency))
	return s.deliver(e)
}

func (s *Sender) deliver(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", strings.Join(e.To, ","), err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(e.To, ","), e.Subject)
	return nil
}

func waitlistBody() string {
	return "Hi,\n\n" +
		"Thanks for joining the waitlist. We'll email you as soon as your spot opens up.\n" +
		"\nBest regards,\nCashflow"
}

func reminderBody(username string, bills []models.UpcomingBill, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)
	b.WriteString("The following payments are coming up:\n\n")
	for _, bill := range bills {
		when := "today"
		switch {
		case bill.DaysUntil == 1:
			when = "tomorrow"
		case bill.DaysUntil > 1:
			when = fmt.Sprintf("in %d days", bill.DaysUntil)
		}
		fmt.Fprintf(&b, "  - %s: %s %s due %s (%s)\n", bill.Name, bill.Amount.StringFixed(2), currency, bill.DueDate, when)
	}
	b.WriteString("\nPlease ensure sufficient funds are available in your account.\n")
	b.WriteString("\nBest regards,\nCashflow")
	return b.String()
}
