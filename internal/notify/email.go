// Package notify sends the monthly digest e-mails.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{cfg: cfg, logger: logger}
	s.send = s.sendSMTP
	return s
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// SendMonthlyDigest mails the summary of a finished month to its owner
func (s *Sender) SendMonthlyDigest(user models.User, summary *models.BalanceSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{user.Email}
	e.Subject = fmt.Sprintf("Your finances for %04d-%02d", summary.Year, summary.Month)
	e.Text = []byte(DigestBody(user.FullName, summary))

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", user.Email, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", user.Email, e.Subject)
	return nil
}

// DigestBody formats the plain-text digest of one month
func DigestBody(fullName string, summary *models.BalanceSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", fullName)
	fmt.Fprintf(&b, "Here is your summary for %04d-%02d.\n\n", summary.Year, summary.Month)
	fmt.Fprintf(&b, "Income:  %.2f\n", summary.TotalIncome)
	fmt.Fprintf(&b, "Expense: %.2f\n", summary.TotalExpense)
	fmt.Fprintf(&b, "Balance: %.2f\n", summary.Balance)

	writeSection(&b, "Income by category", summary.IncomeByCategory)
	writeSection(&b, "Expense by category", summary.ExpenseByCategory)

	b.WriteString("\nBest regards,\nFinance Tracker")
	return b.String()
}

func writeSection(b *strings.Builder, title string, items []models.CategorySummary) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  %s: %.2f (%.1f%%)\n", item.CategoryName, item.Total, item.Percentage)
	}
}
