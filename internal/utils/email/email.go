package email

import (
	"fmt"
	"net/smtp"

	"github.com/boa-labs/preapproval/internal/config"
	"github.com/boa-labs/preapproval/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP.
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender.
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDecisionNotification emails the user a summary of their pre-approval
// outcome.
func (s *Sender) SendDecisionNotification(to, username string, pre *models.PreApproval) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}

	action := ""
	if pre.Challenge != nil {
		action = pre.Challenge.Decision.Action
	}

	body := fmt.Sprintf("Dear %s,\n\n", username)
	switch action {
	case models.ActionApproveAsIs:
		e.Subject = "You're pre-approved"
		body += fmt.Sprintf(
			"Good news: you have been pre-approved for our %s tier credit card.\n"+
				"Your credit score assessment came in at %d.\n",
			pre.Tier, pre.Score,
		)
	case models.ActionCounterOffer:
		e.Subject = "A revised credit offer is ready for you"
		counter := pre.Challenge.Decision.CounterProposal
		body += fmt.Sprintf(
			"We reviewed your application and prepared a revised offer:\n"+
				"APR: %.2f%%, credit limit: $%.0f.\n",
			counter.APRRate, counter.CreditLimit,
		)
	default:
		e.Subject = "Update on your credit application"
		body += "We are unable to extend a pre-approval at this time.\n" +
			"You can re-apply once your account history has built up further.\n"
	}
	body += "\nBest regards,\nPre-Approval Team"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
