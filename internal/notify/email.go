package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// MailConfig holds SendGrid credentials and the sender identity.
type MailConfig struct {
	APIKey    string
	BaseURL   string
	FromEmail string
	FromName  string
}

// Mailer sends transactional email through the SendGrid v3 API. Like the CRM
// notifier, sends run in their own goroutine and failures are only logged.
type Mailer struct {
	client *resty.Client
	cfg    MailConfig
	log    *logrus.Logger
}

func NewMailer(cfg MailConfig, log *logrus.Logger) *Mailer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	if cfg.FromName == "" {
		cfg.FromName = "Menu Analyzer"
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(15 * time.Second)
	client.SetHeader("Content-Type", "application/json")
	client.SetAuthToken(cfg.APIKey)

	return &Mailer{client: client, cfg: cfg, log: log}
}

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridRequest struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

// SendWelcome emails a new account holder. Best effort only.
func (m *Mailer) SendWelcome(toEmail, name, businessName string) {
	go m.send(toEmail, "Welcome to Menu Analyzer", welcomeBody(name, businessName))
}

func (m *Mailer) send(toEmail, subject, body string) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Errorf("email send panic: %v", r)
		}
	}()

	req := sendgridRequest{
		Personalizations: []sendgridPersonalization{{To: []sendgridAddress{{Email: toEmail}}}},
		From:             sendgridAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		Subject:          subject,
		Content:          []sendgridContent{{Type: "text/plain", Value: body}},
	}

	resp, err := m.client.R().SetBody(req).Post("/v3/mail/send")
	if err != nil {
		m.log.WithError(err).WithField("to", toEmail).Warn("welcome email failed")
		return
	}
	if resp.IsError() {
		m.log.WithFields(logrus.Fields{
			"to":     toEmail,
			"status": resp.StatusCode(),
		}).Warn("welcome email rejected")
	}
}

func welcomeBody(name, businessName string) string {
	greeting := name
	if greeting == "" {
		greeting = "there"
	}
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Menu Analyzer! Upload your menu as a PDF, image, URL, or plain text and get revenue recommendations in minutes.\n", greeting)
	if businessName != "" {
		body += fmt.Sprintf("\nWe look forward to helping %s grow.\n", businessName)
	}
	body += "\nBest regards,\nThe Menu Analyzer Team\n"
	return body
}

// Fanout combines the CRM notifier and the mailer behind the Notifier
// interface. Either half may be nil.
type Fanout struct {
	CRM  *CRMNotifier
	Mail *Mailer
}

func (f Fanout) UserRegistered(name, email, businessName string) {
	if f.CRM != nil {
		f.CRM.UserRegistered(name, email, businessName)
	}
	if f.Mail != nil {
		f.Mail.SendWelcome(email, name, businessName)
	}
}

func (f Fanout) AnalysisCompleted(email, businessName string, revenueScore int) {
	if f.CRM != nil {
		f.CRM.AnalysisCompleted(email, businessName, revenueScore)
	}
}
