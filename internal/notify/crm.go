package notify

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// CRMConfig holds GoHighLevel credentials.
type CRMConfig struct {
	APIKey     string
	LocationID string
	BaseURL    string
}

// CRMNotifier pushes leads and analysis events to GoHighLevel. Every call
// runs in its own goroutine and only ever logs failures; the CRM being down
// must not be visible to API clients.
type CRMNotifier struct {
	client *resty.Client
	cfg    CRMConfig
	log    *logrus.Logger
}

func NewCRMNotifier(cfg CRMConfig, log *logrus.Logger) *CRMNotifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://services.leadconnectorhq.com"
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(10 * time.Second)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Version", "2021-07-28")
	client.SetAuthToken(cfg.APIKey)

	return &CRMNotifier{client: client, cfg: cfg, log: log}
}

type crmContact struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	CompanyName string   `json:"companyName"`
	Tags        []string `json:"tags"`
	LocationID  string   `json:"locationId"`
}

// UserRegistered creates a CRM contact for a new signup.
func (n *CRMNotifier) UserRegistered(name, email, businessName string) {
	go n.send(crmContact{
		FirstName:   firstName(name),
		LastName:    lastName(name),
		Email:       email,
		CompanyName: businessName,
		Tags:        []string{"menu-analyzer-lead", "free-analysis"},
		LocationID:  n.cfg.LocationID,
	}, "signup")
}

// AnalysisCompleted tags the contact after a finished analysis so follow-up
// campaigns can reference the score.
func (n *CRMNotifier) AnalysisCompleted(email, businessName string, revenueScore int) {
	tag := "analysis-completed"
	if revenueScore >= 70 {
		tag = "analysis-completed-high-score"
	}
	go n.send(crmContact{
		FirstName:   businessName,
		Email:       email,
		CompanyName: businessName,
		Tags:        []string{"menu-analyzer-lead", tag},
		LocationID:  n.cfg.LocationID,
	}, "analysis")
}

func (n *CRMNotifier) send(contact crmContact, event string) {
	defer func() {
		if r := recover(); r != nil {
			n.log.WithField("event", event).Errorf("crm notification panic: %v", r)
		}
	}()

	resp, err := n.client.R().SetBody(contact).Post("/contacts/")
	if err != nil {
		n.log.WithError(err).WithField("event", event).Warn("crm notification failed")
		return
	}
	if resp.IsError() {
		n.log.WithFields(logrus.Fields{
			"event":  event,
			"status": resp.StatusCode(),
		}).Warn("crm notification rejected")
	}
}

func firstName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func lastName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}
