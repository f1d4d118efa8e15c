package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// Notification event names consumed by the delivery collaborator
const (
	EventStageChanged     = "stage-changed"
	EventDocumentApproved = "document-approved"
	EventDocumentRejected = "document-rejected"
	EventCompanyActivated = "company-activated"
)

// Event is the payload posted to the notification webhook. Delivery is
// owned by the receiving collaborator; this service only needs to know
// the event fired.
type Event struct {
	CompanyID uint                   `json:"company_id"`
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Notifier posts onboarding events to a configured webhook. With no
// webhook URL configured it degrades to log-only, which keeps local
// development free of external dependencies.
type Notifier struct {
	WebhookURL string
	HTTPClient *http.Client
	log        *zap.Logger
}

// NewNotifier creates a notifier for the given webhook URL
func NewNotifier(webhookURL string, log *zap.Logger) *Notifier {
	return &Notifier{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Send posts a single event to the webhook. Failures are logged, not
// returned: the engine's contract is that the event fired, not that it
// was delivered.
func (n *Notifier) Send(event Event) {
	prometheus.RecordNotification(event.Event)

	if n.WebhookURL == "" {
		n.log.Info("notification event (no webhook configured)",
			zap.Uint("company_id", event.CompanyID),
			zap.String("event", event.Event))
		return
	}

	if err := n.post(event); err != nil {
		n.log.Warn("failed to deliver notification",
			zap.Uint("company_id", event.CompanyID),
			zap.String("event", event.Event),
			zap.Error(err))
		return
	}

	n.log.Debug("notification delivered",
		zap.Uint("company_id", event.CompanyID),
		zap.String("event", event.Event))
}

// SendAsync fires the event from a goroutine so request handlers never
// block on webhook latency.
func (n *Notifier) SendAsync(event Event) {
	go n.Send(event)
}

func (n *Notifier) post(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
