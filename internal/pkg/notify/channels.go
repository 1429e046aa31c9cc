package notify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/infra/httpclient"
)

// Poster is the subset of httpclient.Client the channels need.
type Poster interface {
	PostJSON(ctx context.Context, endpoint string, body any) (int, error)
	PostForm(ctx context.Context, endpoint string, values url.Values) (int, error)
}

var _ Poster = (*httpclient.Client)(nil)

// EmailChannel posts a structured payload to a transactional email API (EmailJS shape).
type EmailChannel struct {
	URL        string
	ServiceID  string
	TemplateID string
	UserID     string
	Recipient  string
	Client     Poster
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Attempt(ctx context.Context, a Alert) (int, error) {
	payload := map[string]any{
		"service_id":  c.ServiceID,
		"template_id": c.TemplateID,
		"user_id":     c.UserID,
		"template_params": map[string]any{
			"to_email":       c.Recipient,
			"from_name":      "Tonelab Booking System",
			"subject":        fmt.Sprintf("New Booking: %s - %s", a.CustomerName, a.AmountText()),
			"message":        a.Text(),
			"customer_name":  a.CustomerName,
			"customer_email": a.CustomerEmail,
			"customer_phone": a.CustomerPhone,
			"booking_amount": a.Amount,
			"booking_id":     a.BookingID,
			"receipt":        a.ReceiptStatus(),
		},
	}
	status, err := c.Client.PostJSON(ctx, c.URL, payload)
	return statusOf(status, err), err
}

// FormsChannel relays the alert through a forms endpoint (Web3Forms shape) as form data.
type FormsChannel struct {
	URL       string
	AccessKey string
	Recipient string
	Client    Poster
}

func (c *FormsChannel) Name() string { return "forms" }

func (c *FormsChannel) Attempt(ctx context.Context, a Alert) (int, error) {
	values := url.Values{}
	values.Set("access_key", c.AccessKey)
	values.Set("subject", "New Tonelab Booking: "+a.CustomerName)
	values.Set("from_name", "Tonelab Booking System")
	values.Set("email", c.Recipient)
	values.Set("name", a.CustomerName)
	values.Set("phone", a.CustomerPhone)
	values.Set("customer_email", a.CustomerEmail)
	values.Set("amount", a.AmountText())
	values.Set("booking_id", a.BookingID)
	values.Set("receipt", a.ReceiptStatus())
	values.Set("message", "New booking received:\n\n"+a.Text())

	status, err := c.Client.PostForm(ctx, c.URL, values)
	return statusOf(status, err), err
}

// WebhookChannel posts a chat-style {"content": ...} message (Discord/Slack compatible).
type WebhookChannel struct {
	URL    string
	Client Poster
}

func (c *WebhookChannel) Name() string { return "webhook" }

func (c *WebhookChannel) Attempt(ctx context.Context, a Alert) (int, error) {
	payload := map[string]string{
		"content": "**New Tonelab Booking!**\n\n" + a.Text(),
	}
	status, err := c.Client.PostJSON(ctx, c.URL, payload)
	return statusOf(status, err), err
}

// ChannelsFromConfig builds the chain email → forms → webhook. Channels without an
// endpoint are left out, so an unset webhook URL is skipped.
func ChannelsFromConfig(cfg config.NotifyCfg, client Poster) []Channel {
	var out []Channel
	if cfg.EmailJSURL != "" {
		out = append(out, &EmailChannel{
			URL:        cfg.EmailJSURL,
			ServiceID:  cfg.EmailJSService,
			TemplateID: cfg.EmailJSTemplate,
			UserID:     cfg.EmailJSUserID,
			Recipient:  cfg.Recipient,
			Client:     client,
		})
	}
	if cfg.FormsURL != "" {
		out = append(out, &FormsChannel{
			URL:       cfg.FormsURL,
			AccessKey: cfg.FormsAccessKey,
			Recipient: cfg.Recipient,
			Client:    client,
		})
	}
	if cfg.WebhookURL != "" {
		out = append(out, &WebhookChannel{URL: cfg.WebhookURL, Client: client})
	}
	return out
}
