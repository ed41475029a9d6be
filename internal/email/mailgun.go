package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openboard/board-api/config"
)

// MailgunSender posts messages to the Mailgun-compatible HTTP API:
// form-encoded from/to/subject/html with basic auth "api:<key>".
type MailgunSender struct {
	baseURL string
	domain  string
	apiKey  string
	from    string
	client  *http.Client
}

func NewMailgunSender(cfg config.EmailConfig) *MailgunSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MailgunSender{
		baseURL: strings.TrimRight(cfg.Mailgun.BaseURL, "/"),
		domain:  cfg.Mailgun.Domain,
		apiKey:  cfg.Mailgun.APIKey,
		from:    cfg.From,
		client:  &http.Client{Timeout: timeout},
	}
}

type mailgunResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *MailgunSender) Send(ctx context.Context, msg *Message) (string, error) {
	form := url.Values{}
	form.Set("from", s.from)
	for _, to := range msg.To {
		form.Add("to", to)
	}
	form.Set("subject", msg.Subject)
	form.Set("html", msg.BodyHTML)
	if msg.BodyText != "" {
		form.Set("text", msg.BodyText)
	}
	if msg.ReplyTo != "" {
		form.Set("h:Reply-To", msg.ReplyTo)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", s.baseURL, s.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build provider request: %w", err)
	}
	req.SetBasicAuth("api", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &DeliveryError{Provider: "mailgun", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		providerMsg := string(body)
		var parsed mailgunResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			providerMsg = parsed.Message
		}
		return "", &DeliveryError{
			Provider:   "mailgun",
			StatusCode: resp.StatusCode,
			Message:    providerMsg,
		}
	}

	var parsed mailgunResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}

	return parsed.ID, nil
}
