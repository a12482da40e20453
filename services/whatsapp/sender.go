// Package whatsapp delivers outbound messages through the Twilio WhatsApp API.
package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"glowdesk/config"
	"glowdesk/utils"

	"go.uber.org/zap"
)

// Sender delivers a message body to a phone number. Delivery is
// fire-and-forget from the caller's perspective.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends WhatsApp messages via the Twilio Messages API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTwilioSender builds a sender from static credentials.
func NewTwilioSender(accountSID, authToken, from, baseURL string) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     utils.GetLogger().Named("whatsapp"),
	}
}

// NewSenderFromConfig returns a Twilio sender when credentials are configured,
// otherwise a log-only sender so development setups still see outbound traffic.
func NewSenderFromConfig() Sender {
	cfg := config.AppConfig
	if cfg.WhatsAppAccountSID == "" || cfg.WhatsAppAuthToken == "" || cfg.WhatsAppFromNumber == "" {
		utils.GetLogger().Warn("WhatsApp credentials not configured, outbound messages will only be logged")
		return &LogSender{logger: utils.GetLogger().Named("whatsapp")}
	}
	return NewTwilioSender(cfg.WhatsAppAccountSID, cfg.WhatsAppAuthToken, cfg.WhatsAppFromNumber, cfg.WhatsAppAPIBaseURL)
}

// formatAddress ensures the whatsapp: channel prefix Twilio expects.
func formatAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

// Send posts the message to the Twilio Messages endpoint.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	form := url.Values{}
	form.Set("From", formatAddress(s.from))
	form.Set("To", formatAddress(to))
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("message API returned status %d for %s", resp.StatusCode, to)
	}

	s.logger.Info("WhatsApp message sent", zap.String("to", to))
	return nil
}

// LogSender writes outbound messages to the log instead of delivering them.
type LogSender struct {
	logger *zap.Logger
}

// Send logs the message and succeeds.
func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.logger.Info("WhatsApp message (not delivered)",
		zap.String("to", to),
		zap.String("body", body))
	return nil
}
