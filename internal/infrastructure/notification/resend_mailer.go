package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anascb/storefront/internal/domain/order"
	"github.com/anascb/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// maxResponseSize caps how much of the Resend API response we read (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ResendMailer sends transactional emails through the Resend HTTP API.
type ResendMailer struct {
	apiKey     string
	baseURL    string
	from       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewResendMailer creates a mailer from the mail configuration
func NewResendMailer(cfg config.MailConfig, logger *zap.Logger) *ResendMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendMailer{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		from:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendOrderConfirmation emails the customer their order recap in French
func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	html, err := renderConfirmation(o)
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	payload := sendEmailRequest{
		From:    m.from,
		To:      []string{o.CustomerEmail},
		Subject: fmt.Sprintf("Confirmation de votre commande %s", o.OrderNumber),
		HTML:    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(detail))
	}

	m.logger.Info("order confirmation sent",
		zap.String("order_number", o.OrderNumber),
		zap.String("to", o.CustomerEmail))
	return nil
}

// NoopMailer is used when outgoing email is disabled. It logs the order
// number so a developer can still see that a confirmation would go out.
type NoopMailer struct {
	logger *zap.Logger
}

// NewNoopMailer creates a mailer that drops every message
func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

// SendOrderConfirmation logs and discards the confirmation
func (m *NoopMailer) SendOrderConfirmation(_ context.Context, o *order.Order) error {
	m.logger.Debug("email disabled, skipping order confirmation",
		zap.String("order_number", o.OrderNumber))
	return nil
}
