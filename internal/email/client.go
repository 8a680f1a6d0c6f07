package email

import (
	"context"

	"github.com/finecut/platform/internal/config"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/resend/resend-go/v2"
)

// Client wraps the Resend SDK
type Client struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
}

// NewClient creates a new email client. The client is a no-op when email is
// disabled or no API key is configured.
func NewClient(cfg *config.Configuration) *Client {
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return &Client{enabled: false}
	}

	return &Client{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// Send sends a plain text email and returns the provider message ID
func (c *Client) Send(ctx context.Context, to, subject, textContent string) (string, error) {
	if !c.enabled {
		return "", ierr.NewError("email client is disabled").
			WithHint("Email sending is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{to},
		Subject: subject,
		Text:    textContent,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to send email").
			Mark(ierr.ErrHTTPClient)
	}

	return sent.Id, nil
}
