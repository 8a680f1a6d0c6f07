package stripe

import (
	"github.com/finecut/platform/internal/config"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client handles Stripe API client setup and configuration
type Client struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewClient creates a new Stripe client
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// IsEnabled reports whether a Stripe secret key is configured
func (c *Client) IsEnabled() bool {
	return c.cfg.Stripe.SecretKey != ""
}

// GetStripeClient returns a configured Stripe API client
func (c *Client) GetStripeClient() (*stripe.Client, error) {
	if !c.IsEnabled() {
		return nil, ierr.NewError("Stripe is not configured").
			WithHint("Set the Stripe secret key to enable payment operations").
			Mark(ierr.ErrConfiguration)
	}
	return stripe.NewClient(c.cfg.Stripe.SecretKey, nil), nil
}

// WebhookSecret returns the endpoint signing secret used to verify inbound
// webhook payloads
func (c *Client) WebhookSecret() string {
	return c.cfg.Stripe.WebhookSecret
}
