package email

import (
	"context"
	"fmt"

	"github.com/finecut/platform/internal/config"
	"github.com/finecut/platform/internal/logger"
	"github.com/shopspring/decimal"
)

// NotificationService is the outbound notification sink for reconciliation
// side effects. All sends are fire-and-forget: failures are logged by the
// caller and never propagated into the financial state transition.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, to string, invoiceNumber string, total decimal.Decimal, currency string) error
	SendTrialConfirmation(ctx context.Context, to string, trialEndDate string) error
	NotifySalesRep(ctx context.Context, invoiceNumber string, companyID string, total decimal.Decimal, currency string) error
}

type notificationService struct {
	client *Client
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(client *Client, cfg *config.Configuration, logger *logger.Logger) NotificationService {
	return &notificationService{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *notificationService) SendOrderConfirmation(ctx context.Context, to string, invoiceNumber string, total decimal.Decimal, currency string) error {
	subject := fmt.Sprintf("Order confirmation %s", invoiceNumber)
	body := fmt.Sprintf(
		"Thank you for your order.\n\nInvoice: %s\nTotal: %s %s\n\nThe FineCut team",
		invoiceNumber, total.StringFixed(2), currency,
	)
	return s.send(ctx, to, subject, body)
}

func (s *notificationService) SendTrialConfirmation(ctx context.Context, to string, trialEndDate string) error {
	subject := "Your FineCut trial has started"
	body := fmt.Sprintf(
		"Welcome aboard.\n\nYour trial runs until %s. You can upgrade at any time from your account.\n\nThe FineCut team",
		trialEndDate,
	)
	return s.send(ctx, to, subject, body)
}

func (s *notificationService) NotifySalesRep(ctx context.Context, invoiceNumber string, companyID string, total decimal.Decimal, currency string) error {
	if s.cfg.Email.SalesInbox == "" {
		s.logger.Debugw("no sales inbox configured, skipping sales rep notification",
			"invoice_number", invoiceNumber)
		return nil
	}
	subject := fmt.Sprintf("Invoice %s paid", invoiceNumber)
	body := fmt.Sprintf(
		"Invoice %s for company %s was paid.\nTotal: %s %s",
		invoiceNumber, companyID, total.StringFixed(2), currency,
	)
	return s.send(ctx, s.cfg.Email.SalesInbox, subject, body)
}

func (s *notificationService) send(ctx context.Context, to, subject, body string) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"to", to,
			"subject", subject,
		)
		return nil
	}

	messageID, err := s.client.Send(ctx, to, subject, body)
	if err != nil {
		return err
	}

	s.logger.Infow("email sent successfully",
		"message_id", messageID,
		"to", to,
		"subject", subject,
	)
	return nil
}
