package stripe

import (
	"context"
	"strings"
	"time"

	"github.com/finecut/platform/internal/domain/invoice"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/stripe/stripe-go/v82"
)

// InvoiceSyncResult reports the outcome of pushing an invoice to Stripe
type InvoiceSyncResult struct {
	InvoiceID        string    `json:"invoice_id"`
	StripeInvoiceID  string    `json:"stripe_invoice_id"`
	Status           string    `json:"status"`
	HostedInvoiceURL string    `json:"hosted_invoice_url"`
	CreatedAt        time.Time `json:"created_at"`
}

// InvoiceSyncService pushes internal invoices to Stripe: a draft invoice is
// created, line items are attached one by one, and the invoice is finalized.
// The steps run sequentially with no rollback; a partially synced Stripe
// invoice is left for the next sync attempt to pick up via the stored
// provider invoice ID.
type InvoiceSyncService struct {
	client      *Client
	invoiceRepo invoice.Repository
	logger      *logger.Logger
}

// NewInvoiceSyncService creates a new Stripe invoice sync service
func NewInvoiceSyncService(client *Client, invoiceRepo invoice.Repository, logger *logger.Logger) *InvoiceSyncService {
	return &InvoiceSyncService{
		client:      client,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// SyncInvoice creates and finalizes a Stripe invoice mirroring the internal
// invoice. stripeCustomerID is the provider customer the invoice bills to.
func (s *InvoiceSyncService) SyncInvoice(ctx context.Context, inv *invoice.Invoice, stripeCustomerID string) (*InvoiceSyncResult, error) {
	s.logger.Infow("starting Stripe invoice sync",
		"invoice_id", inv.ID,
		"stripe_customer_id", stripeCustomerID)

	stripeClient, err := s.client.GetStripeClient()
	if err != nil {
		return nil, err
	}

	stripeInvoiceID, err := s.ensureDraftInvoice(ctx, stripeClient, inv, stripeCustomerID)
	if err != nil {
		return nil, err
	}

	if err := s.syncLineItems(ctx, stripeClient, inv, stripeInvoiceID, stripeCustomerID); err != nil {
		return nil, err
	}

	finalized, err := stripeClient.V1Invoices.FinalizeInvoice(ctx, stripeInvoiceID, &stripe.InvoiceFinalizeInvoiceParams{
		AutoAdvance: stripe.Bool(true),
	})
	if err != nil {
		return nil, ierr.NewError("failed to finalize Stripe invoice").
			WithHint("Unable to finalize invoice in Stripe").
			WithReportableDetails(map[string]interface{}{
				"invoice_id":        inv.ID,
				"stripe_invoice_id": stripeInvoiceID,
				"error":             err.Error(),
			}).
			Mark(ierr.ErrSystem)
	}

	// Record the provider reference so webhook events can find this invoice.
	// A failure here is recoverable: the reconciliation handler resolves by
	// provider invoice ID on the next delivery.
	inv.ProviderInvoiceID = lo.ToPtr(finalized.ID)
	inv.UpdatedAt = time.Now().UTC()
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		s.logger.Errorw("failed to store provider invoice ID",
			"error", err,
			"invoice_id", inv.ID,
			"stripe_invoice_id", finalized.ID)
	}

	s.logger.Infow("Stripe invoice sync completed",
		"invoice_id", inv.ID,
		"stripe_invoice_id", finalized.ID,
		"status", finalized.Status)

	return &InvoiceSyncResult{
		InvoiceID:        inv.ID,
		StripeInvoiceID:  finalized.ID,
		Status:           string(finalized.Status),
		HostedInvoiceURL: finalized.HostedInvoiceURL,
		CreatedAt:        time.Unix(finalized.Created, 0),
	}, nil
}

// ensureDraftInvoice reuses an already-created Stripe invoice when a previous
// sync attempt got that far, otherwise creates a fresh draft.
func (s *InvoiceSyncService) ensureDraftInvoice(ctx context.Context, stripeClient *stripe.Client, inv *invoice.Invoice, stripeCustomerID string) (string, error) {
	if inv.ProviderInvoiceID != nil && *inv.ProviderInvoiceID != "" {
		s.logger.Infow("invoice already has a Stripe invoice, reusing",
			"invoice_id", inv.ID,
			"stripe_invoice_id", *inv.ProviderInvoiceID)
		return *inv.ProviderInvoiceID, nil
	}

	params := &stripe.InvoiceCreateParams{
		Customer:         stripe.String(stripeCustomerID),
		Currency:         stripe.String(strings.ToLower(inv.Currency)),
		AutoAdvance:      stripe.Bool(true),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(30),
		Metadata: map[string]string{
			"company_id":     inv.CompanyID,
			"contact_id":     inv.ContactID,
			"invoice_id":     inv.ID,
			"invoice_number": lo.FromPtr(inv.InvoiceNumber),
		},
	}
	if inv.QuoteID != nil {
		params.Metadata["quote_id"] = *inv.QuoteID
	}

	created, err := stripeClient.V1Invoices.Create(ctx, params)
	if err != nil {
		return "", ierr.NewError("failed to create Stripe invoice").
			WithHint("Unable to create draft invoice in Stripe").
			WithReportableDetails(map[string]interface{}{
				"invoice_id": inv.ID,
				"error":      err.Error(),
			}).
			Mark(ierr.ErrSystem)
	}

	s.logger.Infow("created draft invoice in Stripe",
		"invoice_id", inv.ID,
		"stripe_invoice_id", created.ID)
	return created.ID, nil
}

func (s *InvoiceSyncService) syncLineItems(ctx context.Context, stripeClient *stripe.Client, inv *invoice.Invoice, stripeInvoiceID, stripeCustomerID string) error {
	for _, line := range inv.LineItems {
		params := &stripe.InvoiceItemCreateParams{
			Customer:    stripe.String(stripeCustomerID),
			Invoice:     stripe.String(stripeInvoiceID),
			Currency:    stripe.String(strings.ToLower(inv.Currency)),
			Description: stripe.String(line.ProductCode),
			Quantity:    stripe.Int64(line.Quantity),
			UnitAmountDecimal: stripe.Float64(float64(types.ToMinorUnits(line.UnitPrice, inv.Currency))),
			Metadata: map[string]string{
				"line_item_id": line.ID,
				"product_code": line.ProductCode,
				"product_type": string(line.ProductType),
			},
		}

		if _, err := stripeClient.V1InvoiceItems.Create(ctx, params); err != nil {
			return ierr.NewError("failed to add line item to Stripe invoice").
				WithHint("Unable to sync invoice line items to Stripe").
				WithReportableDetails(map[string]interface{}{
					"invoice_id":        inv.ID,
					"stripe_invoice_id": stripeInvoiceID,
					"line_item_id":      line.ID,
					"error":             err.Error(),
				}).
				Mark(ierr.ErrSystem)
		}
	}

	s.logger.Infow("synced line items to Stripe",
		"invoice_id", inv.ID,
		"stripe_invoice_id", stripeInvoiceID,
		"line_items", len(inv.LineItems))
	return nil
}
