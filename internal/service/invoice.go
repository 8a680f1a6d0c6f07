package service

import (
	"context"
	"time"

	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/domain/invoice"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// CreateInvoiceParams carries everything needed to materialize an invoice
// from a completed checkout or a provider invoice event.
type CreateInvoiceParams struct {
	CompanyID         string
	ContactID         string
	QuoteID           *string
	Currency          string
	ProviderInvoiceID *string
	PaymentIntentID   *string
	TaxAmount         decimal.Decimal
	ShippingAmount    decimal.Decimal
	Items             []cart.PricedItem
	Metadata          types.Metadata
}

// InvoiceService owns invoice creation and lifecycle transitions. Every
// Apply method is idempotent: replaying the same provider event is a no-op.
type InvoiceService interface {
	// CreateFromSnapshot creates an invoice with line items built from a
	// priced cart snapshot. Returns the existing invoice and false when one
	// already exists for the same provider reference.
	CreateFromSnapshot(ctx context.Context, params CreateInvoiceParams) (*invoice.Invoice, bool, error)

	// GetByProviderInvoiceID looks up an invoice by the provider's invoice ID
	GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*invoice.Invoice, error)

	// GetByPaymentIntentID looks up an invoice by payment intent ID
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*invoice.Invoice, error)

	// ApplyFinalized transitions a draft invoice to sent and records the
	// provider-assigned invoice number when one is supplied
	ApplyFinalized(ctx context.Context, inv *invoice.Invoice, number *string) error

	// ApplyPaid transitions an invoice to paid. Returns true only when this
	// call performed the transition; a replayed event returns false.
	ApplyPaid(ctx context.Context, inv *invoice.Invoice, paymentIntentID *string, paidAt time.Time) (bool, error)

	// ApplyPaymentFailed records a failed payment attempt
	ApplyPaymentFailed(ctx context.Context, inv *invoice.Invoice) error

	// ApplyVoided transitions an invoice to void
	ApplyVoided(ctx context.Context, inv *invoice.Invoice) error

	// ApplyUncollectible transitions an invoice to uncollectible
	ApplyUncollectible(ctx context.Context, inv *invoice.Invoice) error

	// ApplyRefund records a refund against a paid invoice
	ApplyRefund(ctx context.Context, inv *invoice.Invoice, amountRefunded decimal.Decimal) error
}

type invoiceService struct {
	invoiceRepo invoice.Repository
	logger      *logger.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo invoice.Repository, logger *logger.Logger) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (s *invoiceService) CreateFromSnapshot(ctx context.Context, params CreateInvoiceParams) (*invoice.Invoice, bool, error) {
	existing, err := s.findByProviderRefs(ctx, params.ProviderInvoiceID, params.PaymentIntentID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		s.logger.Infow("invoice already exists for provider reference, skipping creation",
			"invoice_id", existing.ID)
		return existing, false, nil
	}

	inv := &invoice.Invoice{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CompanyID:         params.CompanyID,
		ContactID:         params.ContactID,
		QuoteID:           params.QuoteID,
		Currency:          params.Currency,
		TaxAmount:         params.TaxAmount,
		ShippingAmount:    params.ShippingAmount,
		AmountRefunded:    decimal.Zero,
		InvoiceStatus:     types.InvoiceStatusDraft,
		PaymentStatus:     types.PaymentStatusUnpaid,
		ProviderInvoiceID: params.ProviderInvoiceID,
		PaymentIntentID:   params.PaymentIntentID,
		Metadata:          params.Metadata,
		BaseModel:         types.GetDefaultBaseModel(),
	}
	number := types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE)
	inv.InvoiceNumber = &number

	subtotal := decimal.Zero
	for _, item := range params.Items {
		line := invoice.LineItemFromPricedItem(inv.ID, item)
		inv.LineItems = append(inv.LineItems, line)
		subtotal = subtotal.Add(line.LineTotal)
	}
	inv.Subtotal = subtotal
	inv.TotalAmount = subtotal.Add(params.TaxAmount).Add(params.ShippingAmount)

	if err := inv.Validate(); err != nil {
		return nil, false, err
	}

	if err := s.invoiceRepo.CreateWithLineItems(ctx, inv); err != nil {
		// unique constraint on provider references catches concurrent
		// duplicate deliveries
		if ierr.IsAlreadyExists(err) {
			existing, lookupErr := s.findByProviderRefs(ctx, params.ProviderInvoiceID, params.PaymentIntentID)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			if existing != nil {
				s.logger.Infow("invoice insert raced a duplicate delivery, skipping",
					"invoice_id", existing.ID)
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	s.logger.Infow("invoice created",
		"invoice_id", inv.ID,
		"invoice_number", number,
		"company_id", inv.CompanyID,
		"total_amount", inv.TotalAmount.String(),
		"line_items", len(inv.LineItems))
	return inv, true, nil
}

func (s *invoiceService) GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*invoice.Invoice, error) {
	return s.invoiceRepo.GetByProviderInvoiceID(ctx, providerInvoiceID)
}

func (s *invoiceService) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*invoice.Invoice, error) {
	return s.invoiceRepo.GetByPaymentIntentID(ctx, paymentIntentID)
}

func (s *invoiceService) ApplyFinalized(ctx context.Context, inv *invoice.Invoice, number *string) error {
	if inv.InvoiceStatus != types.InvoiceStatusDraft {
		s.logger.Debugw("invoice already finalized, skipping",
			"invoice_id", inv.ID,
			"invoice_status", inv.InvoiceStatus)
		return nil
	}

	now := time.Now().UTC()
	inv.InvoiceStatus = types.InvoiceStatusSent
	inv.FinalizedAt = &now
	if number != nil && *number != "" {
		inv.InvoiceNumber = number
	}
	inv.UpdatedAt = now

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logger.Infow("invoice finalized",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber)
	return nil
}

// ApplyPaid is the single entry point for the paid transition, reached from
// both checkout completion and invoice payment events. The status check makes
// replays of either event a no-op.
func (s *invoiceService) ApplyPaid(ctx context.Context, inv *invoice.Invoice, paymentIntentID *string, paidAt time.Time) (bool, error) {
	if inv.IsPaid() {
		s.logger.Infow("invoice already paid, skipping transition",
			"invoice_id", inv.ID)
		return false, nil
	}
	if inv.InvoiceStatus.IsTerminal() {
		s.logger.Warnw("paid event for terminal invoice, skipping",
			"invoice_id", inv.ID,
			"invoice_status", inv.InvoiceStatus)
		return false, nil
	}

	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.PaymentStatus = types.PaymentStatusPaid
	inv.PaidAt = &paidAt
	if paymentIntentID != nil && *paymentIntentID != "" {
		inv.PaymentIntentID = paymentIntentID
	}
	inv.UpdatedAt = time.Now().UTC()

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return false, err
	}

	s.logger.Infow("invoice paid",
		"invoice_id", inv.ID,
		"total_amount", inv.TotalAmount.String())
	return true, nil
}

func (s *invoiceService) ApplyPaymentFailed(ctx context.Context, inv *invoice.Invoice) error {
	if inv.IsPaid() || inv.InvoiceStatus.IsTerminal() {
		// a late failure event never un-pays an invoice
		s.logger.Warnw("payment failure for settled invoice, skipping",
			"invoice_id", inv.ID,
			"invoice_status", inv.InvoiceStatus)
		return nil
	}
	inv.PaymentStatus = types.PaymentStatusUnpaid
	inv.UpdatedAt = time.Now().UTC()
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logger.Infow("invoice payment failed", "invoice_id", inv.ID)
	return nil
}

func (s *invoiceService) ApplyVoided(ctx context.Context, inv *invoice.Invoice) error {
	if inv.InvoiceStatus == types.InvoiceStatusVoid {
		s.logger.Infow("invoice already void, skipping", "invoice_id", inv.ID)
		return nil
	}

	now := time.Now().UTC()
	inv.InvoiceStatus = types.InvoiceStatusVoid
	inv.PaymentStatus = types.PaymentStatusVoid
	inv.VoidedAt = &now
	inv.UpdatedAt = now

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logger.Infow("invoice voided", "invoice_id", inv.ID)
	return nil
}

func (s *invoiceService) ApplyUncollectible(ctx context.Context, inv *invoice.Invoice) error {
	if inv.InvoiceStatus == types.InvoiceStatusUncollectible {
		s.logger.Infow("invoice already uncollectible, skipping", "invoice_id", inv.ID)
		return nil
	}

	inv.InvoiceStatus = types.InvoiceStatusUncollectible
	inv.UpdatedAt = time.Now().UTC()

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logger.Infow("invoice marked uncollectible", "invoice_id", inv.ID)
	return nil
}

// ApplyRefund records the cumulative refunded amount as reported by the
// provider. A full refund flips payment status to refunded, anything less to
// partial. Replays carry the same cumulative amount and settle to the same
// state.
func (s *invoiceService) ApplyRefund(ctx context.Context, inv *invoice.Invoice, amountRefunded decimal.Decimal) error {
	if amountRefunded.IsNegative() {
		return ierr.NewError("refund amount must not be negative").
			WithHint("Refund amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if inv.AmountRefunded.Equal(amountRefunded) {
		s.logger.Infow("refund already recorded, skipping",
			"invoice_id", inv.ID,
			"amount_refunded", amountRefunded.String())
		return nil
	}

	inv.AmountRefunded = amountRefunded
	if amountRefunded.GreaterThanOrEqual(inv.TotalAmount) {
		inv.PaymentStatus = types.PaymentStatusRefunded
	} else if amountRefunded.IsPositive() {
		inv.PaymentStatus = types.PaymentStatusPartial
	}
	inv.UpdatedAt = time.Now().UTC()

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logger.Infow("invoice refund recorded",
		"invoice_id", inv.ID,
		"amount_refunded", amountRefunded.String(),
		"payment_status", inv.PaymentStatus)
	return nil
}

func (s *invoiceService) findByProviderRefs(ctx context.Context, providerInvoiceID, paymentIntentID *string) (*invoice.Invoice, error) {
	if providerInvoiceID != nil && *providerInvoiceID != "" {
		inv, err := s.invoiceRepo.GetByProviderInvoiceID(ctx, *providerInvoiceID)
		if err == nil {
			return inv, nil
		}
		if !ierr.IsNotFound(err) {
			return nil, err
		}
	}
	if paymentIntentID != nil && *paymentIntentID != "" {
		inv, err := s.invoiceRepo.GetByPaymentIntentID(ctx, *paymentIntentID)
		if err == nil {
			return inv, nil
		}
		if !ierr.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, nil
}
