package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finecut/platform/internal/cache"
	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/domain/engagement"
	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/domain/subscription"
	"github.com/finecut/platform/internal/email"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/sentry"
	"github.com/finecut/platform/internal/service"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v82"
)

// Handler reconciles inbound Stripe webhook events against internal state.
//
// Delivery guarantees drive the shape of every handler: events arrive at
// least once and in no particular order, so each handler checks current
// state before acting and converges to the same result on replay. The
// primary financial write decides the outcome; secondary side effects
// (commissions, notifications, legacy mirror, analytics) are attempted
// and their failures logged, never propagated.
type Handler struct {
	invoiceSvc      service.InvoiceService
	subscriptionSvc service.SubscriptionService
	commissionSvc   service.CommissionService
	orderSvc        service.OrderService
	quoteSvc        service.QuoteService
	engagementSvc   service.EngagementService
	notificationSvc email.NotificationService
	cache           cache.Cache
	alerts          *sentry.Service
	logger          *logger.Logger
}

// NewHandler creates a new Stripe webhook handler
func NewHandler(
	invoiceSvc service.InvoiceService,
	subscriptionSvc service.SubscriptionService,
	commissionSvc service.CommissionService,
	orderSvc service.OrderService,
	quoteSvc service.QuoteService,
	engagementSvc service.EngagementService,
	notificationSvc email.NotificationService,
	c cache.Cache,
	alerts *sentry.Service,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		invoiceSvc:      invoiceSvc,
		subscriptionSvc: subscriptionSvc,
		commissionSvc:   commissionSvc,
		orderSvc:        orderSvc,
		quoteSvc:        quoteSvc,
		engagementSvc:   engagementSvc,
		notificationSvc: notificationSvc,
		cache:           c,
		alerts:          alerts,
		logger:          logger,
	}
}

// HandleWebhookEvent processes a verified Stripe webhook event
func (h *Handler) HandleWebhookEvent(ctx context.Context, event *stripeapi.Event) error {
	h.logger.Infow("processing Stripe webhook event",
		"event_id", event.ID,
		"event_type", event.Type,
	)

	switch types.WebhookEventType(event.Type) {
	case types.WebhookEventTypeCheckoutCompleted:
		return h.handleCheckoutCompleted(ctx, event)
	case types.WebhookEventTypeSubscriptionCreated:
		return h.handleSubscriptionCreated(ctx, event)
	case types.WebhookEventTypeSubscriptionUpdated:
		return h.handleSubscriptionUpdated(ctx, event)
	case types.WebhookEventTypeSubscriptionDeleted:
		return h.handleSubscriptionDeleted(ctx, event)
	case types.WebhookEventTypePaymentIntentSucceeded:
		return h.handlePaymentIntentSucceeded(ctx, event)
	case types.WebhookEventTypePaymentIntentPaymentFailed:
		return h.handlePaymentIntentFailed(ctx, event)
	case types.WebhookEventTypeInvoiceCreated:
		return h.handleInvoiceCreated(ctx, event)
	case types.WebhookEventTypeInvoiceFinalized, types.WebhookEventTypeInvoiceSent:
		return h.handleInvoiceFinalized(ctx, event)
	case types.WebhookEventTypeInvoicePaid:
		return h.handleInvoicePaid(ctx, event)
	case types.WebhookEventTypeInvoicePaymentFailed:
		return h.handleInvoicePaymentFailed(ctx, event)
	case types.WebhookEventTypeInvoiceVoided:
		return h.handleInvoiceVoided(ctx, event)
	case types.WebhookEventTypeInvoiceMarkedUncollectible:
		return h.handleInvoiceUncollectible(ctx, event)
	case types.WebhookEventTypeChargeRefunded:
		return h.handleChargeRefunded(ctx, event)
	default:
		h.logger.Infow("unhandled Stripe webhook event type", "type", event.Type)
		return nil
	}
}

// handleCheckoutCompleted handles checkout.session.completed. For payment
// mode sessions it materializes the invoice from the cart snapshot stored in
// session metadata and, when the session is already paid, runs the paid
// transition. Subscription mode sessions only trigger the trial confirmation;
// the subscription events carry the actual state.
func (h *Handler) handleCheckoutCompleted(ctx context.Context, event *stripeapi.Event) error {
	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return h.parseError(err, event, "checkout session")
	}

	companyID := session.Metadata["company_id"]
	if companyID == "" {
		h.logger.Warnw("checkout session without company_id metadata, skipping",
			"event_id", event.ID,
			"session_id", session.ID)
		return nil
	}

	customerEmail := session.CustomerEmail
	if customerEmail == "" && session.CustomerDetails != nil {
		customerEmail = session.CustomerDetails.Email
	}

	if session.Mode == stripeapi.CheckoutSessionModeSubscription {
		if trialEnd := session.Metadata["trial_end_date"]; trialEnd != "" && customerEmail != "" {
			if err := h.notificationSvc.SendTrialConfirmation(ctx, customerEmail, trialEnd); err != nil {
				h.logger.Errorw("failed to send trial confirmation",
					"error", err,
					"session_id", session.ID)
			}
		}
		return nil
	}

	snapshot := session.Metadata["cart_snapshot"]
	if snapshot == "" {
		h.logger.Warnw("checkout session without cart snapshot, skipping",
			"event_id", event.ID,
			"session_id", session.ID)
		return nil
	}
	items, err := cart.UnmarshalSnapshot(snapshot)
	if err != nil {
		// A malformed snapshot never heals on redelivery. Record and move on.
		h.logger.Errorw("invalid cart snapshot in checkout session, skipping",
			"error", err,
			"event_id", event.ID,
			"session_id", session.ID)
		h.alerts.CaptureException(err)
		return nil
	}

	var paymentIntentID *string
	if session.PaymentIntent != nil {
		paymentIntentID = lo.ToPtr(session.PaymentIntent.ID)
	}

	currency := string(session.Currency)
	params := service.CreateInvoiceParams{
		CompanyID:       companyID,
		ContactID:       session.Metadata["contact_id"],
		Currency:        currency,
		PaymentIntentID: paymentIntentID,
		Items:           items,
		Metadata: types.Metadata{
			"checkout_session_id": session.ID,
		},
	}
	if quoteID := session.Metadata["quote_id"]; quoteID != "" {
		params.QuoteID = lo.ToPtr(quoteID)
	}
	if session.TotalDetails != nil {
		params.TaxAmount = types.FromMinorUnits(session.TotalDetails.AmountTax, currency)
		params.ShippingAmount = types.FromMinorUnits(session.TotalDetails.AmountShipping, currency)
	}

	inv, created, err := h.invoiceSvc.CreateFromSnapshot(ctx, params)
	if err != nil {
		return h.primaryWriteFailure(err, event, "create invoice from checkout session")
	}
	if created {
		h.logger.Infow("invoice created from checkout session",
			"invoice_id", inv.ID,
			"session_id", session.ID)
	}

	if session.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusPaid {
		return h.applyPaidTransition(ctx, event, inv, paymentIntentID, time.Now().UTC(), customerEmail)
	}
	return nil
}

func (h *Handler) handlePaymentIntentSucceeded(ctx context.Context, event *stripeapi.Event) error {
	var paymentIntent stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
		return h.parseError(err, event, "payment intent")
	}

	inv, err := h.invoiceSvc.GetByPaymentIntentID(ctx, paymentIntent.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// the checkout session event creates the invoice; this one may
			// simply have arrived first
			h.logger.Debugw("no invoice for payment intent, skipping",
				"payment_intent_id", paymentIntent.ID,
				"event_id", event.ID)
			return nil
		}
		return err
	}

	customerEmail := paymentIntent.ReceiptEmail
	return h.applyPaidTransition(ctx, event, inv, lo.ToPtr(paymentIntent.ID), time.Unix(paymentIntent.Created, 0).UTC(), customerEmail)
}

func (h *Handler) handlePaymentIntentFailed(ctx context.Context, event *stripeapi.Event) error {
	var paymentIntent stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
		return h.parseError(err, event, "payment intent")
	}

	inv, err := h.invoiceSvc.GetByPaymentIntentID(ctx, paymentIntent.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			h.logger.Debugw("no invoice for failed payment intent, skipping",
				"payment_intent_id", paymentIntent.ID)
			return nil
		}
		return err
	}

	if err := h.invoiceSvc.ApplyPaymentFailed(ctx, inv); err != nil {
		return h.primaryWriteFailure(err, event, "record payment failure")
	}
	return nil
}

// handleInvoiceCreated registers a provider-originated invoice (for example a
// subscription billing cycle) that carries a cart snapshot in its metadata.
// Invoices created internally and pushed to Stripe already exist and are
// skipped.
func (h *Handler) handleInvoiceCreated(ctx context.Context, event *stripeapi.Event) error {
	var stripeInvoice stripeapi.Invoice
	if err := json.Unmarshal(event.Data.Raw, &stripeInvoice); err != nil {
		return h.parseError(err, event, "invoice")
	}

	existing, err := h.invoiceSvc.GetByProviderInvoiceID(ctx, stripeInvoice.ID)
	if err != nil && !ierr.IsNotFound(err) {
		return err
	}
	if existing != nil {
		h.logger.Debugw("invoice already registered, skipping",
			"invoice_id", existing.ID,
			"provider_invoice_id", stripeInvoice.ID)
		return nil
	}

	companyID := stripeInvoice.Metadata["company_id"]
	snapshot := stripeInvoice.Metadata["cart_snapshot"]
	if companyID == "" || snapshot == "" {
		h.logger.Warnw("provider invoice without reconciliation metadata, skipping",
			"event_id", event.ID,
			"provider_invoice_id", stripeInvoice.ID)
		return nil
	}

	items, err := cart.UnmarshalSnapshot(snapshot)
	if err != nil {
		h.logger.Errorw("invalid cart snapshot on provider invoice, skipping",
			"error", err,
			"provider_invoice_id", stripeInvoice.ID)
		h.alerts.CaptureException(err)
		return nil
	}

	params := service.CreateInvoiceParams{
		CompanyID:         companyID,
		ContactID:         stripeInvoice.Metadata["contact_id"],
		Currency:          string(stripeInvoice.Currency),
		ProviderInvoiceID: lo.ToPtr(stripeInvoice.ID),
		Items:             items,
	}
	if quoteID := stripeInvoice.Metadata["quote_id"]; quoteID != "" {
		params.QuoteID = lo.ToPtr(quoteID)
	}

	if _, _, err := h.invoiceSvc.CreateFromSnapshot(ctx, params); err != nil {
		return h.primaryWriteFailure(err, event, "create invoice from provider invoice")
	}
	return nil
}

func (h *Handler) handleInvoiceFinalized(ctx context.Context, event *stripeapi.Event) error {
	stripeInvoice, inv, err := h.resolveInvoice(ctx, event)
	if err != nil || inv == nil {
		return err
	}

	var number *string
	if stripeInvoice.Number != "" {
		number = lo.ToPtr(stripeInvoice.Number)
	}
	if err := h.invoiceSvc.ApplyFinalized(ctx, inv, number); err != nil {
		return h.primaryWriteFailure(err, event, "finalize invoice")
	}
	return nil
}

func (h *Handler) handleInvoicePaid(ctx context.Context, event *stripeapi.Event) error {
	stripeInvoice, inv, err := h.resolveInvoice(ctx, event)
	if err != nil || inv == nil {
		return err
	}

	paidAt := time.Now().UTC()
	if stripeInvoice.StatusTransitions != nil && stripeInvoice.StatusTransitions.PaidAt != 0 {
		paidAt = time.Unix(stripeInvoice.StatusTransitions.PaidAt, 0).UTC()
	}

	return h.applyPaidTransition(ctx, event, inv, nil, paidAt, stripeInvoice.CustomerEmail)
}

func (h *Handler) handleInvoicePaymentFailed(ctx context.Context, event *stripeapi.Event) error {
	_, inv, err := h.resolveInvoice(ctx, event)
	if err != nil || inv == nil {
		return err
	}
	if err := h.invoiceSvc.ApplyPaymentFailed(ctx, inv); err != nil {
		return h.primaryWriteFailure(err, event, "record payment failure")
	}
	return nil
}

func (h *Handler) handleInvoiceVoided(ctx context.Context, event *stripeapi.Event) error {
	_, inv, err := h.resolveInvoice(ctx, event)
	if err != nil || inv == nil {
		return err
	}
	if err := h.invoiceSvc.ApplyVoided(ctx, inv); err != nil {
		return h.primaryWriteFailure(err, event, "void invoice")
	}
	h.syncLegacyOrder(ctx, inv)
	return nil
}

func (h *Handler) handleInvoiceUncollectible(ctx context.Context, event *stripeapi.Event) error {
	_, inv, err := h.resolveInvoice(ctx, event)
	if err != nil || inv == nil {
		return err
	}
	if err := h.invoiceSvc.ApplyUncollectible(ctx, inv); err != nil {
		return h.primaryWriteFailure(err, event, "mark invoice uncollectible")
	}
	h.syncLegacyOrder(ctx, inv)
	return nil
}

func (h *Handler) handleChargeRefunded(ctx context.Context, event *stripeapi.Event) error {
	var charge stripeapi.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return h.parseError(err, event, "charge")
	}
	if charge.PaymentIntent == nil {
		h.logger.Warnw("refunded charge without payment intent, skipping",
			"event_id", event.ID,
			"charge_id", charge.ID)
		return nil
	}

	inv, err := h.invoiceSvc.GetByPaymentIntentID(ctx, charge.PaymentIntent.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			h.logger.Warnw("no invoice for refunded charge, skipping",
				"payment_intent_id", charge.PaymentIntent.ID)
			return nil
		}
		return err
	}

	amountRefunded := types.FromMinorUnits(charge.AmountRefunded, string(charge.Currency))
	if err := h.invoiceSvc.ApplyRefund(ctx, inv, amountRefunded); err != nil {
		return h.primaryWriteFailure(err, event, "record refund")
	}
	h.syncLegacyOrder(ctx, inv)
	return nil
}

func (h *Handler) handleSubscriptionCreated(ctx context.Context, event *stripeapi.Event) error {
	var stripeSub stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return h.parseError(err, event, "subscription")
	}

	companyID := stripeSub.Metadata["company_id"]
	if companyID == "" {
		h.logger.Warnw("subscription without company_id metadata, skipping",
			"event_id", event.ID,
			"provider_subscription_id", stripeSub.ID)
		return nil
	}

	sub := &subscription.Subscription{
		CompanyID:              companyID,
		ContactID:              stripeSub.Metadata["contact_id"],
		ProviderSubscriptionID: stripeSub.ID,
		Currency:               string(stripeSub.Currency),
		MonthlyPrice:           subscriptionPrice(&stripeSub),
		SubscriptionStatus:     mapSubscriptionStatus(stripeSub.Status),
		Metadata:               types.Metadata(stripeSub.Metadata),
		BaseModel:              types.GetDefaultBaseModel(),
	}
	if stripeSub.TrialEnd != 0 {
		sub.TrialEndDate = lo.ToPtr(time.Unix(stripeSub.TrialEnd, 0).UTC())
	}
	if len(stripeSub.Items.Data) > 0 {
		item := stripeSub.Items.Data[0]
		if item.CurrentPeriodStart != 0 {
			sub.CurrentPeriodStart = lo.ToPtr(time.Unix(item.CurrentPeriodStart, 0).UTC())
		}
		if item.CurrentPeriodEnd != 0 {
			sub.CurrentPeriodEnd = lo.ToPtr(time.Unix(item.CurrentPeriodEnd, 0).UTC())
		}
	}

	if _, err := h.subscriptionSvc.CreateFromProvider(ctx, sub); err != nil {
		return h.primaryWriteFailure(err, event, "create subscription")
	}

	// The trial confirmation is attempted on every delivery; the email
	// provider deduplicates on its side.
	if sub.SubscriptionStatus == types.SubscriptionStatusTrial && sub.TrialEndDate != nil {
		if customerEmail := stripeSub.Metadata["customer_email"]; customerEmail != "" {
			if err := h.notificationSvc.SendTrialConfirmation(ctx, customerEmail, sub.TrialEndDate.Format("2 January 2006")); err != nil {
				h.logger.Errorw("failed to send trial confirmation",
					"error", err,
					"provider_subscription_id", stripeSub.ID)
			}
		}
	}
	return nil
}

func (h *Handler) handleSubscriptionUpdated(ctx context.Context, event *stripeapi.Event) error {
	var stripeSub stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return h.parseError(err, event, "subscription")
	}

	update := service.SubscriptionUpdate{
		ProviderSubscriptionID: stripeSub.ID,
		MonthlyPrice:           subscriptionPrice(&stripeSub),
		Status:                 mapSubscriptionStatus(stripeSub.Status),
	}
	if len(stripeSub.Items.Data) > 0 {
		item := stripeSub.Items.Data[0]
		if item.CurrentPeriodStart != 0 {
			update.CurrentPeriodStart = lo.ToPtr(time.Unix(item.CurrentPeriodStart, 0).UTC())
		}
		if item.CurrentPeriodEnd != 0 {
			update.CurrentPeriodEnd = lo.ToPtr(time.Unix(item.CurrentPeriodEnd, 0).UTC())
		}
	}

	if err := h.subscriptionSvc.ApplyProviderUpdate(ctx, update); err != nil {
		return h.primaryWriteFailure(err, event, "apply subscription update")
	}
	return nil
}

func (h *Handler) handleSubscriptionDeleted(ctx context.Context, event *stripeapi.Event) error {
	var stripeSub stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return h.parseError(err, event, "subscription")
	}
	if err := h.subscriptionSvc.ApplyDeleted(ctx, stripeSub.ID); err != nil {
		return h.primaryWriteFailure(err, event, "cancel subscription")
	}
	return nil
}

// applyPaidTransition performs the paid transition and, when this delivery
// actually transitioned the invoice, runs the paid side effects. A replay
// that finds the invoice already paid does nothing further, which is what
// makes commissions and notifications exactly-once in practice.
func (h *Handler) applyPaidTransition(ctx context.Context, event *stripeapi.Event, inv *invoice.Invoice, paymentIntentID *string, paidAt time.Time, customerEmail string) error {
	transitioned, err := h.invoiceSvc.ApplyPaid(ctx, inv, paymentIntentID, paidAt)
	if err != nil {
		return h.primaryWriteFailure(err, event, "mark invoice paid")
	}
	if !transitioned {
		return nil
	}

	if _, err := h.commissionSvc.ProcessPaidInvoice(ctx, inv); err != nil {
		h.logger.Errorw("failed to process commission for paid invoice",
			"error", err,
			"invoice_id", inv.ID)
		h.alerts.CaptureException(err)
	}

	if inv.QuoteID != nil {
		if err := h.quoteSvc.MarkWon(ctx, *inv.QuoteID, inv.ID, paidAt); err != nil {
			h.logger.Errorw("failed to mark quote won",
				"error", err,
				"quote_id", *inv.QuoteID,
				"invoice_id", inv.ID)
		}
	}

	h.syncLegacyOrder(ctx, inv)

	invoiceNumber := lo.FromPtr(inv.InvoiceNumber)
	if customerEmail != "" {
		if err := h.notificationSvc.SendOrderConfirmation(ctx, customerEmail, invoiceNumber, inv.TotalAmount, inv.Currency); err != nil {
			h.logger.Errorw("failed to send order confirmation",
				"error", err,
				"invoice_id", inv.ID)
		}
	}
	if err := h.notificationSvc.NotifySalesRep(ctx, invoiceNumber, inv.CompanyID, inv.TotalAmount, inv.Currency); err != nil {
		h.logger.Errorw("failed to notify sales rep",
			"error", err,
			"invoice_id", inv.ID)
	}

	// the company portal caches order history; drop it so the paid order
	// shows up immediately
	h.cache.DeleteByPrefix(ctx, cache.PrefixPortal+inv.CompanyID)

	engEvent := engagement.NewEvent("order_paid", inv.CompanyID, fmt.Sprintf("invoice_paid:%s", inv.ID))
	engEvent.InvoiceID = lo.ToPtr(inv.ID)
	engEvent.Properties = types.Metadata{
		"total_amount": inv.TotalAmount.String(),
		"currency":     inv.Currency,
	}
	if err := h.engagementSvc.Record(ctx, engEvent); err != nil {
		h.logger.Errorw("failed to record engagement event",
			"error", err,
			"invoice_id", inv.ID)
	}

	return nil
}

// resolveInvoice parses the event payload and looks up the internal invoice
// by provider invoice ID. A missing invoice is logged and reported as
// (nil, nil): the event is acknowledged rather than retried forever.
func (h *Handler) resolveInvoice(ctx context.Context, event *stripeapi.Event) (*stripeapi.Invoice, *invoice.Invoice, error) {
	var stripeInvoice stripeapi.Invoice
	if err := json.Unmarshal(event.Data.Raw, &stripeInvoice); err != nil {
		return nil, nil, h.parseError(err, event, "invoice")
	}

	inv, err := h.invoiceSvc.GetByProviderInvoiceID(ctx, stripeInvoice.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			h.logger.Warnw("no internal invoice for provider invoice, skipping",
				"event_id", event.ID,
				"event_type", event.Type,
				"provider_invoice_id", stripeInvoice.ID)
			return &stripeInvoice, nil, nil
		}
		return nil, nil, err
	}
	return &stripeInvoice, inv, nil
}

func (h *Handler) syncLegacyOrder(ctx context.Context, inv *invoice.Invoice) {
	if err := h.orderSvc.SyncFromInvoice(ctx, inv); err != nil {
		h.logger.Errorw("failed to sync legacy order",
			"error", err,
			"invoice_id", inv.ID)
		h.alerts.CaptureException(err)
	}
}

func (h *Handler) parseError(err error, event *stripeapi.Event, object string) error {
	h.logger.Errorw("failed to parse webhook payload",
		"error", err,
		"event_id", event.ID,
		"event_type", event.Type)
	return ierr.WithError(err).
		WithHintf("Invalid %s data in webhook", object).
		Mark(ierr.ErrValidation)
}

// primaryWriteFailure records a failed financial write and acknowledges the
// event. Stripe redelivers on a schedule we do not control; a transient
// database failure is better surfaced through alerting than through a
// retry storm against a struggling database.
func (h *Handler) primaryWriteFailure(err error, event *stripeapi.Event, action string) error {
	h.logger.Errorw("webhook primary write failed",
		"error", err,
		"action", action,
		"event_id", event.ID,
		"event_type", event.Type)
	h.alerts.CaptureException(err)
	return nil
}

// subscriptionPrice sums the subscription items into a monthly price in
// major units.
func subscriptionPrice(stripeSub *stripeapi.Subscription) decimal.Decimal {
	total := decimal.Zero
	if stripeSub.Items == nil {
		return total
	}
	for _, item := range stripeSub.Items.Data {
		if item.Price == nil {
			continue
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		unit := types.FromMinorUnits(item.Price.UnitAmount, string(stripeSub.Currency))
		total = total.Add(unit.Mul(decimal.NewFromInt(qty)))
	}
	return total
}

func mapSubscriptionStatus(status stripeapi.SubscriptionStatus) types.SubscriptionStatus {
	switch status {
	case stripeapi.SubscriptionStatusTrialing:
		return types.SubscriptionStatusTrial
	case stripeapi.SubscriptionStatusActive:
		return types.SubscriptionStatusActive
	case stripeapi.SubscriptionStatusPastDue, stripeapi.SubscriptionStatusUnpaid:
		return types.SubscriptionStatusPastDue
	case stripeapi.SubscriptionStatusPaused:
		return types.SubscriptionStatusPaused
	case stripeapi.SubscriptionStatusCanceled, stripeapi.SubscriptionStatusIncompleteExpired:
		return types.SubscriptionStatusCancelled
	default:
		if strings.HasPrefix(string(status), "incomplete") {
			return types.SubscriptionStatusPastDue
		}
		return types.SubscriptionStatusActive
	}
}
