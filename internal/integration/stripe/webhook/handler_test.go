package webhook

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/domain/partner"
	"github.com/finecut/platform/internal/domain/quote"
	"github.com/finecut/platform/internal/sentry"
	"github.com/finecut/platform/internal/service"
	"github.com/finecut/platform/internal/testutil"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	stripeapi "github.com/stripe/stripe-go/v82"
)

// recordingNotifications captures outbound notifications for assertions
type recordingNotifications struct {
	mu                 sync.Mutex
	orderConfirmations []string
	trialConfirmations []string
	salesRepNotices    []string
}

func (r *recordingNotifications) SendOrderConfirmation(ctx context.Context, to string, invoiceNumber string, total decimal.Decimal, currency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orderConfirmations = append(r.orderConfirmations, to)
	return nil
}

func (r *recordingNotifications) SendTrialConfirmation(ctx context.Context, to string, trialEndDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trialConfirmations = append(r.trialConfirmations, to)
	return nil
}

func (r *recordingNotifications) NotifySalesRep(ctx context.Context, invoiceNumber string, companyID string, total decimal.Decimal, currency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.salesRepNotices = append(r.salesRepNotices, invoiceNumber)
	return nil
}

type WebhookHandlerSuite struct {
	testutil.BaseServiceTestSuite
	handler       *Handler
	notifications *recordingNotifications
}

func TestWebhookHandler(t *testing.T) {
	suite.Run(t, new(WebhookHandlerSuite))
}

func (s *WebhookHandlerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	alerts := sentry.NewService(s.GetConfig(), s.GetLogger())
	s.notifications = &recordingNotifications{}

	invoiceSvc := service.NewInvoiceService(stores.InvoiceRepo, s.GetLogger())
	subscriptionSvc := service.NewSubscriptionService(stores.SubscriptionRepo, alerts, s.GetLogger())
	commissionSvc := service.NewCommissionService(stores.CommissionRepo, stores.PartnerRepo, s.GetConfig(), s.GetLogger())
	orderSvc := service.NewOrderService(stores.OrderRepo, s.GetLogger())
	quoteSvc := service.NewQuoteService(stores.QuoteRepo, s.GetLogger())
	engagementSvc := service.NewEngagementService(stores.EngagementRepo, s.GetLogger())

	s.handler = NewHandler(
		invoiceSvc,
		subscriptionSvc,
		commissionSvc,
		orderSvc,
		quoteSvc,
		engagementSvc,
		s.notifications,
		s.GetCache(),
		alerts,
		s.GetLogger(),
	)
}

func (s *WebhookHandlerSuite) event(eventType string, payload interface{}) *stripeapi.Event {
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)
	return &stripeapi.Event{
		ID:   "evt_" + eventType,
		Type: stripeapi.EventType(eventType),
		Data: &stripeapi.EventData{Raw: raw},
	}
}

func (s *WebhookHandlerSuite) cartSnapshot() string {
	snapshot, err := cart.MarshalSnapshot([]cart.PricedItem{
		{
			Item: cart.Item{
				ProductCode: "CK-001",
				Quantity:    10,
				Tier:        types.PricingTierPremium,
				ProductType: types.ProductTypeTool,
				BasePrice:   decimal.NewFromInt(59),
			},
			UnitPrice: decimal.NewFromFloat(44.25),
			LineTotal: decimal.NewFromFloat(442.50),
		},
		{
			Item: cart.Item{
				ProductCode: "RUBBER-01",
				Quantity:    5,
				Tier:        types.PricingTierStandard,
				ProductType: types.ProductTypeConsumable,
				BasePrice:   decimal.NewFromInt(33),
			},
			UnitPrice: decimal.NewFromInt(33),
			LineTotal: decimal.NewFromInt(165),
		},
	})
	s.Require().NoError(err)
	return snapshot
}

func (s *WebhookHandlerSuite) checkoutSessionPayload(paymentStatus string, metadata map[string]string) map[string]interface{} {
	return map[string]interface{}{
		"id":             "cs_01",
		"mode":           "payment",
		"payment_status": paymentStatus,
		"currency":       "gbp",
		"customer_email": "buyer@example.com",
		"payment_intent": "pi_01",
		"metadata":       metadata,
		"total_details": map[string]interface{}{
			"amount_tax":      2000,
			"amount_shipping": 1000,
		},
	}
}

func (s *WebhookHandlerSuite) seedAssociation() {
	s.GetStores().PartnerRepo.AddAssociation(&partner.Association{
		ID:            "assoc_01",
		DistributorID: "dist_01",
		CompanyID:     "comp_01",
		SalesRepID:    "rep_01",
		Active:        true,
		BaseModel:     types.GetDefaultBaseModel(),
	})
}

func (s *WebhookHandlerSuite) TestCheckoutCompletedCreatesAndPaysInvoice() {
	s.seedAssociation()
	s.GetStores().QuoteRepo.AddQuote(&quote.Quote{
		ID:          "quote_01",
		CompanyID:   "comp_01",
		ContactID:   "cont_01",
		QuoteStatus: types.QuoteStatusSent,
		TotalAmount: decimal.NewFromFloat(637.50),
		BaseModel:   types.GetDefaultBaseModel(),
	})

	event := s.event("checkout.session.completed", s.checkoutSessionPayload("paid", map[string]string{
		"company_id":    "comp_01",
		"contact_id":    "cont_01",
		"quote_id":      "quote_01",
		"cart_snapshot": s.cartSnapshot(),
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))

	inv, err := s.GetStores().InvoiceRepo.GetByPaymentIntentID(s.GetContext(), "pi_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.Equal(types.PaymentStatusPaid, inv.PaymentStatus)
	s.True(inv.Subtotal.Equal(decimal.NewFromFloat(607.50)))
	s.True(inv.TotalAmount.Equal(decimal.NewFromFloat(637.50)))

	// commission: 442.50*0.20 + 165*0.10 = 105.00
	record, err := s.GetStores().CommissionRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.True(record.PartnerAmount.Equal(decimal.NewFromInt(105)),
		"expected 105, got %s", record.PartnerAmount)

	q, err := s.GetStores().QuoteRepo.Get(s.GetContext(), "quote_01")
	s.NoError(err)
	s.Equal(types.QuoteStatusWon, q.QuoteStatus)
	s.Equal(inv.ID, lo.FromPtr(q.InvoiceID))

	s.Equal(1, s.GetStores().OrderRepo.Count())
	s.Len(s.GetStores().EngagementRepo.Events(), 1)
	s.Equal([]string{"buyer@example.com"}, s.notifications.orderConfirmations)
	s.Len(s.notifications.salesRepNotices, 1)
}

func (s *WebhookHandlerSuite) TestDuplicateCheckoutDeliveryRunsSideEffectsOnce() {
	s.seedAssociation()

	event := s.event("checkout.session.completed", s.checkoutSessionPayload("paid", map[string]string{
		"company_id":    "comp_01",
		"cart_snapshot": s.cartSnapshot(),
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))

	s.Equal(1, s.GetStores().InvoiceRepo.Count())
	s.Equal(1, s.GetStores().CommissionRepo.Count())
	s.Equal(1, s.GetStores().OrderRepo.Count())
	s.Len(s.GetStores().EngagementRepo.Events(), 1)
	s.Len(s.notifications.orderConfirmations, 1)
}

func (s *WebhookHandlerSuite) TestUnpaidCheckoutCreatesDraftInvoiceOnly() {
	event := s.event("checkout.session.completed", s.checkoutSessionPayload("unpaid", map[string]string{
		"company_id":    "comp_01",
		"cart_snapshot": s.cartSnapshot(),
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))

	inv, err := s.GetStores().InvoiceRepo.GetByPaymentIntentID(s.GetContext(), "pi_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, inv.InvoiceStatus)
	s.Equal(0, s.GetStores().CommissionRepo.Count())
	s.Empty(s.notifications.orderConfirmations)
}

func (s *WebhookHandlerSuite) TestCheckoutWithoutCompanyIDIsAcknowledged() {
	event := s.event("checkout.session.completed", s.checkoutSessionPayload("paid", map[string]string{
		"cart_snapshot": s.cartSnapshot(),
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))
	s.Equal(0, s.GetStores().InvoiceRepo.Count())
}

func (s *WebhookHandlerSuite) TestCheckoutWithMalformedSnapshotIsAcknowledged() {
	event := s.event("checkout.session.completed", s.checkoutSessionPayload("paid", map[string]string{
		"company_id":    "comp_01",
		"cart_snapshot": "{not json",
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))
	s.Equal(0, s.GetStores().InvoiceRepo.Count())
}

func (s *WebhookHandlerSuite) TestPaymentIntentSucceededBeforeCheckoutIsSkipped() {
	// out-of-order delivery: the checkout session event has not created the
	// invoice yet, so this event is acknowledged and Stripe's redelivery of
	// the session event completes the flow
	event := s.event("payment_intent.succeeded", map[string]interface{}{
		"id":      "pi_unknown",
		"created": 1756600000,
	})
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))
	s.Equal(0, s.GetStores().InvoiceRepo.Count())
}

func (s *WebhookHandlerSuite) TestPaymentIntentSucceededPaysExistingInvoice() {
	s.seedAssociation()

	checkout := s.event("checkout.session.completed", s.checkoutSessionPayload("unpaid", map[string]string{
		"company_id":    "comp_01",
		"cart_snapshot": s.cartSnapshot(),
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), checkout))

	succeeded := s.event("payment_intent.succeeded", map[string]interface{}{
		"id":            "pi_01",
		"created":       1756600000,
		"receipt_email": "buyer@example.com",
	})
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), succeeded))

	inv, err := s.GetStores().InvoiceRepo.GetByPaymentIntentID(s.GetContext(), "pi_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.Equal(1, s.GetStores().CommissionRepo.Count())
}

func (s *WebhookHandlerSuite) TestInvoiceLifecycleFromProviderEvents() {
	invoicePayload := func() map[string]interface{} {
		return map[string]interface{}{
			"id":             "in_stripe_01",
			"currency":       "gbp",
			"number":         "FC-2026-0042",
			"customer_email": "buyer@example.com",
			"metadata": map[string]string{
				"company_id":    "comp_01",
				"cart_snapshot": s.cartSnapshot(),
			},
			"status_transitions": map[string]interface{}{
				"paid_at": 1756600000,
			},
		}
	}

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), s.event("invoice.created", invoicePayload())))

	inv, err := s.GetStores().InvoiceRepo.GetByProviderInvoiceID(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, inv.InvoiceStatus)

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), s.event("invoice.finalized", invoicePayload())))
	inv, err = s.GetStores().InvoiceRepo.GetByProviderInvoiceID(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, inv.InvoiceStatus)
	s.Equal("FC-2026-0042", lo.FromPtr(inv.InvoiceNumber))

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), s.event("invoice.paid", invoicePayload())))
	inv, err = s.GetStores().InvoiceRepo.GetByProviderInvoiceID(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.NotNil(inv.PaidAt)

	// replay of the paid event is a no-op
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), s.event("invoice.paid", invoicePayload())))
	s.Len(s.GetStores().EngagementRepo.Events(), 1)
}

func (s *WebhookHandlerSuite) TestInvoiceEventForUnknownInvoiceIsAcknowledged() {
	event := s.event("invoice.paid", map[string]interface{}{
		"id":       "in_stripe_unknown",
		"currency": "gbp",
	})
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))
}

func (s *WebhookHandlerSuite) TestInvoiceVoidedSyncsLegacyOrder() {
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), s.event("invoice.created", map[string]interface{}{
		"id":       "in_stripe_01",
		"currency": "gbp",
		"metadata": map[string]string{
			"company_id":    "comp_01",
			"cart_snapshot": s.cartSnapshot(),
		},
	})))

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), s.event("invoice.voided", map[string]interface{}{
		"id": "in_stripe_01",
	})))

	inv, err := s.GetStores().InvoiceRepo.GetByProviderInvoiceID(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoid, inv.InvoiceStatus)

	ord, err := s.GetStores().OrderRepo.GetByProviderRef(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoid, ord.OrderStatus)
}

func (s *WebhookHandlerSuite) TestChargeRefundedRecordsPartialRefund() {
	event := s.event("checkout.session.completed", s.checkoutSessionPayload("paid", map[string]string{
		"company_id":    "comp_01",
		"cart_snapshot": s.cartSnapshot(),
	}))
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))

	refund := s.event("charge.refunded", map[string]interface{}{
		"id":              "ch_01",
		"payment_intent":  "pi_01",
		"amount_refunded": 5000,
		"currency":        "gbp",
	})
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), refund))

	inv, err := s.GetStores().InvoiceRepo.GetByPaymentIntentID(s.GetContext(), "pi_01")
	s.NoError(err)
	s.Equal(types.PaymentStatusPartial, inv.PaymentStatus)
	s.True(inv.AmountRefunded.Equal(decimal.NewFromInt(50)))
}

func (s *WebhookHandlerSuite) subscriptionPayload(priceMinor int64, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":       "sub_stripe_01",
		"status":   status,
		"currency": "gbp",
		"metadata": map[string]string{
			"company_id": "comp_01",
		},
		"items": map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"quantity":             1,
					"current_period_start": 1756598400,
					"current_period_end":   1759276800,
					"price": map[string]interface{}{
						"unit_amount": priceMinor,
					},
				},
			},
		},
	}
}

func (s *WebhookHandlerSuite) TestSubscriptionRatchetAcrossEvents() {
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.created", s.subscriptionPayload(5000, "active"))))

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.updated", s.subscriptionPayload(7500, "active"))))

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.updated", s.subscriptionPayload(6000, "active"))))

	sub, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.True(sub.MonthlyPrice.Equal(decimal.NewFromInt(60)))
	s.True(sub.RatchetMax.Equal(decimal.NewFromInt(75)))

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Len(events, 3)
	s.Equal(types.SubscriptionEventDowngradeBelowRatchet, events[2].EventType)
}

func (s *WebhookHandlerSuite) TestSubscriptionDeletedCancels() {
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.created", s.subscriptionPayload(5000, "active"))))

	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.deleted", map[string]interface{}{"id": "sub_stripe_01"})))

	sub, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, sub.SubscriptionStatus)
}

func (s *WebhookHandlerSuite) TestSubscriptionWithoutCompanyIDIsAcknowledged() {
	payload := s.subscriptionPayload(5000, "active")
	payload["metadata"] = map[string]string{}
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.created", payload)))
}

func (s *WebhookHandlerSuite) TestTrialSubscriptionSendsConfirmation() {
	payload := s.subscriptionPayload(5000, "trialing")
	payload["trial_end"] = 1759276800
	payload["metadata"] = map[string]string{
		"company_id":     "comp_01",
		"customer_email": "buyer@example.com",
	}
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(),
		s.event("customer.subscription.created", payload)))

	sub, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.Equal(types.SubscriptionStatusTrial, sub.SubscriptionStatus)
	s.NotNil(sub.TrialEndDate)
	s.Equal([]string{"buyer@example.com"}, s.notifications.trialConfirmations)
}

func (s *WebhookHandlerSuite) TestUnhandledEventTypeIsAcknowledged() {
	event := s.event("customer.created", map[string]interface{}{"id": "cus_01"})
	s.NoError(s.handler.HandleWebhookEvent(s.GetContext(), event))
}

func (s *WebhookHandlerSuite) TestUnparseablePayloadReturnsValidationError() {
	event := &stripeapi.Event{
		ID:   "evt_bad",
		Type: stripeapi.EventType("checkout.session.completed"),
		Data: &stripeapi.EventData{Raw: json.RawMessage("{not json")},
	}
	s.Error(s.handler.HandleWebhookEvent(s.GetContext(), event))
}
