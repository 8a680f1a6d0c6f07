package types

// WebhookEventType represents the type of an inbound payment provider event.
// Values mirror Stripe's event names so the webhook endpoint can dispatch
// on event.Type directly.
type WebhookEventType string

const (
	WebhookEventTypeCheckoutCompleted          WebhookEventType = "checkout.session.completed"
	WebhookEventTypeSubscriptionCreated        WebhookEventType = "customer.subscription.created"
	WebhookEventTypeSubscriptionUpdated        WebhookEventType = "customer.subscription.updated"
	WebhookEventTypeSubscriptionDeleted        WebhookEventType = "customer.subscription.deleted"
	WebhookEventTypePaymentIntentSucceeded     WebhookEventType = "payment_intent.succeeded"
	WebhookEventTypePaymentIntentPaymentFailed WebhookEventType = "payment_intent.payment_failed"
	WebhookEventTypeInvoiceCreated             WebhookEventType = "invoice.created"
	WebhookEventTypeInvoiceFinalized           WebhookEventType = "invoice.finalized"
	WebhookEventTypeInvoiceSent                WebhookEventType = "invoice.sent"
	WebhookEventTypeInvoicePaid                WebhookEventType = "invoice.paid"
	WebhookEventTypeInvoicePaymentFailed       WebhookEventType = "invoice.payment_failed"
	WebhookEventTypeInvoiceVoided              WebhookEventType = "invoice.voided"
	WebhookEventTypeInvoiceMarkedUncollectible WebhookEventType = "invoice.marked_uncollectible"
	WebhookEventTypeChargeRefunded             WebhookEventType = "charge.refunded"
)

func (w WebhookEventType) String() string {
	return string(w)
}
