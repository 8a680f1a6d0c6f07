package types

// CommissionPaymentStatus tracks payout state for each commission recipient
// independently.
type CommissionPaymentStatus string

const (
	CommissionPaymentPending CommissionPaymentStatus = "pending"
	CommissionPaymentPaid    CommissionPaymentStatus = "paid"
	CommissionPaymentVoid    CommissionPaymentStatus = "void"
)

func (s CommissionPaymentStatus) String() string {
	return string(s)
}

// QuoteStatus is the lifecycle status of a sales quote
type QuoteStatus string

const (
	QuoteStatusDraft QuoteStatus = "draft"
	QuoteStatusSent  QuoteStatus = "sent"
	QuoteStatusWon   QuoteStatus = "won"
	QuoteStatusLost  QuoteStatus = "lost"
)

func (s QuoteStatus) String() string {
	return string(s)
}
