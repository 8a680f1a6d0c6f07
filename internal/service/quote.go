package service

import (
	"context"
	"time"

	"github.com/finecut/platform/internal/domain/quote"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/types"
)

// QuoteService handles quote lifecycle transitions driven by payment events.
type QuoteService interface {
	// MarkWon flips a quote to won when its linked invoice is paid. Replays
	// and already-won quotes are no-ops.
	MarkWon(ctx context.Context, quoteID, invoiceID string, paidAt time.Time) error
}

type quoteService struct {
	quoteRepo quote.Repository
	logger    *logger.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(quoteRepo quote.Repository, logger *logger.Logger) QuoteService {
	return &quoteService{
		quoteRepo: quoteRepo,
		logger:    logger,
	}
}

func (s *quoteService) MarkWon(ctx context.Context, quoteID, invoiceID string, paidAt time.Time) error {
	q, err := s.quoteRepo.Get(ctx, quoteID)
	if err != nil {
		return err
	}

	if q.QuoteStatus == types.QuoteStatusWon {
		s.logger.Debugw("quote already won, skipping",
			"quote_id", quoteID)
		return nil
	}

	q.QuoteStatus = types.QuoteStatusWon
	q.InvoiceID = &invoiceID
	q.WonAt = &paidAt
	q.UpdatedAt = time.Now().UTC()

	if err := s.quoteRepo.Update(ctx, q); err != nil {
		return err
	}

	s.logger.Infow("quote marked won",
		"quote_id", quoteID,
		"invoice_id", invoiceID)
	return nil
}
