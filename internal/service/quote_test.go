package service

import (
	"testing"
	"time"

	"github.com/finecut/platform/internal/domain/quote"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/testutil"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service QuoteService
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewQuoteService(s.GetStores().QuoteRepo, s.GetLogger())
}

func (s *QuoteServiceSuite) seedQuote(status types.QuoteStatus) {
	s.GetStores().QuoteRepo.AddQuote(&quote.Quote{
		ID:          "quote_01",
		CompanyID:   "comp_01",
		ContactID:   "cont_01",
		QuoteStatus: status,
		TotalAmount: decimal.NewFromInt(155),
		BaseModel:   types.GetDefaultBaseModel(),
	})
}

func (s *QuoteServiceSuite) TestMarkWonLinksInvoice() {
	s.seedQuote(types.QuoteStatusSent)

	paidAt := time.Now().UTC()
	s.NoError(s.service.MarkWon(s.GetContext(), "quote_01", "inv_01", paidAt))

	q, err := s.GetStores().QuoteRepo.Get(s.GetContext(), "quote_01")
	s.NoError(err)
	s.Equal(types.QuoteStatusWon, q.QuoteStatus)
	s.Equal("inv_01", lo.FromPtr(q.InvoiceID))
	s.Equal(paidAt, lo.FromPtr(q.WonAt))
}

func (s *QuoteServiceSuite) TestMarkWonIsIdempotent() {
	s.seedQuote(types.QuoteStatusSent)

	firstPaidAt := time.Now().UTC()
	s.NoError(s.service.MarkWon(s.GetContext(), "quote_01", "inv_01", firstPaidAt))
	s.NoError(s.service.MarkWon(s.GetContext(), "quote_01", "inv_02", firstPaidAt.Add(time.Hour)))

	q, err := s.GetStores().QuoteRepo.Get(s.GetContext(), "quote_01")
	s.NoError(err)
	s.Equal("inv_01", lo.FromPtr(q.InvoiceID))
	s.Equal(firstPaidAt, lo.FromPtr(q.WonAt))
}

func (s *QuoteServiceSuite) TestMarkWonUnknownQuoteReturnsNotFound() {
	err := s.service.MarkWon(s.GetContext(), "quote_missing", "inv_01", time.Now().UTC())
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
