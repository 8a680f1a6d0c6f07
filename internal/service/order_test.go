package service

import (
	"testing"
	"time"

	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/testutil"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service OrderService
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewOrderService(s.GetStores().OrderRepo, s.GetLogger())
}

func (s *OrderServiceSuite) invoiceFixture() *invoice.Invoice {
	return &invoice.Invoice{
		ID:                "inv_01",
		CompanyID:         "comp_01",
		Currency:          "gbp",
		TotalAmount:       decimal.NewFromInt(155),
		InvoiceStatus:     types.InvoiceStatusSent,
		PaymentStatus:     types.PaymentStatusUnpaid,
		ProviderInvoiceID: lo.ToPtr("in_stripe_01"),
		BaseModel:         types.GetDefaultBaseModel(),
	}
}

func (s *OrderServiceSuite) TestSyncCreatesMirrorOrder() {
	inv := s.invoiceFixture()
	s.NoError(s.service.SyncFromInvoice(s.GetContext(), inv))

	ord, err := s.GetStores().OrderRepo.GetByProviderRef(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal("inv_01", lo.FromPtr(ord.InvoiceID))
	s.Equal(types.InvoiceStatusSent, ord.OrderStatus)
	s.True(ord.TotalAmount.Equal(decimal.NewFromInt(155)))
}

func (s *OrderServiceSuite) TestSyncUpdatesExistingOrderOnStatusChange() {
	inv := s.invoiceFixture()
	s.NoError(s.service.SyncFromInvoice(s.GetContext(), inv))

	paidAt := time.Now().UTC()
	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	s.NoError(s.service.SyncFromInvoice(s.GetContext(), inv))

	ord, err := s.GetStores().OrderRepo.GetByProviderRef(s.GetContext(), "in_stripe_01")
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, ord.OrderStatus)
	s.NotNil(ord.PaidAt)
	s.Equal(1, s.GetStores().OrderRepo.Count())
}

func (s *OrderServiceSuite) TestSyncIsIdempotentForSameStatus() {
	inv := s.invoiceFixture()
	s.NoError(s.service.SyncFromInvoice(s.GetContext(), inv))
	s.NoError(s.service.SyncFromInvoice(s.GetContext(), inv))
	s.Equal(1, s.GetStores().OrderRepo.Count())
}

func (s *OrderServiceSuite) TestSyncFallsBackToInvoiceIDAsProviderRef() {
	inv := s.invoiceFixture()
	inv.ProviderInvoiceID = nil
	s.NoError(s.service.SyncFromInvoice(s.GetContext(), inv))

	_, err := s.GetStores().OrderRepo.GetByProviderRef(s.GetContext(), "inv_01")
	s.NoError(err)
}
