package service

import (
	"testing"

	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/domain/partner"
	"github.com/finecut/platform/internal/testutil"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CommissionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CommissionService
}

func TestCommissionService(t *testing.T) {
	suite.Run(t, new(CommissionServiceSuite))
}

func (s *CommissionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCommissionService(
		s.GetStores().CommissionRepo,
		s.GetStores().PartnerRepo,
		s.GetConfig(),
		s.GetLogger(),
	)
}

func (s *CommissionServiceSuite) seedAssociation() {
	s.GetStores().PartnerRepo.AddAssociation(&partner.Association{
		ID:            "assoc_01",
		DistributorID: "dist_01",
		CompanyID:     "comp_01",
		SalesRepID:    "rep_01",
		Active:        true,
		BaseModel:     types.GetDefaultBaseModel(),
	})
}

func (s *CommissionServiceSuite) paidInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:            "inv_01",
		CompanyID:     "comp_01",
		Currency:      "gbp",
		InvoiceStatus: types.InvoiceStatusPaid,
		PaymentStatus: types.PaymentStatusPaid,
		LineItems: []*invoice.LineItem{
			{
				ProductCode: "CK-001",
				ProductType: types.ProductTypeTool,
				Quantity:    1,
				LineTotal:   decimal.NewFromInt(100),
			},
			{
				ProductCode: "RUBBER-01",
				ProductType: types.ProductTypeConsumable,
				Quantity:    5,
				LineTotal:   decimal.NewFromInt(200),
			},
		},
		BaseModel: types.GetDefaultBaseModel(),
	}
}

func (s *CommissionServiceSuite) TestCommissionRatesByProductType() {
	s.seedAssociation()

	record, err := s.service.ProcessPaidInvoice(s.GetContext(), s.paidInvoice())
	s.NoError(err)
	s.NotNil(record)

	// tool line earns 20% partner commission, consumable line 10%
	s.True(record.PartnerAmount.Equal(decimal.NewFromInt(40)),
		"expected 40, got %s", record.PartnerAmount)

	// rep earns 5% of the remainder after partner commission:
	// (100-20)*0.05 + (200-20)*0.05 = 13
	s.True(record.SalesRepAmount.Equal(decimal.NewFromInt(13)),
		"expected 13, got %s", record.SalesRepAmount)

	s.Equal("dist_01", record.DistributorID)
	s.Equal("rep_01", record.SalesRepID)
	s.Equal(types.CommissionPaymentPending, record.PartnerPaymentStatus)
	s.Equal(types.CommissionPaymentPending, record.SalesRepPaymentStatus)
}

func (s *CommissionServiceSuite) TestUnknownProductTypeEarnsConsumableRate() {
	s.seedAssociation()

	inv := s.paidInvoice()
	inv.LineItems = []*invoice.LineItem{
		{
			ProductCode: "MISC-01",
			Quantity:    1,
			LineTotal:   decimal.NewFromInt(100),
		},
	}

	record, err := s.service.ProcessPaidInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.NotNil(record)
	s.True(record.PartnerAmount.Equal(decimal.NewFromInt(10)))
}

func (s *CommissionServiceSuite) TestNoAssociationSkipsCommission() {
	record, err := s.service.ProcessPaidInvoice(s.GetContext(), s.paidInvoice())
	s.NoError(err)
	s.Nil(record)
	s.Equal(0, s.GetStores().CommissionRepo.Count())
}

func (s *CommissionServiceSuite) TestInactiveAssociationSkipsCommission() {
	s.GetStores().PartnerRepo.AddAssociation(&partner.Association{
		ID:            "assoc_01",
		DistributorID: "dist_01",
		CompanyID:     "comp_01",
		SalesRepID:    "rep_01",
		Active:        false,
		BaseModel:     types.GetDefaultBaseModel(),
	})

	record, err := s.service.ProcessPaidInvoice(s.GetContext(), s.paidInvoice())
	s.NoError(err)
	s.Nil(record)
}

func (s *CommissionServiceSuite) TestDuplicateInvoiceSkipsCommission() {
	s.seedAssociation()

	record, err := s.service.ProcessPaidInvoice(s.GetContext(), s.paidInvoice())
	s.NoError(err)
	s.NotNil(record)

	record, err = s.service.ProcessPaidInvoice(s.GetContext(), s.paidInvoice())
	s.NoError(err)
	s.Nil(record)
	s.Equal(1, s.GetStores().CommissionRepo.Count())
}

func (s *CommissionServiceSuite) TestCommissionRoundedToCurrencyPrecision() {
	s.seedAssociation()

	inv := s.paidInvoice()
	inv.LineItems = []*invoice.LineItem{
		{
			ProductCode: "CK-001",
			ProductType: types.ProductTypeTool,
			Quantity:    1,
			LineTotal:   decimal.NewFromFloat(44.25),
		},
	}

	record, err := s.service.ProcessPaidInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.NotNil(record)

	// 44.25 * 0.20 = 8.85; rep: (44.25 - 8.85) * 0.05 = 1.77
	s.True(record.PartnerAmount.Equal(decimal.NewFromFloat(8.85)))
	s.True(record.SalesRepAmount.Equal(decimal.NewFromFloat(1.77)))
}
