package service

import (
	"testing"
	"time"

	"github.com/finecut/platform/internal/domain/subscription"
	"github.com/finecut/platform/internal/sentry"
	"github.com/finecut/platform/internal/testutil"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SubscriptionService
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	alerts := sentry.NewService(s.GetConfig(), s.GetLogger())
	s.service = NewSubscriptionService(s.GetStores().SubscriptionRepo, alerts, s.GetLogger())
}

func (s *SubscriptionServiceSuite) newSubscription(price int64) *subscription.Subscription {
	return &subscription.Subscription{
		CompanyID:              "comp_01",
		ContactID:              "cont_01",
		ProviderSubscriptionID: "sub_stripe_01",
		Currency:               "gbp",
		MonthlyPrice:           decimal.NewFromInt(price),
		SubscriptionStatus:     types.SubscriptionStatusActive,
		BaseModel:              types.GetDefaultBaseModel(),
	}
}

func (s *SubscriptionServiceSuite) TestCreateSetsRatchetToOpeningPrice() {
	created, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)
	s.True(created)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.True(stored.RatchetMax.Equal(decimal.NewFromInt(50)))
	s.True(stored.MonthlyPrice.Equal(decimal.NewFromInt(50)))

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 1)
	s.Equal(types.SubscriptionEventCreated, events[0].EventType)
}

func (s *SubscriptionServiceSuite) TestCreateIsIdempotent() {
	created, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)
	s.True(created)

	created, err = s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)
	s.False(created)
}

func (s *SubscriptionServiceSuite) TestPriceIncreaseRaisesRatchet() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	err = s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_01",
		MonthlyPrice:           decimal.NewFromInt(75),
		Status:                 types.SubscriptionStatusActive,
	})
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.True(stored.MonthlyPrice.Equal(decimal.NewFromInt(75)))
	s.True(stored.RatchetMax.Equal(decimal.NewFromInt(75)))

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 2)
	s.Equal(types.SubscriptionEventPriceIncreased, events[1].EventType)
	s.True(events[1].OldPrice.Equal(decimal.NewFromInt(50)))
	s.True(events[1].NewPrice.Equal(decimal.NewFromInt(75)))
}

func (s *SubscriptionServiceSuite) TestDowngradeBelowRatchetAppliesPriceButKeepsRatchet() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	err = s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_01",
		MonthlyPrice:           decimal.NewFromInt(75),
		Status:                 types.SubscriptionStatusActive,
	})
	s.NoError(err)

	err = s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_01",
		MonthlyPrice:           decimal.NewFromInt(60),
		Status:                 types.SubscriptionStatusActive,
	})
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)

	// the reported price is applied but the high-water mark stands
	s.True(stored.MonthlyPrice.Equal(decimal.NewFromInt(60)))
	s.True(stored.RatchetMax.Equal(decimal.NewFromInt(75)))

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 3)
	s.Equal(types.SubscriptionEventDowngradeBelowRatchet, events[2].EventType)
	s.True(events[2].OldPrice.Equal(decimal.NewFromInt(75)))
	s.True(events[2].NewPrice.Equal(decimal.NewFromInt(60)))
	s.NotEmpty(events[2].Note)
}

func (s *SubscriptionServiceSuite) TestPriceAtRatchetIsNotAnAnomaly() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	err = s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_01",
		MonthlyPrice:           decimal.NewFromInt(50),
		Status:                 types.SubscriptionStatusActive,
	})
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.True(stored.RatchetMax.Equal(decimal.NewFromInt(50)))

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 1)
}

func (s *SubscriptionServiceSuite) TestStatusChangeAppendsEvent() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	err = s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_01",
		MonthlyPrice:           decimal.NewFromInt(50),
		Status:                 types.SubscriptionStatusPastDue,
	})
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, stored.SubscriptionStatus)

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 2)
	s.Equal(types.SubscriptionEventStatusChanged, events[1].EventType)
	s.Equal(types.SubscriptionStatusActive, lo.FromPtr(events[1].OldStatus))
	s.Equal(types.SubscriptionStatusPastDue, lo.FromPtr(events[1].NewStatus))
}

func (s *SubscriptionServiceSuite) TestUpdateForUnknownSubscriptionIsSkipped() {
	err := s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_unknown",
		MonthlyPrice:           decimal.NewFromInt(50),
		Status:                 types.SubscriptionStatusActive,
	})
	s.NoError(err)
}

func (s *SubscriptionServiceSuite) TestUpdateAdvancesBillingPeriod() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	err = s.service.ApplyProviderUpdate(s.GetContext(), SubscriptionUpdate{
		ProviderSubscriptionID: "sub_stripe_01",
		MonthlyPrice:           decimal.NewFromInt(50),
		Status:                 types.SubscriptionStatusActive,
		CurrentPeriodStart:     lo.ToPtr(start),
		CurrentPeriodEnd:       lo.ToPtr(end),
	})
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.Equal(start, lo.FromPtr(stored.CurrentPeriodStart))
	s.Equal(end, lo.FromPtr(stored.CurrentPeriodEnd))
}

func (s *SubscriptionServiceSuite) TestDeletedCancelsSubscription() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	err = s.service.ApplyDeleted(s.GetContext(), "sub_stripe_01")
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, stored.SubscriptionStatus)
	s.NotNil(stored.CancelledAt)

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 2)
	s.Equal(types.SubscriptionEventCancelled, events[1].EventType)
}

func (s *SubscriptionServiceSuite) TestDeletedIsIdempotent() {
	_, err := s.service.CreateFromProvider(s.GetContext(), s.newSubscription(50))
	s.NoError(err)

	s.NoError(s.service.ApplyDeleted(s.GetContext(), "sub_stripe_01"))
	s.NoError(s.service.ApplyDeleted(s.GetContext(), "sub_stripe_01"))

	stored, err := s.GetStores().SubscriptionRepo.GetByProviderSubscriptionID(s.GetContext(), "sub_stripe_01")
	s.NoError(err)

	events, err := s.GetStores().SubscriptionRepo.ListEvents(s.GetContext(), stored.ID)
	s.NoError(err)
	s.Len(events, 2)
}

func (s *SubscriptionServiceSuite) TestDeletedForUnknownSubscriptionIsSkipped() {
	s.NoError(s.service.ApplyDeleted(s.GetContext(), "sub_stripe_unknown"))
}
