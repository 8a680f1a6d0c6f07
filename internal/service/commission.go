package service

import (
	"context"

	"github.com/finecut/platform/internal/config"
	"github.com/finecut/platform/internal/domain/commission"
	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/domain/partner"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// CommissionService computes partner and sales rep commissions for newly
// paid invoices.
type CommissionService interface {
	// ProcessPaidInvoice creates the commission record for a paid invoice.
	// It returns (nil, nil) when the company has no active distributor
	// association or a record already exists for the invoice.
	ProcessPaidInvoice(ctx context.Context, inv *invoice.Invoice) (*commission.Commission, error)
}

type commissionService struct {
	commissionRepo commission.Repository
	partnerRepo    partner.Repository
	cfg            *config.Configuration
	logger         *logger.Logger
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	commissionRepo commission.Repository,
	partnerRepo partner.Repository,
	cfg *config.Configuration,
	logger *logger.Logger,
) CommissionService {
	return &commissionService{
		commissionRepo: commissionRepo,
		partnerRepo:    partnerRepo,
		cfg:            cfg,
		logger:         logger,
	}
}

func (s *commissionService) ProcessPaidInvoice(ctx context.Context, inv *invoice.Invoice) (*commission.Commission, error) {
	assoc, err := s.partnerRepo.GetActiveByCompanyID(ctx, inv.CompanyID)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.logger.Debugw("no active partner association, skipping commission",
				"invoice_id", inv.ID,
				"company_id", inv.CompanyID)
			return nil, nil
		}
		return nil, err
	}

	exists, err := s.commissionRepo.ExistsForInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Infow("commission record already exists, skipping",
			"invoice_id", inv.ID)
		return nil, nil
	}

	partnerTotal, repTotal := s.calculate(inv)

	record := &commission.Commission{
		ID:                    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMMISSION),
		InvoiceID:             inv.ID,
		DistributorID:         assoc.DistributorID,
		CustomerID:            inv.CompanyID,
		SalesRepID:            assoc.SalesRepID,
		Currency:              inv.Currency,
		PartnerAmount:         partnerTotal,
		SalesRepAmount:        repTotal,
		PartnerPaymentStatus:  types.CommissionPaymentPending,
		SalesRepPaymentStatus: types.CommissionPaymentPending,
		BaseModel:             types.GetDefaultBaseModel(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.commissionRepo.Create(ctx, record); err != nil {
		// unique constraint on invoice_id is the final idempotency backstop
		if ierr.IsAlreadyExists(err) {
			s.logger.Infow("commission insert raced a duplicate delivery, skipping",
				"invoice_id", inv.ID)
			return nil, nil
		}
		return nil, err
	}

	s.logger.Infow("commission record created",
		"invoice_id", inv.ID,
		"distributor_id", assoc.DistributorID,
		"partner_amount", partnerTotal.String(),
		"sales_rep_amount", repTotal.String(),
	)
	return record, nil
}

// calculate sums per-line commissions. The partner rate depends on product
// type (tools and consumables earn different rates; anything else earns the
// consumable rate). The sales rep earns a fixed share of the remainder after
// partner commission, not of the gross line total.
func (s *commissionService) calculate(inv *invoice.Invoice) (partnerTotal, repTotal decimal.Decimal) {
	repRate := decimal.NewFromFloat(s.cfg.Commission.SalesRepRate)

	for _, line := range inv.LineItems {
		var partnerRate decimal.Decimal
		switch line.ProductType {
		case types.ProductTypeTool:
			partnerRate = decimal.NewFromFloat(s.cfg.Commission.PartnerRateTool)
		default:
			partnerRate = decimal.NewFromFloat(s.cfg.Commission.PartnerRateConsumable)
		}

		partnerLine := line.LineTotal.Mul(partnerRate)
		repLine := line.LineTotal.Sub(partnerLine).Mul(repRate)

		partnerTotal = partnerTotal.Add(partnerLine)
		repTotal = repTotal.Add(repLine)
	}

	precision := types.GetCurrencyPrecision(inv.Currency)
	return partnerTotal.Round(precision), repTotal.Round(precision)
}
