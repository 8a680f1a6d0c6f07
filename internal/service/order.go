package service

import (
	"context"
	"time"

	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/domain/order"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
)

// OrderService keeps the legacy orders table in step with the invoice table.
// The mirror is written as its own idempotent operation: a failure here never
// rolls back the invoice write, and a replay converges on the same row.
type OrderService interface {
	// SyncFromInvoice upserts the legacy order row mirroring an invoice
	SyncFromInvoice(ctx context.Context, inv *invoice.Invoice) error
}

type orderService struct {
	orderRepo order.Repository
	logger    *logger.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo order.Repository, logger *logger.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *orderService) SyncFromInvoice(ctx context.Context, inv *invoice.Invoice) error {
	providerRef := inv.ID
	if inv.ProviderInvoiceID != nil && *inv.ProviderInvoiceID != "" {
		providerRef = *inv.ProviderInvoiceID
	}

	existing, err := s.orderRepo.GetByProviderRef(ctx, providerRef)
	if err != nil && !ierr.IsNotFound(err) {
		return err
	}

	if existing == nil {
		ord := &order.Order{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
			CompanyID:   inv.CompanyID,
			InvoiceID:   lo.ToPtr(inv.ID),
			ProviderRef: providerRef,
			Currency:    inv.Currency,
			TotalAmount: inv.TotalAmount,
			OrderStatus: inv.InvoiceStatus,
			PaidAt:      inv.PaidAt,
			BaseModel:   types.GetDefaultBaseModel(),
		}
		if err := s.orderRepo.Create(ctx, ord); err != nil {
			if ierr.IsAlreadyExists(err) {
				s.logger.Infow("legacy order insert raced a duplicate delivery, skipping",
					"provider_ref", providerRef)
				return nil
			}
			return err
		}
		s.logger.Infow("legacy order created",
			"order_id", ord.ID,
			"invoice_id", inv.ID,
			"order_status", ord.OrderStatus)
		return nil
	}

	if existing.OrderStatus == inv.InvoiceStatus {
		s.logger.Debugw("legacy order already in sync, skipping",
			"order_id", existing.ID,
			"order_status", existing.OrderStatus)
		return nil
	}

	existing.OrderStatus = inv.InvoiceStatus
	existing.TotalAmount = inv.TotalAmount
	existing.PaidAt = inv.PaidAt
	existing.UpdatedAt = time.Now().UTC()
	if err := s.orderRepo.Update(ctx, existing); err != nil {
		return err
	}

	s.logger.Infow("legacy order updated",
		"order_id", existing.ID,
		"invoice_id", inv.ID,
		"order_status", existing.OrderStatus)
	return nil
}
