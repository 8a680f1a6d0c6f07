package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type invoiceRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewInvoiceRepository creates a new postgres invoice repository
func NewInvoiceRepository(db pgclient.IClient, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

// invoiceRow adds the jsonb metadata column to the domain model for scanning
type invoiceRow struct {
	invoice.Invoice
	MetadataJSON []byte `db:"metadata"`
}

const insertInvoiceQuery = `
INSERT INTO invoices (
	id, company_id, contact_id, quote_id, invoice_number, currency,
	subtotal, tax_amount, shipping_amount, total_amount, amount_refunded,
	invoice_status, payment_status, provider_invoice_id, payment_intent_id,
	paid_at, voided_at, finalized_at, metadata, status, created_at, updated_at
) VALUES (
	:id, :company_id, :contact_id, :quote_id, :invoice_number, :currency,
	:subtotal, :tax_amount, :shipping_amount, :total_amount, :amount_refunded,
	:invoice_status, :payment_status, :provider_invoice_id, :payment_intent_id,
	:paid_at, :voided_at, :finalized_at, :metadata, :status, :created_at, :updated_at
)`

const insertLineItemQuery = `
INSERT INTO invoice_line_items (
	id, invoice_id, product_code, product_type, quantity,
	unit_price, line_total, discount_applied, status, created_at, updated_at
) VALUES (
	:id, :invoice_id, :product_code, :product_type, :quantity,
	:unit_price, :line_total, :discount_applied, :status, :created_at, :updated_at
)`

const selectInvoiceQuery = `
SELECT id, company_id, contact_id, quote_id, invoice_number, currency,
	subtotal, tax_amount, shipping_amount, total_amount, amount_refunded,
	invoice_status, payment_status, provider_invoice_id, payment_intent_id,
	paid_at, voided_at, finalized_at, metadata, status, created_at, updated_at
FROM invoices`

const selectLineItemsQuery = `
SELECT id, invoice_id, product_code, product_type, quantity,
	unit_price, line_total, discount_applied, status, created_at, updated_at
FROM invoice_line_items
WHERE invoice_id = $1
ORDER BY created_at, id`

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	metadata, err := marshalMetadata(inv.Metadata)
	if err != nil {
		return err
	}
	row := invoiceRow{Invoice: *inv, MetadataJSON: metadata}

	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		q := r.db.Querier(txCtx)
		if _, err := sqlx.NamedExecContext(txCtx, q, insertInvoiceQuery, row); err != nil {
			return wrapDBError(err, "Failed to create invoice")
		}
		for _, line := range inv.LineItems {
			if _, err := sqlx.NamedExecContext(txCtx, q, insertLineItemQuery, line); err != nil {
				return wrapDBError(err, "Failed to create invoice line item")
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	return r.getOne(ctx, selectInvoiceQuery+" WHERE id = $1", id)
}

func (r *invoiceRepository) GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*invoice.Invoice, error) {
	return r.getOne(ctx, selectInvoiceQuery+" WHERE provider_invoice_id = $1", providerInvoiceID)
}

func (r *invoiceRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*invoice.Invoice, error) {
	return r.getOne(ctx, selectInvoiceQuery+" WHERE payment_intent_id = $1", paymentIntentID)
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	metadata, err := marshalMetadata(inv.Metadata)
	if err != nil {
		return err
	}
	row := invoiceRow{Invoice: *inv, MetadataJSON: metadata}

	query := `
UPDATE invoices SET
	invoice_number = :invoice_number,
	subtotal = :subtotal,
	tax_amount = :tax_amount,
	shipping_amount = :shipping_amount,
	total_amount = :total_amount,
	amount_refunded = :amount_refunded,
	invoice_status = :invoice_status,
	payment_status = :payment_status,
	provider_invoice_id = :provider_invoice_id,
	payment_intent_id = :payment_intent_id,
	paid_at = :paid_at,
	voided_at = :voided_at,
	finalized_at = :finalized_at,
	metadata = :metadata,
	updated_at = :updated_at
WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, row); err != nil {
		return wrapDBError(err, "Failed to update invoice")
	}
	return nil
}

func (r *invoiceRepository) getOne(ctx context.Context, query string, arg interface{}) (*invoice.Invoice, error) {
	var row invoiceRow
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &row, query, arg); err != nil {
		return nil, wrapDBError(err, "Invoice not found")
	}

	inv := row.Invoice
	metadata, err := unmarshalMetadata(row.MetadataJSON)
	if err != nil {
		return nil, err
	}
	inv.Metadata = metadata

	var lines []*invoice.LineItem
	if err := sqlx.SelectContext(ctx, r.db.Querier(ctx), &lines, selectLineItemsQuery, inv.ID); err != nil {
		return nil, wrapDBError(err, "Failed to load invoice line items")
	}
	inv.LineItems = lines
	return &inv, nil
}
