package partner

import (
	"github.com/finecut/platform/internal/types"
)

// Association links a customer company to the distributor and sales rep who
// earn commission on its paid invoices.
type Association struct {
	ID            string `db:"id" json:"id"`
	DistributorID string `db:"distributor_id" json:"distributor_id"`
	CompanyID     string `db:"company_id" json:"company_id"`
	SalesRepID    string `db:"sales_rep_id" json:"sales_rep_id"`
	Active        bool   `db:"active" json:"active"`
	types.BaseModel
}
