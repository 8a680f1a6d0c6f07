package pricing

import (
	"sort"

	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Tier is one rung of a pricing ladder. For the standard ladder UnitPrice is
// set; for the premium ladder DiscountPercent is set (as a fraction, 0.25 =
// 25% off).
type Tier struct {
	MinQuantity     int64           `db:"min_quantity" json:"min_quantity"`
	MaxQuantity     *int64          `db:"max_quantity" json:"max_quantity,omitempty"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unit_price"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
}

// Contains reports whether qty falls inside this tier's quantity range.
// A quantity exactly at MinQuantity belongs to this tier; a nil MaxQuantity
// means the tier is unbounded above.
func (t Tier) Contains(qty int64) bool {
	if qty < t.MinQuantity {
		return false
	}
	if t.MaxQuantity == nil {
		return true
	}
	return qty <= *t.MaxQuantity
}

// Ladder is an ordered list of tiers for one pricing regime.
type Ladder struct {
	Tier     types.PricingTier `json:"tier"`
	Currency string            `json:"currency"`
	Tiers    []Tier            `json:"tiers"`
}

// Validate checks the ladder is non-empty and its tiers are well formed
func (l *Ladder) Validate() error {
	if len(l.Tiers) == 0 {
		return ierr.NewError("ladder has no tiers").
			WithHintf("Ladder %s is empty", l.Tier).
			Mark(ierr.ErrValidation)
	}
	for _, t := range l.Tiers {
		if t.MinQuantity < 0 {
			return ierr.NewError("tier min_quantity must not be negative").
				WithHintf("Ladder %s has min_quantity %d", l.Tier, t.MinQuantity).
				Mark(ierr.ErrValidation)
		}
		if t.MaxQuantity != nil && *t.MaxQuantity < t.MinQuantity {
			return ierr.NewError("tier max_quantity below min_quantity").
				WithHintf("Ladder %s has an inverted tier range at %d", l.Tier, t.MinQuantity).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// TierFor resolves the tier a quantity falls into. Tiers are sorted ascending
// by MinQuantity first; a quantity above the top of the ladder silently
// clamps to the last (most discounted) tier. Lookups operate on a copy so
// concurrent reads of a cached ladder stay safe.
func (l *Ladder) TierFor(qty int64) Tier {
	tiers := make([]Tier, len(l.Tiers))
	copy(tiers, l.Tiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity < tiers[j].MinQuantity
	})

	for _, t := range tiers {
		if t.Contains(qty) {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Ladders bundles the two concurrently active ladders
type Ladders struct {
	Standard *Ladder `json:"standard"`
	Premium  *Ladder `json:"premium"`
}

func (l *Ladders) Validate() error {
	if l.Standard == nil || l.Premium == nil {
		return ierr.NewError("both standard and premium ladders are required").
			WithHint("Tier configuration is incomplete").
			Mark(ierr.ErrValidation)
	}
	if err := l.Standard.Validate(); err != nil {
		return err
	}
	return l.Premium.Validate()
}
