package cart

import (
	"encoding/json"

	ierr "github.com/finecut/platform/internal/errors"
)

// MarshalSnapshot serializes priced items into a compact JSON string suitable
// for a provider metadata bag. The snapshot is replayed by the webhook
// handler when a checkout completes before any internal invoice exists.
func MarshalSnapshot(items []PricedItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to serialize cart snapshot").
			Mark(ierr.ErrSystem)
	}
	return string(data), nil
}

// UnmarshalSnapshot parses a cart snapshot previously produced by
// MarshalSnapshot.
func UnmarshalSnapshot(snapshot string) ([]PricedItem, error) {
	var items []PricedItem
	if err := json.Unmarshal([]byte(snapshot), &items); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid cart snapshot in event metadata").
			Mark(ierr.ErrValidation)
	}
	return items, nil
}
