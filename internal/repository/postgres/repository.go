// Package postgres contains the sqlx-backed implementations of the domain
// repository interfaces.
package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// wrapDBError maps driver errors onto the domain error marks: missing rows
// become ErrNotFound, unique constraint violations become ErrAlreadyExists,
// everything else ErrDatabase.
func wrapDBError(err error, hint string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHint(hint).
			Mark(ierr.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithHint(hint).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrDatabase)
}

// marshalMetadata serializes a metadata bag for a jsonb column. An empty bag
// is stored as an empty JSON object.
func marshalMetadata(m types.Metadata) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize metadata").
			Mark(ierr.ErrSystem)
	}
	return data, nil
}

func unmarshalMetadata(data []byte) (types.Metadata, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var m types.Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse stored metadata").
			Mark(ierr.ErrSystem)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
