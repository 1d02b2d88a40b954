// Package keynote talks to the independently-owned keynote service. Keynotes are read
// at response time only; nothing in this package writes to the conference store.
package keynote

import (
	"context"
	"errors"
	"fmt"

	"conferenceapi/internal/model"
)

var (
	// ErrNotFound means the keynote service has no keynote with the requested id.
	ErrNotFound = errors.New("keynote not found")
	// ErrUnavailable covers transport failures, timeouts and unexpected responses.
	ErrUnavailable = errors.New("keynote service unavailable")
)

// Lookup fetches a keynote by id.
type Lookup interface {
	GetByID(ctx context.Context, id int64) (*model.Keynote, error)
}

// LookupError is returned by every Lookup implementation when a fetch fails.
// Err wraps ErrNotFound or ErrUnavailable.
type LookupError struct {
	KeynoteID int64
	Err       error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("keynote %d lookup: %v", e.KeynoteID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func notFound(id int64) error {
	return &LookupError{KeynoteID: id, Err: ErrNotFound}
}

func unavailable(id int64, cause error) error {
	return &LookupError{KeynoteID: id, Err: fmt.Errorf("%w: %v", ErrUnavailable, cause)}
}
