package model

import (
	"fmt"
	"strings"
	"time"
)

// ConferenceKind classifies a conference.
type ConferenceKind string

const (
	KindAcademic   ConferenceKind = "Academic"
	KindCommercial ConferenceKind = "Commercial"
)

// ParseConferenceKind normalizes a kind name. Matching is case-insensitive; the empty
// string is accepted and means "unset".
func ParseConferenceKind(s string) (ConferenceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "academic":
		return KindAcademic, nil
	case "commercial":
		return KindCommercial, nil
	default:
		return "", fmt.Errorf("unknown conference kind %q", s)
	}
}

// Conference is the persisted aggregate root. It owns its Reviews and references a
// keynote speaker by id only; the keynote itself is never part of this record.
type Conference struct {
	ID              int64
	Title           string
	Kind            ConferenceKind
	Date            time.Time
	DurationMinutes float64
	RegisteredCount int
	Score           *float64
	KeynoteID       *int64
	Reviews         []Review
	// Version is compared on save to detect concurrent writers.
	Version int64
}

// Review is a child record of a Conference. ConferenceID is zero while detached.
type Review struct {
	ID           int64
	ConferenceID int64
	Date         time.Time
	Comment      string
}

// AddReview attaches r to c as a new review.
func (c *Conference) AddReview(r Review) {
	r.ID = 0
	r.ConferenceID = c.ID
	c.Reviews = append(c.Reviews, r)
}

// RemoveReview detaches the review with the given id and returns it.
// The second result is false when no such review is a member of c.
func (c *Conference) RemoveReview(reviewID int64) (Review, bool) {
	for i, r := range c.Reviews {
		if r.ID != reviewID {
			continue
		}
		c.Reviews = append(c.Reviews[:i:i], c.Reviews[i+1:]...)
		r.ConferenceID = 0
		return r, true
	}
	return Review{}, false
}

// ClearReviews drops every review. Saving c afterwards deletes them from storage.
func (c *Conference) ClearReviews() {
	c.Reviews = nil
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (c Conference) Clone() Conference {
	out := c
	if c.Score != nil {
		s := *c.Score
		out.Score = &s
	}
	if c.KeynoteID != nil {
		k := *c.KeynoteID
		out.KeynoteID = &k
	}
	if c.Reviews != nil {
		out.Reviews = make([]Review, len(c.Reviews))
		copy(out.Reviews, c.Reviews)
	}
	return out
}

// Keynote is a speaker record owned by the keynote service. It is read-only here.
type Keynote struct {
	ID        int64  `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
