package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ReviewInput is the inbound shape of a review. It never carries an id: every
// review received from a caller is a new review.
type ReviewInput struct {
	Date    *time.Time `json:"date"`
	Comment string     `json:"comment"`
}

// ConferenceInput is the inbound shape for create, replace and patch.
// Pointer fields distinguish "absent" from a zero value for patch merges.
// RegisteredCount uses zero as "not supplied".
type ConferenceInput struct {
	Title           *string         `json:"title"`
	Kind            *ConferenceKind `json:"kind"`
	Date            *time.Time      `json:"date"`
	DurationMinutes *float64        `json:"duration_minutes"`
	RegisteredCount int             `json:"registered_count"`
	Score           *float64        `json:"score"`
	Reviews         []ReviewInput   `json:"reviews"`
	KeynoteID       *int64          `json:"keynote_id"`
}

// Validate normalizes Kind and checks the numeric bounds. Score has no range.
func (in *ConferenceInput) Validate() error {
	if in.Kind != nil {
		k, err := ParseConferenceKind(string(*in.Kind))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		*in.Kind = k
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration_minutes must not be negative", ErrInvalidInput)
	}
	if in.RegisteredCount < 0 {
		return fmt.Errorf("%w: registered_count must not be negative", ErrInvalidInput)
	}
	return nil
}

// NewReview converts an input into a detached, identity-less review.
func (in ReviewInput) NewReview() Review {
	r := Review{Comment: in.Comment}
	if in.Date != nil {
		r.Date = *in.Date
	}
	return r
}

// NewConference maps the input 1:1 onto a new conference with new reviews.
func (in ConferenceInput) NewConference() Conference {
	c := Conference{}
	in.Overwrite(&c)
	for _, r := range in.Reviews {
		c.AddReview(r.NewReview())
	}
	return c
}

// Overwrite copies every simple field onto c, absent fields included (PUT semantics).
// Reviews are not touched.
func (in ConferenceInput) Overwrite(c *Conference) {
	c.Title = deref(in.Title)
	c.Kind = deref(in.Kind)
	c.Date = deref(in.Date)
	c.DurationMinutes = deref(in.DurationMinutes)
	c.RegisteredCount = in.RegisteredCount
	c.Score = copyPtr(in.Score)
	c.KeynoteID = copyPtr(in.KeynoteID)
}

// Merge copies only the supplied simple fields onto c (PATCH semantics).
// Reviews are not touched.
func (in ConferenceInput) Merge(c *Conference) {
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Kind != nil {
		c.Kind = *in.Kind
	}
	if in.Date != nil {
		c.Date = *in.Date
	}
	if in.DurationMinutes != nil {
		c.DurationMinutes = *in.DurationMinutes
	}
	if in.RegisteredCount != 0 {
		c.RegisteredCount = in.RegisteredCount
	}
	if in.Score != nil {
		c.Score = copyPtr(in.Score)
	}
	if in.KeynoteID != nil {
		c.KeynoteID = copyPtr(in.KeynoteID)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
