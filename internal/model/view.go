package model

import "time"

// ReviewView is the outbound shape of a review. The owning conference is not exposed.
type ReviewView struct {
	ID      int64      `json:"id"`
	Date    *time.Time `json:"date"`
	Comment string     `json:"comment"`
}

// ConferenceView is the response-only representation of a conference, including the
// keynote fetched for this response. It is never handed to a repository.
type ConferenceView struct {
	ID              int64        `json:"id"`
	Title           string       `json:"title"`
	Kind            string       `json:"kind"`
	Date            *time.Time   `json:"date"`
	DurationMinutes float64      `json:"duration_minutes"`
	RegisteredCount int          `json:"registered_count"`
	Score           *float64     `json:"score"`
	Reviews         []ReviewView `json:"reviews"`
	KeynoteID       *int64       `json:"keynote_id"`
	Keynote         *Keynote     `json:"keynote"`
}

// NewConferenceView assembles the response for c. keynote may be nil.
func NewConferenceView(c Conference, keynote *Keynote) ConferenceView {
	v := ConferenceView{
		ID:              c.ID,
		Title:           c.Title,
		Kind:            string(c.Kind),
		Date:            timePtr(c.Date),
		DurationMinutes: c.DurationMinutes,
		RegisteredCount: c.RegisteredCount,
		Score:           copyPtr(c.Score),
		Reviews:         NewReviewViews(c.Reviews),
		KeynoteID:       copyPtr(c.KeynoteID),
	}
	if keynote != nil {
		k := *keynote
		v.Keynote = &k
	}
	return v
}

// NewReviewViews maps reviews to their outbound shape, never returning nil.
func NewReviewViews(reviews []Review) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewView{ID: r.ID, Date: timePtr(r.Date), Comment: r.Comment})
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
