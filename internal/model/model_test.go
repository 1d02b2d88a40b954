package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseConferenceKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ConferenceKind
		wantErr bool
	}{
		{in: "Academic", want: KindAcademic},
		{in: "commercial", want: KindCommercial},
		{in: " COMMERCIAL ", want: KindCommercial},
		{in: "", want: ""},
		{in: "workshop", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConferenceKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConferenceInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      ConferenceInput
		wantErr bool
	}{
		{name: "empty input", in: ConferenceInput{}},
		{name: "lower-case kind", in: ConferenceInput{Kind: ptr(ConferenceKind("academic"))}},
		{name: "unknown kind", in: ConferenceInput{Kind: ptr(ConferenceKind("gala"))}, wantErr: true},
		{name: "negative duration", in: ConferenceInput{DurationMinutes: ptr(-1.0)}, wantErr: true},
		{name: "negative registered count", in: ConferenceInput{RegisteredCount: -3}, wantErr: true},
		{name: "negative score is allowed", in: ConferenceInput{Score: ptr(-4.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	in := ConferenceInput{Kind: ptr(ConferenceKind("academic"))}
	require.NoError(t, in.Validate())
	assert.Equal(t, KindAcademic, *in.Kind)
}

func TestConferenceInput_NewConference(t *testing.T) {
	day := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	in := ConferenceInput{
		Title:           ptr("GopherCon"),
		Kind:            ptr(KindCommercial),
		Date:            &day,
		DurationMinutes: ptr(90.0),
		RegisteredCount: 12,
		KeynoteID:       ptr(int64(7)),
		Reviews: []ReviewInput{
			{Date: &day, Comment: "great"},
			{Comment: "too long"},
		},
	}

	c := in.NewConference()

	assert.Zero(t, c.ID)
	assert.Equal(t, "GopherCon", c.Title)
	assert.Equal(t, KindCommercial, c.Kind)
	assert.Equal(t, day, c.Date)
	assert.Equal(t, 90.0, c.DurationMinutes)
	assert.Equal(t, 12, c.RegisteredCount)
	assert.Nil(t, c.Score)
	assert.Equal(t, int64(7), *c.KeynoteID)
	require.Len(t, c.Reviews, 2)
	assert.Zero(t, c.Reviews[0].ID)
	assert.Equal(t, "great", c.Reviews[0].Comment)
	assert.True(t, c.Reviews[1].Date.IsZero())
}

func TestConferenceInput_OverwriteClearsAbsentFields(t *testing.T) {
	c := Conference{
		ID:              3,
		Title:           "old",
		Kind:            KindAcademic,
		DurationMinutes: 60,
		RegisteredCount: 10,
		Score:           ptr(4.0),
		KeynoteID:       ptr(int64(2)),
		Reviews:         []Review{{ID: 1, ConferenceID: 3}},
	}

	ConferenceInput{Title: ptr("new")}.Overwrite(&c)

	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, "new", c.Title)
	assert.Equal(t, ConferenceKind(""), c.Kind)
	assert.Zero(t, c.DurationMinutes)
	assert.Zero(t, c.RegisteredCount)
	assert.Nil(t, c.Score)
	assert.Nil(t, c.KeynoteID)
	assert.Len(t, c.Reviews, 1, "overwrite leaves reviews to the caller")
}

func TestConferenceInput_Merge(t *testing.T) {
	base := Conference{
		Title:           "old",
		Kind:            KindAcademic,
		DurationMinutes: 60,
		RegisteredCount: 10,
		Score:           ptr(4.0),
		KeynoteID:       ptr(int64(2)),
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		c := base.Clone()
		ConferenceInput{Title: ptr("X")}.Merge(&c)

		want := base.Clone()
		want.Title = "X"
		assert.Equal(t, want, c)
	})

	t.Run("zero registered count is treated as absent", func(t *testing.T) {
		c := base.Clone()
		ConferenceInput{RegisteredCount: 0}.Merge(&c)
		assert.Equal(t, 10, c.RegisteredCount)

		ConferenceInput{RegisteredCount: 25}.Merge(&c)
		assert.Equal(t, 25, c.RegisteredCount)
	})

	t.Run("supplied zero duration is applied", func(t *testing.T) {
		c := base.Clone()
		ConferenceInput{DurationMinutes: ptr(0.0)}.Merge(&c)
		assert.Zero(t, c.DurationMinutes)
	})
}

func TestConference_RemoveReview(t *testing.T) {
	c := Conference{ID: 9, Reviews: []Review{
		{ID: 1, ConferenceID: 9, Comment: "a"},
		{ID: 2, ConferenceID: 9, Comment: "b"},
		{ID: 3, ConferenceID: 9, Comment: "c"},
	}}

	r, ok := c.RemoveReview(2)
	require.True(t, ok)
	assert.Equal(t, int64(2), r.ID)
	assert.Zero(t, r.ConferenceID, "removed review is detached")
	assert.Equal(t, []int64{1, 3}, reviewIDs(c.Reviews))

	_, ok = c.RemoveReview(42)
	assert.False(t, ok)
	assert.Len(t, c.Reviews, 2)
}

func TestConference_AddReviewAlwaysCreates(t *testing.T) {
	c := Conference{ID: 5}
	c.AddReview(Review{ID: 77, ConferenceID: 1, Comment: "x"})

	require.Len(t, c.Reviews, 1)
	assert.Zero(t, c.Reviews[0].ID)
	assert.Equal(t, int64(5), c.Reviews[0].ConferenceID)
}

func TestConference_CloneDoesNotAlias(t *testing.T) {
	c := Conference{Score: ptr(1.0), KeynoteID: ptr(int64(1)), Reviews: []Review{{ID: 1}}}
	cp := c.Clone()

	*cp.Score = 2
	*cp.KeynoteID = 2
	cp.Reviews[0].Comment = "changed"

	assert.Equal(t, 1.0, *c.Score)
	assert.Equal(t, int64(1), *c.KeynoteID)
	assert.Empty(t, c.Reviews[0].Comment)
}

func TestNewConferenceView(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	c := Conference{
		ID:        4,
		Title:     "Cloud Days",
		Kind:      KindAcademic,
		KeynoteID: ptr(int64(7)),
		Reviews:   []Review{{ID: 10, ConferenceID: 4, Date: day, Comment: "ok"}},
	}
	k := &Keynote{ID: 7, LastName: "Doe"}

	v := NewConferenceView(c, k)

	assert.Equal(t, "Academic", v.Kind)
	assert.Nil(t, v.Date)
	require.Len(t, v.Reviews, 1)
	assert.Equal(t, day, *v.Reviews[0].Date)
	require.NotNil(t, v.Keynote)
	assert.Equal(t, "Doe", v.Keynote.LastName)

	k.LastName = "Changed"
	assert.Equal(t, "Doe", v.Keynote.LastName, "view holds its own copy")

	empty := NewConferenceView(Conference{}, nil)
	assert.NotNil(t, empty.Reviews)
	assert.Nil(t, empty.Keynote)
}

func reviewIDs(rs []Review) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
