package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	keynoteMocks "conferenceapi/internal/keynote/mocks"
	"conferenceapi/internal/model"
	"conferenceapi/internal/repository"
	"conferenceapi/internal/repository/memory"
)

// countingRepo records Save calls on top of the in-memory store.
type countingRepo struct {
	*memory.ConferenceMemory
	mu    sync.Mutex
	saves int
}

func (r *countingRepo) Save(ctx context.Context, c *model.Conference) (*model.Conference, error) {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return r.ConferenceMemory.Save(ctx, c)
}

func (r *countingRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type fixture struct {
	ctx    context.Context
	repo   *countingRepo
	lookup *keynoteMocks.MockLookup
	svc    ConferenceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		repo:   &countingRepo{ConferenceMemory: memory.NewConferenceMemory()},
		lookup: new(keynoteMocks.MockLookup),
	}
	f.svc = NewConferenceService(f.repo, f.lookup)
	return f
}

func (f *fixture) create(t *testing.T, comments ...string) int64 {
	t.Helper()
	in := model.ConferenceInput{Title: ptr("GopherCon"), Kind: ptr(model.KindCommercial)}
	for _, c := range comments {
		in.Reviews = append(in.Reviews, model.ReviewInput{Comment: c})
	}
	id, err := f.svc.Create(f.ctx, in)
	require.NoError(t, err)
	return id
}

func (f *fixture) stored(t *testing.T, id int64) *model.Conference {
	t.Helper()
	c, err := f.repo.FindByID(f.ctx, id)
	require.NoError(t, err)
	return c
}

func reviewIDs(rs []model.Review) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func comments(rs []model.Review) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Comment)
	}
	return out
}

func TestCreate_AssignsIdentities(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "great", "too long")

	c := f.stored(t, id)
	assert.Equal(t, "GopherCon", c.Title)
	assert.Equal(t, model.KindCommercial, c.Kind)
	require.Len(t, c.Reviews, 2)
	for _, r := range c.Reviews {
		assert.NotZero(t, r.ID)
		assert.Equal(t, id, r.ConferenceID)
	}
}

func TestReplace_ReviewsGetNewIdentities(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a", "b")
	before := reviewIDs(f.stored(t, id).Reviews)

	err := f.svc.Replace(f.ctx, id, model.ConferenceInput{
		Title:   ptr("Renamed"),
		Reviews: []model.ReviewInput{{Comment: "c"}, {Comment: "d"}},
	})
	require.NoError(t, err)

	c := f.stored(t, id)
	assert.Equal(t, "Renamed", c.Title)
	assert.Equal(t, model.ConferenceKind(""), c.Kind, "absent fields are cleared")
	assert.Equal(t, []string{"c", "d"}, comments(c.Reviews))
	for _, old := range before {
		assert.NotContains(t, reviewIDs(c.Reviews), old)
		_, err := f.repo.FindReviewByID(f.ctx, old)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
}

func TestReplace_AllSimpleFieldsEqualInput(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a")

	date := time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC)
	in := model.ConferenceInput{
		Title:           ptr("Renamed"),
		Kind:            ptr(model.KindAcademic),
		Date:            &date,
		DurationMinutes: ptr(95.5),
		RegisteredCount: 240,
		Score:           ptr(4.25),
		KeynoteID:       ptr(int64(9)),
		Reviews:         []model.ReviewInput{{Comment: "z"}},
	}
	require.NoError(t, f.svc.Replace(f.ctx, id, in))

	c := f.stored(t, id)
	assert.Equal(t, "Renamed", c.Title)
	assert.Equal(t, model.KindAcademic, c.Kind)
	assert.True(t, date.Equal(c.Date))
	assert.Equal(t, 95.5, c.DurationMinutes)
	assert.Equal(t, 240, c.RegisteredCount)
	require.NotNil(t, c.Score)
	assert.Equal(t, 4.25, *c.Score)
	require.NotNil(t, c.KeynoteID)
	assert.Equal(t, int64(9), *c.KeynoteID)
	assert.Equal(t, []string{"z"}, comments(c.Reviews))
	f.lookup.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReplace_NullReviewsClearsCollection(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a", "b")
	before := reviewIDs(f.stored(t, id).Reviews)
	require.Len(t, before, 2)

	err := f.svc.Replace(f.ctx, id, model.ConferenceInput{Title: ptr("T"), Reviews: nil})
	require.NoError(t, err)

	c := f.stored(t, id)
	assert.Equal(t, "T", c.Title)
	assert.Empty(t, c.Reviews)
	assert.Zero(t, c.DurationMinutes)
	assert.Zero(t, c.RegisteredCount)
	assert.Nil(t, c.Score)
	assert.Nil(t, c.KeynoteID)
	assert.True(t, c.Date.IsZero())
	for _, old := range before {
		_, err := f.repo.FindReviewByID(f.ctx, old)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
}

func TestPatch_ReviewsTruthTable(t *testing.T) {
	tests := []struct {
		name         string
		reviews      []model.ReviewInput
		wantComments []string
		wantSameIDs  bool
	}{
		{name: "absent leaves reviews", reviews: nil, wantComments: []string{"a", "b"}, wantSameIDs: true},
		{name: "empty leaves reviews", reviews: []model.ReviewInput{}, wantComments: []string{"a", "b"}, wantSameIDs: true},
		{name: "non-empty replaces reviews", reviews: []model.ReviewInput{{Comment: "z"}}, wantComments: []string{"z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.create(t, "a", "b")
			before := reviewIDs(f.stored(t, id).Reviews)

			err := f.svc.Patch(f.ctx, id, model.ConferenceInput{Reviews: tt.reviews})
			require.NoError(t, err)

			c := f.stored(t, id)
			assert.Equal(t, tt.wantComments, comments(c.Reviews))
			if tt.wantSameIDs {
				assert.Equal(t, before, reviewIDs(c.Reviews))
			} else {
				for _, old := range before {
					assert.NotContains(t, reviewIDs(c.Reviews), old)
				}
			}
		})
	}
}

func TestPatch_OnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	require.NoError(t, f.svc.Patch(f.ctx, id, model.ConferenceInput{RegisteredCount: 40, Score: ptr(4.5)}))

	require.NoError(t, f.svc.Patch(f.ctx, id, model.ConferenceInput{DurationMinutes: ptr(90.0)}))

	c := f.stored(t, id)
	assert.Equal(t, "GopherCon", c.Title)
	assert.Equal(t, model.KindCommercial, c.Kind)
	assert.Equal(t, 40, c.RegisteredCount, "zero count is treated as absent")
	assert.Equal(t, 4.5, *c.Score)
	assert.Equal(t, 90.0, c.DurationMinutes)
}

func TestAppendReviews_AddsWithoutTouchingExisting(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a", "b")
	before := reviewIDs(f.stored(t, id).Reviews)

	err := f.svc.AppendReviews(f.ctx, id, []model.ReviewInput{{Comment: "c"}, {Comment: "d"}, {Comment: "e"}})
	require.NoError(t, err)

	c := f.stored(t, id)
	require.Len(t, c.Reviews, 5)
	assert.Equal(t, before, reviewIDs(c.Reviews)[:2])
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, comments(c.Reviews))
}

func TestDeleteReview(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "keep", "drop")
	other := f.create(t, "foreign")
	c := f.stored(t, id)
	drop := c.Reviews[1].ID
	foreign := f.stored(t, other).Reviews[0].ID

	t.Run("non-member review leaves conference unchanged", func(t *testing.T) {
		saves := f.repo.saveCount()
		err := f.svc.DeleteReview(f.ctx, id, foreign)
		assert.ErrorIs(t, err, ErrReviewNotFound)
		assert.Equal(t, saves, f.repo.saveCount())
		assert.Equal(t, c.Version, f.stored(t, id).Version)
		_, err = f.repo.FindReviewByID(f.ctx, foreign)
		assert.NoError(t, err)
	})

	t.Run("missing conference", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.DeleteReview(f.ctx, 999, drop), ErrNotFound)
	})

	t.Run("member review is removed from the store", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteReview(f.ctx, id, drop))
		assert.Equal(t, []string{"keep"}, comments(f.stored(t, id).Reviews))
		_, err := f.repo.FindReviewByID(f.ctx, drop)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestDelete_CascadesReviews(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a", "b")
	ids := reviewIDs(f.stored(t, id).Reviews)

	require.NoError(t, f.svc.Delete(f.ctx, id))

	_, err := f.svc.Get(f.ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, rid := range ids {
		_, err := f.repo.FindReviewByID(f.ctx, rid)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}

	assert.ErrorIs(t, f.svc.Delete(f.ctx, id), ErrNotFound)
}

func TestMissingConference(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(f.ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.ListReviews(f.ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Replace(f.ctx, 42, model.ConferenceInput{}), ErrNotFound)
	assert.ErrorIs(t, f.svc.Patch(f.ctx, 42, model.ConferenceInput{}), ErrNotFound)
	assert.ErrorIs(t, f.svc.AppendReviews(f.ctx, 42, nil), ErrNotFound)
	assert.Zero(t, f.repo.saveCount())
}

func TestEnrichment_NeverPersisted(t *testing.T) {
	f := newFixture(t)
	in := model.ConferenceInput{Title: ptr("KubeCon"), KeynoteID: ptr(int64(7))}
	id, err := f.svc.Create(f.ctx, in)
	require.NoError(t, err)
	f.lookup.On("GetByID", f.ctx, int64(7)).Return(&model.Keynote{ID: 7, LastName: "Doe"}, nil)

	saves := f.repo.saveCount()
	v, err := f.svc.Get(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, v.Keynote)
	assert.Equal(t, "Doe", v.Keynote.LastName)

	list, err := f.svc.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Doe", list[0].Keynote.LastName)

	assert.Equal(t, saves, f.repo.saveCount(), "reads never save")
	f.lookup.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestEnrichment_NoLookupWithoutKeynoteID(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	v, err := f.svc.Get(f.ctx, id)
	require.NoError(t, err)
	assert.Nil(t, v.Keynote)

	_, err = f.svc.List(f.ctx)
	require.NoError(t, err)
	f.lookup.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListReviews(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a")

	got, err := f.svc.ListReviews(f.ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Comment)

	id = f.create(t)
	got, err = f.svc.ListReviews(f.ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.svc.AppendReviews(f.ctx, id, []model.ReviewInput{{Comment: "x"}}))
		}()
	}
	wg.Wait()

	assert.Len(t, f.stored(t, id).Reviews, writers)
}

func TestKeyedLock_SerializesSameKey(t *testing.T) {
	ctx := context.Background()
	l := newKeyedLock()
	unlock, err := l.LockContext(ctx, 1)
	require.NoError(t, err)

	acquired := make(chan struct{})
	released := make(chan struct{})
	go func() {
		u, err := l.LockContext(ctx, 1)
		if err != nil {
			return
		}
		close(acquired)
		u()
		close(released)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(20 * time.Millisecond):
	}

	other, err := l.LockContext(ctx, 2)
	require.NoError(t, err)
	other()

	unlock()
	<-acquired
	<-released
	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestKeyedLock_ContextEndsWait(t *testing.T) {
	l := newKeyedLock()
	unlock, err := l.LockContext(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	u, err := l.LockContext(ctx, 1)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, u)
	assert.Less(t, time.Since(start), time.Second)

	l.mu.Lock()
	assert.Equal(t, 1, l.locks[1].refs, "abandoned waiter drops its reference")
	l.mu.Unlock()

	unlock()
	again, err := l.LockContext(context.Background(), 1)
	require.NoError(t, err)
	again()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestMutate_GivesUpWhenContextEndsWhileQueued(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a")

	svc := f.svc.(*conferenceService)
	unlock, err := svc.locks.LockContext(f.ctx, id)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(f.ctx)
	done := make(chan error, 2)
	go func() { done <- f.svc.AppendReviews(ctx, id, []model.ReviewInput{{Comment: "late"}}) }()
	go func() { done <- f.svc.Delete(ctx, id) }()
	cancel()

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("queued call did not return after cancel")
		}
	}
	assert.Equal(t, []string{"a"}, comments(f.stored(t, id).Reviews))
}
