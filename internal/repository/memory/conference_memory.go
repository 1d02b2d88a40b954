// Package memory provides an in-process repository.ConferenceRepository with the same
// semantics as the PostgreSQL one. It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"conferenceapi/internal/model"
	"conferenceapi/internal/repository"
)

type conferenceRow struct {
	conference model.Conference // Reviews is always nil here; rows live in reviews
	reviewIDs  []int64
}

// ConferenceMemory stores conferences and reviews in maps guarded by a mutex.
// Every returned value is a copy.
type ConferenceMemory struct {
	mu           sync.RWMutex
	conferences  map[int64]*conferenceRow
	reviews      map[int64]model.Review
	nextConfID   int64
	nextReviewID int64
}

// NewConferenceMemory returns an empty store.
func NewConferenceMemory() *ConferenceMemory {
	return &ConferenceMemory{
		conferences: make(map[int64]*conferenceRow),
		reviews:     make(map[int64]model.Review),
	}
}

var _ repository.ConferenceRepository = (*ConferenceMemory)(nil)

func (m *ConferenceMemory) FindAll(ctx context.Context) ([]model.Conference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.conferences))
	for id := range m.conferences {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.Conference, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.assemble(m.conferences[id]))
	}
	return out, nil
}

func (m *ConferenceMemory) FindByID(ctx context.Context, id int64) (*model.Conference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.conferences[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := m.assemble(row)
	return &c, nil
}

func (m *ConferenceMemory) FindReviewByID(ctx context.Context, id int64) (*model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rv, ok := m.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rv, nil
}

func (m *ConferenceMemory) Save(ctx context.Context, c *model.Conference) (*model.Conference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := c.Clone()
	row, exists := m.conferences[stored.ID]
	switch {
	case stored.ID == 0:
		row = nil
	case !exists:
		return nil, repository.ErrNotFound
	case row.conference.Version != stored.Version:
		return nil, repository.ErrVersionConflict
	}
	if err := checkOwnership(row, stored.Reviews); err != nil {
		return nil, err
	}

	if stored.ID == 0 {
		m.nextConfID++
		stored.ID = m.nextConfID
		stored.Version = 1
		row = &conferenceRow{}
		m.conferences[stored.ID] = row
	} else {
		stored.Version++
	}

	keep := make(map[int64]bool, len(stored.Reviews))
	for _, rv := range stored.Reviews {
		if rv.ID != 0 {
			keep[rv.ID] = true
		}
	}
	for _, id := range row.reviewIDs {
		if !keep[id] {
			delete(m.reviews, id)
		}
	}

	row.reviewIDs = make([]int64, 0, len(stored.Reviews))
	for i := range stored.Reviews {
		rv := &stored.Reviews[i]
		rv.ConferenceID = stored.ID
		if rv.ID == 0 {
			m.nextReviewID++
			rv.ID = m.nextReviewID
			m.reviews[rv.ID] = *rv
		}
		row.reviewIDs = append(row.reviewIDs, rv.ID)
	}

	row.conference = stored
	row.conference.Reviews = nil
	return &stored, nil
}

// checkOwnership rejects kept review ids that row does not own. A nil row owns nothing.
func checkOwnership(row *conferenceRow, reviews []model.Review) error {
	owned := make(map[int64]bool)
	if row != nil {
		for _, id := range row.reviewIDs {
			owned[id] = true
		}
	}
	seen := make(map[int64]bool, len(reviews))
	for _, rv := range reviews {
		if rv.ID == 0 {
			continue
		}
		if !owned[rv.ID] || seen[rv.ID] {
			return fmt.Errorf("%w: review %d", repository.ErrReviewOwnership, rv.ID)
		}
		seen[rv.ID] = true
	}
	return nil
}

func (m *ConferenceMemory) DeleteByID(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.conferences[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, rid := range row.reviewIDs {
		delete(m.reviews, rid)
	}
	delete(m.conferences, id)
	return nil
}

// assemble must be called with mu held.
func (m *ConferenceMemory) assemble(row *conferenceRow) model.Conference {
	c := row.conference.Clone()
	if len(row.reviewIDs) > 0 {
		c.Reviews = make([]model.Review, 0, len(row.reviewIDs))
		for _, id := range row.reviewIDs {
			c.Reviews = append(c.Reviews, m.reviews[id])
		}
	}
	return c
}
