package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferenceapi/internal/repository/memory"
)

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewConferenceMemory()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	n, err := SeedDemo(ctx, repo, now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Spring Boot Conference", all[0].Title)
	assert.Equal(t, int64(1), *all[0].KeynoteID)
	assert.Equal(t, int64(2), *all[1].KeynoteID)
	for _, c := range all {
		require.Len(t, c.Reviews, 1)
		assert.Equal(t, c.ID, c.Reviews[0].ConferenceID)
	}

	n, err = SeedDemo(ctx, repo, now)
	require.NoError(t, err)
	assert.Zero(t, n, "non-empty store is left alone")
}
