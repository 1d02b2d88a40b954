package service

import (
	"context"
	"fmt"
	"time"

	"conferenceapi/internal/model"
	"conferenceapi/internal/repository"
)

// SeedDemo stores two sample conferences with one review each when the store is empty.
// It returns how many conferences were created.
func SeedDemo(ctx context.Context, repo repository.ConferenceRepository, now time.Time) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: list conferences: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	samples := []struct {
		title    string
		duration float64
		keynote  int64
		count    int
		comment  string
	}{
		{"Spring Boot Conference", 120, 1, 21, "Good Conference"},
		{"Microservices Architecture", 90, 2, 35, "Excellent Content"},
	}

	for _, s := range samples {
		c := model.Conference{
			Title:           s.title,
			Kind:            model.KindAcademic,
			Date:            now,
			DurationMinutes: s.duration,
			RegisteredCount: s.count,
			KeynoteID:       &s.keynote,
		}
		c.AddReview(model.Review{Date: now, Comment: s.comment})
		if _, err := repo.Save(ctx, &c); err != nil {
			return 0, fmt.Errorf("seed: save %q: %w", s.title, err)
		}
	}
	return len(samples), nil
}
