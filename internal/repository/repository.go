package repository

import (
	"context"
	"errors"

	"conferenceapi/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, memory) inside this directory.

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by Save when the stored version differs from the one loaded.
	ErrVersionConflict = errors.New("version conflict")
	// ErrReviewOwnership is returned by Save when a kept review id is not one of the
	// conference's stored reviews, or appears twice.
	ErrReviewOwnership = errors.New("review not owned by conference")
)

// ConferenceRepository persists Conference aggregates together with their reviews.
// No business logic here, strictly persistence operations.
type ConferenceRepository interface {
	// FindAll returns every conference with its reviews, ordered by id.
	FindAll(ctx context.Context) ([]model.Conference, error)

	// FindByID returns a conference with its reviews or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Conference, error)

	// FindReviewByID returns a single review row or ErrNotFound.
	FindReviewByID(ctx context.Context, id int64) (*model.Review, error)

	// Save writes the conference and reconciles its reviews in one atomic step:
	// stored reviews missing from c.Reviews are deleted, reviews with ID 0 are inserted.
	// Any other review id must already belong to c (ErrReviewOwnership if not).
	// A conference with ID 0 is inserted. Otherwise the stored version must equal
	// c.Version (ErrVersionConflict if not). The stored aggregate is returned with
	// assigned ids and its new version.
	Save(ctx context.Context, c *model.Conference) (*model.Conference, error)

	// DeleteByID removes a conference and, by cascade, its reviews.
	// It returns ErrNotFound if nothing was deleted.
	DeleteByID(ctx context.Context, id int64) error
}
