package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"conferenceapi/internal/keynote"
	"conferenceapi/internal/model"
	"conferenceapi/internal/repository"
	"conferenceapi/internal/storage"
)

var (
	ErrInvalidID        = errors.New("id must be a positive integer")
	ErrNotFound         = errors.New("conference not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrConcurrentUpdate = errors.New("conference was modified concurrently")
)

// DefaultMaxSaveAttempts bounds how often a mutation is re-applied after a version conflict.
const DefaultMaxSaveAttempts = 3

// ConferenceService defines the use cases of the Conference aggregate.
type ConferenceService interface {
	// List returns every conference, each enriched with its keynote speaker.
	List(ctx context.Context) ([]model.ConferenceView, error)

	// Get returns one enriched conference.
	Get(ctx context.Context, id int64) (*model.ConferenceView, error)

	// ListReviews returns the reviews of one conference.
	ListReviews(ctx context.Context, id int64) ([]model.ReviewView, error)

	// Create stores a new conference with new reviews and returns its id.
	Create(ctx context.Context, in model.ConferenceInput) (int64, error)

	// Replace overwrites every simple field and replaces all reviews with new ones.
	Replace(ctx context.Context, id int64, in model.ConferenceInput) error

	// Patch overwrites supplied fields only. Reviews are replaced only when
	// in.Reviews is non-empty.
	Patch(ctx context.Context, id int64, in model.ConferenceInput) error

	// AppendReviews adds new reviews and never touches existing ones.
	AppendReviews(ctx context.Context, id int64, reviews []model.ReviewInput) error

	// DeleteReview detaches and deletes one review of a conference.
	DeleteReview(ctx context.Context, conferenceID, reviewID int64) error

	// Delete removes a conference together with its reviews.
	Delete(ctx context.Context, id int64) error
}

// Option configures a conference service.
type Option func(*conferenceService)

// WithKeynoteDegrade renders a failed keynote lookup as a null keynote instead of failing the read.
func WithKeynoteDegrade(degrade bool) Option {
	return func(s *conferenceService) { s.degrade = degrade }
}

// WithMaxSaveAttempts overrides DefaultMaxSaveAttempts. Values below 1 are ignored.
func WithMaxSaveAttempts(n int) Option {
	return func(s *conferenceService) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// WithArchive writes a JSON snapshot of every deleted conference under prefix.
func WithArchive(store storage.Storage, prefix string) Option {
	return func(s *conferenceService) {
		s.archive = store
		s.archivePrefix = prefix
	}
}

// WithLogger sets the service logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(s *conferenceService) {
		if log != nil {
			s.log = log
		}
	}
}

// conferenceService is a concrete implementation of ConferenceService.
type conferenceService struct {
	repo     repository.ConferenceRepository
	keynotes keynote.Lookup
	log      *zap.Logger
	tracer   trace.Tracer
	locks    *keyedLock

	degrade       bool
	maxAttempts   int
	archive       storage.Storage
	archivePrefix string
}

// NewConferenceService constructs a new ConferenceService.
func NewConferenceService(repo repository.ConferenceRepository, keynotes keynote.Lookup, opts ...Option) ConferenceService {
	s := &conferenceService{
		repo:        repo,
		keynotes:    keynotes,
		log:         zap.NewNop(),
		tracer:      otel.Tracer("conferenceapi/internal/service"),
		locks:       newKeyedLock(),
		maxAttempts: DefaultMaxSaveAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *conferenceService) List(ctx context.Context) ([]model.ConferenceView, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	out := make([]model.ConferenceView, 0, len(all))
	for _, c := range all {
		v, err := s.enrich(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *conferenceService) Get(ctx context.Context, id int64) (*model.ConferenceView, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.enrich(ctx, *c)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *conferenceService) ListReviews(ctx context.Context, id int64) ([]model.ReviewView, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewReviewViews(c.Reviews), nil
}

func (s *conferenceService) Create(ctx context.Context, in model.ConferenceInput) (int64, error) {
	c := in.NewConference()
	stored, err := s.repo.Save(ctx, &c)
	if err != nil {
		return 0, fmt.Errorf("create conference: %w", err)
	}
	return stored.ID, nil
}

func (s *conferenceService) Replace(ctx context.Context, id int64, in model.ConferenceInput) error {
	return s.mutate(ctx, id, func(c *model.Conference) error {
		in.Overwrite(c)
		c.ClearReviews()
		for _, r := range in.Reviews {
			c.AddReview(r.NewReview())
		}
		return nil
	})
}

func (s *conferenceService) Patch(ctx context.Context, id int64, in model.ConferenceInput) error {
	return s.mutate(ctx, id, func(c *model.Conference) error {
		in.Merge(c)
		if len(in.Reviews) > 0 {
			c.ClearReviews()
			for _, r := range in.Reviews {
				c.AddReview(r.NewReview())
			}
		}
		return nil
	})
}

func (s *conferenceService) AppendReviews(ctx context.Context, id int64, reviews []model.ReviewInput) error {
	return s.mutate(ctx, id, func(c *model.Conference) error {
		for _, r := range reviews {
			c.AddReview(r.NewReview())
		}
		return nil
	})
}

func (s *conferenceService) DeleteReview(ctx context.Context, conferenceID, reviewID int64) error {
	if reviewID <= 0 {
		return ErrInvalidID
	}
	return s.mutate(ctx, conferenceID, func(c *model.Conference) error {
		if _, ok := c.RemoveReview(reviewID); !ok {
			return ErrReviewNotFound
		}
		return nil
	})
}

// Delete archives the aggregate when configured, then deletes its row.
// The archived snapshot is removed again if the row could not be deleted.
func (s *conferenceService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	unlock, err := s.locks.LockContext(ctx, id)
	if err != nil {
		return fmt.Errorf("wait for conference %d: %w", id, err)
	}
	defer unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	key, err := s.archiveSnapshot(ctx, *c)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if key != "" {
			if delErr := s.archive.Delete(ctx, key); delErr != nil {
				return fmt.Errorf("delete conference failed: %v; rollback archive failed: %v", err, delErr)
			}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete conference: %w", err)
	}
	return nil
}

// mutate runs load, fn and save under the per-id lock. A version conflict
// re-reads the conference and re-applies fn.
func (s *conferenceService) mutate(ctx context.Context, id int64, fn func(c *model.Conference) error) (err error) {
	if id <= 0 {
		return ErrInvalidID
	}
	ctx, span := s.tracer.Start(ctx, "conference.mutate", trace.WithAttributes(attribute.Int64("conference.id", id)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	unlock, err := s.locks.LockContext(ctx, id)
	if err != nil {
		return fmt.Errorf("wait for conference %d: %w", id, err)
	}
	defer unlock()

	for attempt := 1; ; attempt++ {
		span.SetAttributes(attribute.Int("conference.save_attempts", attempt))
		c, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}

		_, err = s.repo.Save(ctx, c)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case !errors.Is(err, repository.ErrVersionConflict):
			return fmt.Errorf("save conference: %w", err)
		}

		if attempt >= s.maxAttempts {
			s.log.Warn("conference_save_conflict",
				zap.Int64("conference_id", id),
				zap.Int("attempts", attempt),
			)
			return ErrConcurrentUpdate
		}
	}
}

func (s *conferenceService) load(ctx context.Context, id int64) (*model.Conference, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find conference: %w", err)
	}
	return c, nil
}

// enrich builds the response view. The keynote is looked up from KeynoteID on
// every call and only ever lands in the view.
func (s *conferenceService) enrich(ctx context.Context, c model.Conference) (model.ConferenceView, error) {
	if c.KeynoteID == nil {
		return model.NewConferenceView(c, nil), nil
	}
	k, err := s.keynotes.GetByID(ctx, *c.KeynoteID)
	if err != nil {
		if !s.degrade {
			return model.ConferenceView{}, fmt.Errorf("conference %d: %w", c.ID, err)
		}
		s.log.Warn("keynote_lookup_failed",
			zap.Int64("conference_id", c.ID),
			zap.Int64("keynote_id", *c.KeynoteID),
			zap.Error(err),
		)
		k = nil
	}
	return model.NewConferenceView(c, k), nil
}

// archiveSnapshot returns the object key, or "" when archiving is disabled.
func (s *conferenceService) archiveSnapshot(ctx context.Context, c model.Conference) (string, error) {
	if s.archive == nil {
		return "", nil
	}
	b, err := json.Marshal(model.NewConferenceView(c, nil))
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}
	key := path.Join(s.archivePrefix, fmt.Sprintf("%d-%s.json", c.ID, uuid.NewString()))
	info, err := s.archive.Put(ctx, key, bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"conference-id": fmt.Sprintf("%d", c.ID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("archive conference: %w", err)
	}
	return info.Key, nil
}
