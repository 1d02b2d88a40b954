package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferenceapi/internal/model"
	"conferenceapi/internal/repository"
)

// ConferencePostgres is a PostgreSQL implementation of repository.ConferenceRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ConferencePostgres struct {
	db *sql.DB
}

// NewConferencePostgres creates a new ConferencePostgres repository.
func NewConferencePostgres(db *sql.DB) *ConferencePostgres {
	return &ConferencePostgres{db: db}
}

var _ repository.ConferenceRepository = (*ConferencePostgres)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

const selectConference = `
		SELECT id, title, kind, date, duration_minutes, registered_count, score, keynote_id, version
		FROM conferences
	`

func scanConference(row rowScanner) (model.Conference, error) {
	var (
		c       model.Conference
		kind    string
		date    sql.NullTime
		score   sql.NullFloat64
		keynote sql.NullInt64
	)
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&kind,
		&date,
		&c.DurationMinutes,
		&c.RegisteredCount,
		&score,
		&keynote,
		&c.Version,
	); err != nil {
		return model.Conference{}, err
	}
	c.Kind = model.ConferenceKind(kind)
	if date.Valid {
		c.Date = date.Time
	}
	if score.Valid {
		c.Score = &score.Float64
	}
	if keynote.Valid {
		c.KeynoteID = &keynote.Int64
	}
	return c, nil
}

func scanReview(row rowScanner) (model.Review, error) {
	var (
		r    model.Review
		date sql.NullTime
	)
	if err := row.Scan(&r.ID, &r.ConferenceID, &date, &r.Comment); err != nil {
		return model.Review{}, err
	}
	if date.Valid {
		r.Date = date.Time
	}
	return r, nil
}

// FindAll returns every conference with its reviews, ordered by id.
func (r *ConferencePostgres) FindAll(ctx context.Context) ([]model.Conference, error) {
	rows, err := r.db.QueryContext(ctx, selectConference+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Conference, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return items, nil
	}

	byConference, err := loadReviews(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Reviews = byConference[items[i].ID]
	}
	return items, nil
}

// FindByID fetches a single conference and its reviews.
func (r *ConferencePostgres) FindByID(ctx context.Context, id int64) (*model.Conference, error) {
	c, err := scanConference(r.db.QueryRowContext(ctx, selectConference+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	byConference, err := loadReviews(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Reviews = byConference[id]
	return &c, nil
}

// FindReviewByID fetches a single review row.
func (r *ConferencePostgres) FindReviewByID(ctx context.Context, id int64) (*model.Review, error) {
	const q = `SELECT id, conference_id, date, comment FROM reviews WHERE id = $1`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func loadReviews(ctx context.Context, q queryer, conferenceIDs []int64) (map[int64][]model.Review, error) {
	const qReviews = `
		SELECT id, conference_id, date, comment
		FROM reviews
		WHERE conference_id = ANY($1)
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, qReviews, pq.Array(conferenceIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.Review, len(conferenceIDs))
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out[rv.ConferenceID] = append(out[rv.ConferenceID], rv)
	}
	return out, rows.Err()
}

// Save writes the conference row and reconciles its reviews inside one transaction.
func (r *ConferencePostgres) Save(ctx context.Context, c *model.Conference) (out *model.Conference, err error) {
	stored := c.Clone()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if stored.ID == 0 {
		err = insertConference(ctx, tx, &stored)
	} else {
		err = updateConference(ctx, tx, &stored)
	}
	if err != nil {
		return nil, err
	}

	if err = reconcileReviews(ctx, tx, &stored); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &stored, nil
}

func insertConference(ctx context.Context, tx *sql.Tx, c *model.Conference) error {
	const q = `
		INSERT INTO conferences (title, kind, date, duration_minutes, registered_count, score, keynote_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, version
	`
	return tx.QueryRowContext(ctx, q,
		c.Title,
		string(c.Kind),
		nullTime(c),
		c.DurationMinutes,
		c.RegisteredCount,
		c.Score,
		c.KeynoteID,
	).Scan(&c.ID, &c.Version)
}

func updateConference(ctx context.Context, tx *sql.Tx, c *model.Conference) error {
	const q = `
		UPDATE conferences
		SET title = $2, kind = $3, date = $4, duration_minutes = $5, registered_count = $6,
		    score = $7, keynote_id = $8, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $9
		RETURNING version
	`
	err := tx.QueryRowContext(ctx, q,
		c.ID,
		c.Title,
		string(c.Kind),
		nullTime(c),
		c.DurationMinutes,
		c.RegisteredCount,
		c.Score,
		c.KeynoteID,
		c.Version,
	).Scan(&c.Version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	// Nothing matched: tell a missing row apart from a stale version.
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM conferences WHERE id = $1)`, c.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return repository.ErrVersionConflict
	}
	return repository.ErrNotFound
}

// reconcileReviews deletes review rows no longer in the collection and inserts new ones.
func reconcileReviews(ctx context.Context, tx *sql.Tx, c *model.Conference) error {
	keep := make([]int64, 0, len(c.Reviews))
	for _, rv := range c.Reviews {
		if rv.ID != 0 {
			keep = append(keep, rv.ID)
		}
	}

	if len(keep) > 0 {
		// A duplicated id matches one row, so it fails the count too.
		const qOwned = `SELECT count(*) FROM reviews WHERE conference_id = $1 AND id = ANY($2)`
		var owned int
		if err := tx.QueryRowContext(ctx, qOwned, c.ID, pq.Array(keep)).Scan(&owned); err != nil {
			return fmt.Errorf("check review ownership: %w", err)
		}
		if owned != len(keep) {
			return fmt.Errorf("%w: conference %d owns %d of %d kept reviews", repository.ErrReviewOwnership, c.ID, owned, len(keep))
		}
	}

	const qDelete = `DELETE FROM reviews WHERE conference_id = $1 AND NOT (id = ANY($2))`
	if _, err := tx.ExecContext(ctx, qDelete, c.ID, pq.Array(keep)); err != nil {
		return fmt.Errorf("delete orphan reviews: %w", err)
	}

	const qInsert = `
		INSERT INTO reviews (conference_id, date, comment)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	for i := range c.Reviews {
		rv := &c.Reviews[i]
		rv.ConferenceID = c.ID
		if rv.ID != 0 {
			continue
		}
		var date sql.NullTime
		if !rv.Date.IsZero() {
			date = sql.NullTime{Time: rv.Date, Valid: true}
		}
		if err := tx.QueryRowContext(ctx, qInsert, c.ID, date, rv.Comment).Scan(&rv.ID); err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
	}
	return nil
}

// DeleteByID removes a conference; reviews go with it through ON DELETE CASCADE.
func (r *ConferencePostgres) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM conferences WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullTime(c *model.Conference) sql.NullTime {
	if c.Date.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: c.Date, Valid: true}
}
