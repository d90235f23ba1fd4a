package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieRepo provides CRUD operations on the `movies` table. The cast
// column holds a JSON array so the order of names survives the round
// trip. Rating and num_reviews are never written here: the review
// ledger is their single writer (see ReviewRepo), except that deleting
// a movie removes its reviews in the same transaction.
type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieCols = "id, name, year, detail, cast_json, genre_id, image, rating, num_reviews, created_at, updated_at"

func scanMovie(scan func(dest ...any) error) (model.Movie, error) {
	var (
		m        model.Movie
		castJSON []byte
		image    sql.NullString
	)
	err := scan(&m.ID, &m.Name, &m.Year, &m.Detail, &castJSON, &m.GenreID,
		&image, &m.Rating, &m.NumReviews, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Movie{}, err
	}
	if len(castJSON) > 0 {
		if err := json.Unmarshal(castJSON, &m.Cast); err != nil {
			return model.Movie{}, err
		}
	}
	if image.Valid {
		img := image.String
		m.Image = &img
	}
	return m, nil
}

// Create inserts a movie and populates the generated ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	castJSON, err := json.Marshal(m.Cast)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (name, year, detail, cast_json, genre_id, image) VALUES (?,?,?,?,?,?)",
		m.Name, m.Year, m.Detail, castJSON, m.GenreID, m.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// GetByID fetches a movie without its reviews. Returns ErrNotFound
// when absent.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+movieCols+" FROM movies WHERE id=? LIMIT 1", id)
	m, err := scanMovie(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrNotFound
	}
	return m, err
}

// ListAll returns the full catalog ordered by id ascending. Filtering
// and the display orderings are applied in memory by the catalog
// package so their tie-break rules live in one place.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+movieCols+" FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update rewrites the descriptive fields of a movie. Derived fields
// and reviews are untouched. Returns ErrNotFound when the id does not
// exist.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	castJSON, err := json.Marshal(m.Cast)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE movies SET name=?, year=?, detail=?, cast_json=?, genre_id=?, image=? WHERE id=?",
		m.Name, m.Year, m.Detail, castJSON, m.GenreID, m.Image, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// Delete removes a movie and its reviews in one transaction.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE movie_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
