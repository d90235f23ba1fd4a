package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/catalog"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// ReviewRepo is the review ledger. Every write runs inside one
// transaction that takes a row lock on the movie (SELECT ... FOR
// UPDATE), so concurrent writers on the same movie are serialized
// while writers on different movies never block each other. The
// derived rating/num_reviews columns are rewritten before commit,
// which keeps them indistinguishable from the ledger for any reader.
type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// AddOrReplace records a user's review for a movie. A second
// submission by the same user replaces the previous one via the
// (movie_id, user_id) unique key. It returns the movie with its
// refreshed aggregate and full review list.
func (r *ReviewRepo) AddOrReplace(ctx context.Context, movieID, userID uint64, username string, rating int, comment string) (model.Movie, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Movie{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the movie row for the duration of the read-modify-write.
	var lockedID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM movies WHERE id=? FOR UPDATE", movieID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, ErrNotFound
		}
		return model.Movie{}, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reviews (movie_id, user_id, username, rating, comment)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE username=VALUES(username), rating=VALUES(rating), comment=VALUES(comment)`,
		movieID, userID, username, rating, comment)
	if err != nil {
		return model.Movie{}, err
	}

	ratings, err := movieRatingsTx(ctx, tx, movieID)
	if err != nil {
		return model.Movie{}, err
	}
	avg, count := catalog.Aggregate(ratings)
	if _, err := tx.ExecContext(ctx,
		"UPDATE movies SET rating=?, num_reviews=? WHERE id=?",
		avg, count, movieID); err != nil {
		return model.Movie{}, err
	}

	row := tx.QueryRowContext(ctx, "SELECT "+movieCols+" FROM movies WHERE id=? LIMIT 1", movieID)
	m, err := scanMovie(row.Scan)
	if err != nil {
		return model.Movie{}, err
	}
	m.Reviews, err = listByMovie(ctx, tx, movieID)
	if err != nil {
		return model.Movie{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// ListByMovie returns all reviews for a movie, oldest first.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	return listByMovie(ctx, r.db, movieID)
}

// movieRatingsTx reads the rating values of all reviews on a movie
// inside the given transaction.
func movieRatingsTx(ctx context.Context, tx *sql.Tx, movieID uint64) ([]int, error) {
	rows, err := tx.QueryContext(ctx, "SELECT rating FROM reviews WHERE movie_id=?", movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		ratings = append(ratings, v)
	}
	return ratings, rows.Err()
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listByMovie(ctx context.Context, q querier, movieID uint64) ([]model.Review, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, movie_id, user_id, username, rating, comment, created_at, updated_at
		 FROM reviews WHERE movie_id=? ORDER BY created_at, id`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.MovieID, &rv.UserID, &rv.Username,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
