package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// GenreRepo provides CRUD operations on the `genres` table. Deletion
// is guarded: a genre that is still referenced by any movie cannot be
// removed, the caller gets ErrGenreInUse instead of orphaned movies.
type GenreRepo struct{ db *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

// Create inserts a genre and populates the generated ID and timestamps.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM genres WHERE id=?", g.ID).
		Scan(&g.CreatedAt, &g.UpdatedAt)
}

// GetByID fetches a single genre. Returns ErrNotFound when absent.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM genres WHERE id=? LIMIT 1", id).
		Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Genre{}, ErrNotFound
	}
	return g, err
}

// List returns all genres ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM genres ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpdateName renames a genre. Returns ErrNotFound when the id does not
// exist and the raw driver error on a duplicate-name violation.
func (r *GenreRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE genres SET name=? WHERE id=?", name, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such genre" from "name unchanged".
		var exists uint64
		if scanErr := r.db.QueryRowContext(ctx,
			"SELECT id FROM genres WHERE id=? LIMIT 1", id).Scan(&exists); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrNotFound
			}
			return scanErr
		}
	}
	return nil
}

// Delete removes a genre unless a movie still references it.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM movies WHERE genre_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrGenreInUse
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM genres WHERE id=?", id)
	if err != nil {
		// A concurrent movie insert can still trip the FK constraint.
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrGenreInUse
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsDuplicateName reports whether a genre write failed on the unique
// name key (MySQL error 1062).
func IsDuplicateName(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
