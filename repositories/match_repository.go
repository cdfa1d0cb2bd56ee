package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrMatchPlayerInvalid = errors.New("match references an unregistered player")
	ErrMatchSamePlayer    = errors.New("match winner and loser must differ")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, m *models.Match) error
	List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error)
}

type sqlMatchRepository struct {
	db *sql.DB
}

func NewSQLMatchRepository(db *sql.DB) MatchRepository {
	return &sqlMatchRepository{db: db}
}

func (r *sqlMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	query := `INSERT INTO matches (winner, loser, created_at) VALUES ($1, $2, $3) RETURNING id`
	err := r.getExecutor(exec).QueryRowContext(ctx, query, m.WinnerID, m.LoserID, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return ErrMatchPlayerInvalid
		case isCheckViolation(err):
			return ErrMatchSamePlayer
		}
		return wrapStoreError("create match", err)
	}
	return nil
}

// List returns the match log in the order results were recorded.
func (r *sqlMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error) {
	query := `SELECT id, winner, loser, created_at FROM matches ORDER BY id ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query)
	if err != nil {
		return nil, wrapStoreError("list matches", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &m.CreatedAt); err != nil {
			return nil, wrapStoreError("scan match", err)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterate matches", err)
	}
	return matches, nil
}

func (r *sqlMatchRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var n int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, wrapStoreError("count matches", err)
	}
	return n, nil
}

func (r *sqlMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, wrapStoreError("delete matches", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapStoreError("delete matches", err)
	}
	return n, nil
}
