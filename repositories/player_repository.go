package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerHasMatches = errors.New("player still referenced by recorded matches")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, p *models.Player) error
	FindByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Player, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error)
}

type sqlPlayerRepository struct {
	db *sql.DB
}

// NewSQLPlayerRepository works against both postgres and sqlite3; every query
// sticks to the syntax the two share.
func NewSQLPlayerRepository(db *sql.DB) PlayerRepository {
	return &sqlPlayerRepository{db: db}
}

func (r *sqlPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlPlayerRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Player) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	query := `INSERT INTO players (name, created_at) VALUES ($1, $2) RETURNING id`
	if err := r.getExecutor(exec).QueryRowContext(ctx, query, p.Name, p.CreatedAt).Scan(&p.ID); err != nil {
		return wrapStoreError("create player", err)
	}
	return nil
}

func (r *sqlPlayerRepository) scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqlPlayerRepository) FindByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	query := `SELECT id, name, created_at FROM players WHERE id = $1`
	p, err := r.scanPlayer(r.getExecutor(exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, wrapStoreError("find player", err)
	}
	return p, nil
}

// List returns players in registration order.
func (r *sqlPlayerRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Player, error) {
	query := `SELECT id, name, created_at FROM players ORDER BY id ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query)
	if err != nil {
		return nil, wrapStoreError("list players", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, err := r.scanPlayer(rows)
		if err != nil {
			return nil, wrapStoreError("scan player", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterate players", err)
	}
	return players, nil
}

func (r *sqlPlayerRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var n int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, wrapStoreError("count players", err)
	}
	return n, nil
}

// DeleteAll fails with ErrPlayerHasMatches while any match is recorded.
func (r *sqlPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM players`)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrPlayerHasMatches
		}
		return 0, wrapStoreError("delete players", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapStoreError("delete players", err)
	}
	return n, nil
}
