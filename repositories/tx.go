package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/models"
)

// Store bundles the repositories with the handle they run on. Services
// receive a Store instead of opening connections themselves.
type Store struct {
	DB      *sql.DB
	Driver  string
	Players PlayerRepository
	Matches MatchRepository
}

func NewStore(conn *sql.DB, driver string) *Store {
	return &Store{
		DB:      conn,
		Driver:  driver,
		Players: NewSQLPlayerRepository(conn),
		Matches: NewSQLMatchRepository(conn),
	}
}

// WithTx runs fn inside a transaction, rolling back when fn returns an error
// or panics and committing otherwise.
func (s *Store) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.DB.BeginTx(ctx, opts)
	if err != nil {
		return wrapStoreError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = wrapStoreError("commit transaction", cErr)
		}
	}()

	return fn(tx)
}

func (s *Store) readOnlyOptions() *sql.TxOptions {
	if s.Driver == db.DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	// sqlite transactions are serializable already.
	return nil
}

// Snapshot reads the full player list and match log from one consistent view.
func (s *Store) Snapshot(ctx context.Context) (players []*models.Player, matches []*models.Match, err error) {
	err = s.WithTx(ctx, s.readOnlyOptions(), func(tx *sql.Tx) error {
		var txErr error
		if players, txErr = s.Players.List(ctx, tx); txErr != nil {
			return txErr
		}
		matches, txErr = s.Matches.List(ctx, tx)
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}
	return players, matches, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
