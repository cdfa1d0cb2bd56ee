package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// ResetResult reports how many rows a clear operation removed.
type ResetResult struct {
	MatchesDeleted int64 `json:"matches_deleted"`
	PlayersDeleted int64 `json:"players_deleted"`
}

// TournamentService owns the destructive clear operations.
type TournamentService interface {
	DeleteMatches(ctx context.Context) (*ResetResult, error)
	DeletePlayers(ctx context.Context) (*ResetResult, error)
	Reset(ctx context.Context) (*ResetResult, error)
}

type tournamentService struct {
	store    *repositories.Store
	logger   *slog.Logger
	notifier standingsNotifier
}

func NewTournamentService(store *repositories.Store, hub Broadcaster, logger *slog.Logger) TournamentService {
	logger = loggerOrDefault(logger)
	return &tournamentService{
		store:    store,
		logger:   logger,
		notifier: standingsNotifier{store: store, hub: hub, logger: logger},
	}
}

func (s *tournamentService) DeleteMatches(ctx context.Context) (*ResetResult, error) {
	n, err := s.store.Matches.DeleteAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete matches: %w", err)
	}
	s.logger.Info("matches deleted", slog.Int64("count", n))
	s.notifier.publish(ctx, brackets.MessageStandingsUpdated)
	return &ResetResult{MatchesDeleted: n}, nil
}

// DeletePlayers refuses while matches are recorded; use Reset to clear both.
func (s *tournamentService) DeletePlayers(ctx context.Context) (*ResetResult, error) {
	n, err := s.store.Players.DeleteAll(ctx, nil)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerHasMatches) {
			return nil, ErrPlayersHaveMatches
		}
		return nil, fmt.Errorf("failed to delete players: %w", err)
	}
	s.logger.Info("players deleted", slog.Int64("count", n))
	s.notifier.publish(ctx, brackets.MessageTournamentReset)
	return &ResetResult{PlayersDeleted: n}, nil
}

// Reset is the clear-all operation: matches, then players, in one transaction.
func (s *tournamentService) Reset(ctx context.Context) (*ResetResult, error) {
	var res ResetResult
	err := s.store.WithTx(ctx, nil, func(tx *sql.Tx) error {
		var err error
		if res.MatchesDeleted, err = s.store.Matches.DeleteAll(ctx, tx); err != nil {
			return err
		}
		res.PlayersDeleted, err = s.store.Players.DeleteAll(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset tournament: %w", err)
	}

	s.logger.Info("tournament reset",
		slog.Int64("matches_deleted", res.MatchesDeleted),
		slog.Int64("players_deleted", res.PlayersDeleted),
	)
	s.notifier.publish(ctx, brackets.MessageTournamentReset)
	return &res, nil
}
