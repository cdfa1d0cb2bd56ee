package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type MatchService interface {
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
}

type matchService struct {
	store    *repositories.Store
	metrics  *metrics.Recorder
	logger   *slog.Logger
	notifier standingsNotifier
}

func NewMatchService(store *repositories.Store, hub Broadcaster, recorder *metrics.Recorder, logger *slog.Logger) MatchService {
	logger = loggerOrDefault(logger)
	return &matchService{
		store:    store,
		metrics:  recorder,
		logger:   logger,
		notifier: standingsNotifier{store: store, hub: hub, logger: logger},
	}
}

// ReportMatch records that winnerID beat loserID. Both players must exist and
// differ; the checks and the insert share one transaction, so either the
// whole result is stored or nothing is.
func (s *matchService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	if winnerID == loserID {
		return nil, fmt.Errorf("%w: winner and loser are both player %d", ErrInvalidMatch, winnerID)
	}

	match := &models.Match{WinnerID: winnerID, LoserID: loserID}
	err := s.store.WithTx(ctx, nil, func(tx *sql.Tx) error {
		for _, id := range []int{winnerID, loserID} {
			if _, err := s.store.Players.FindByID(ctx, tx, id); err != nil {
				if errors.Is(err, repositories.ErrPlayerNotFound) {
					return fmt.Errorf("%w: player %d is not registered", ErrInvalidMatch, id)
				}
				return err
			}
		}
		return s.store.Matches.Create(ctx, tx, match)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchPlayerInvalid), errors.Is(err, repositories.ErrMatchSamePlayer):
			return nil, fmt.Errorf("%w: %w", ErrInvalidMatch, err)
		case errors.Is(err, ErrInvalidMatch):
			return nil, err
		}
		return nil, fmt.Errorf("failed to report match %d beat %d: %w", winnerID, loserID, err)
	}

	s.metrics.MatchReported()
	s.logger.Info("match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", winnerID),
		slog.Int("loser_id", loserID),
	)
	s.notifier.publish(ctx, brackets.MessageStandingsUpdated)
	return match, nil
}

func (s *matchService) List(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.store.Matches.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
