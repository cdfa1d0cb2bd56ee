package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type StandingsService interface {
	Standings(ctx context.Context) ([]models.StandingEntry, error)
	Pairings(ctx context.Context) ([]models.Pairing, error)
	NextRound(ctx context.Context) (*models.RoundPlan, error)
}

type standingsService struct {
	store     *repositories.Store
	generator brackets.PairingGenerator
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

func NewStandingsService(store *repositories.Store, generator brackets.PairingGenerator, recorder *metrics.Recorder, logger *slog.Logger) StandingsService {
	if generator == nil {
		generator = brackets.NewSwissGenerator()
	}
	return &standingsService{
		store:     store,
		generator: generator,
		metrics:   recorder,
		logger:    loggerOrDefault(logger),
	}
}

// Standings recomputes the ranking from the full match log on every call.
func (s *standingsService) Standings(ctx context.Context) ([]models.StandingEntry, error) {
	players, matches, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	return brackets.ComputeStandings(players, matches), nil
}

func (s *standingsService) Pairings(ctx context.Context) ([]models.Pairing, error) {
	plan, err := s.NextRound(ctx)
	if err != nil {
		return nil, err
	}
	return plan.Pairings, nil
}

// NextRound pairs the current standings and lists which of those pairs are
// rematches. Rematches are kept; the list only makes them visible.
func (s *standingsService) NextRound(ctx context.Context) (*models.RoundPlan, error) {
	players, matches, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}

	standings := brackets.ComputeStandings(players, matches)
	pairings, err := s.generator.GeneratePairings(ctx, standings)
	if err != nil {
		reason := "generator"
		if errors.Is(err, brackets.ErrOddPlayerCount) {
			reason = "odd_player_count"
		}
		s.metrics.PairingFailed(reason)
		return nil, fmt.Errorf("failed to generate %s pairings: %w", s.generator.GetName(), err)
	}

	rematches := brackets.FindRematches(pairings, matches)
	if len(rematches) > 0 {
		s.logger.Warn("next round contains rematches", slog.Int("rematches", len(rematches)))
	}
	s.metrics.PairingsGenerated()

	return &models.RoundPlan{Pairings: pairings, Rematches: rematches}, nil
}
