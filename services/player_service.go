package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

const maxPlayerNameLength = 255

type PlayerService interface {
	Register(ctx context.Context, name string) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Count(ctx context.Context) (int, error)
}

type playerService struct {
	store    *repositories.Store
	metrics  *metrics.Recorder
	logger   *slog.Logger
	notifier standingsNotifier
}

func NewPlayerService(store *repositories.Store, hub Broadcaster, recorder *metrics.Recorder, logger *slog.Logger) PlayerService {
	logger = loggerOrDefault(logger)
	return &playerService{
		store:    store,
		metrics:  recorder,
		logger:   logger,
		notifier: standingsNotifier{store: store, hub: hub, logger: logger},
	}
}

// Register adds a player. Names need not be unique; the store assigns the id.
func (s *playerService) Register(ctx context.Context, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrPlayerNameRequired)
	}
	if utf8.RuneCountInString(name) > maxPlayerNameLength {
		return nil, fmt.Errorf("%w: %w (max %d characters)", ErrValidationFailed, ErrPlayerNameTooLong, maxPlayerNameLength)
	}

	player := &models.Player{Name: name}
	if err := s.store.Players.Create(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to register player %q: %w", name, err)
	}

	s.metrics.PlayerRegistered()
	s.logger.Info("player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	s.notifier.publish(ctx, brackets.MessageStandingsUpdated)
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]*models.Player, error) {
	players, err := s.store.Players.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Players.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}
