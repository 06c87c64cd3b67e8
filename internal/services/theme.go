package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clubroster/internal/domain"
)

type themeService struct {
	mu             sync.Mutex
	store          domain.KeyValueStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewThemeService creates a ThemeService persisting under domain.KeyTheme.
func NewThemeService(store domain.KeyValueStore, logger *slog.Logger, timeout time.Duration) domain.ThemeService {
	return &themeService{store: store, logger: logger, contextTimeout: timeout}
}

// Get falls back to light when the preference is unset, unknown or unreadable.
func (s *themeService) Get(ctx context.Context) domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx)
}

func (s *themeService) getLocked(ctx context.Context) domain.Theme {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	raw, _, err := s.store.Get(ctx, domain.KeyTheme)
	if err != nil {
		s.logger.WarnContext(ctx, "theme preference unreadable", "err", err)
	}
	return domain.ParseTheme(raw)
}

func (s *themeService) Toggle(ctx context.Context) (domain.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.getLocked(ctx).Toggled()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.store.Set(ctx, domain.KeyTheme, string(next)); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	return next, nil
}
