package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lab-inventory/internal/repositories"
)

// ViewStateServiceInterface persists per-session screen state.
type ViewStateServiceInterface interface {
	// Load decodes the stored state into dst and reports whether any was found.
	Load(ctx context.Context, sessionID, view string, dst interface{}) (bool, error)
	Save(ctx context.Context, sessionID, view string, state interface{}) error
}

type viewStateService struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewViewStateService(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) ViewStateServiceInterface {
	return &viewStateService{cache: cache, ttl: ttl, logger: logger.Named("view_state")}
}

func viewKey(sessionID, view string) string {
	return fmt.Sprintf("view:%s:%s", sessionID, view)
}

func (s *viewStateService) Load(ctx context.Context, sessionID, view string, dst interface{}) (bool, error) {
	raw, err := s.cache.Get(ctx, viewKey(sessionID, view))
	if errors.Is(err, repositories.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load view state %s: %w", view, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		// A stale or foreign blob resets the screen instead of breaking it.
		s.logger.Warn("discarding unreadable view state", zap.String("view", view), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *viewStateService) Save(ctx context.Context, sessionID, view string, state interface{}) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode view state %s: %w", view, err)
	}
	if err := s.cache.Set(ctx, viewKey(sessionID, view), string(raw), s.ttl); err != nil {
		return fmt.Errorf("save view state %s: %w", view, err)
	}
	return nil
}
