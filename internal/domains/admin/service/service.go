package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"infinite-ideas-hub/internal/infrastructure/database"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
)

// Counter returns one dashboard figure.
type Counter func(ctx context.Context) (int, error)

// PoolStater is satisfied by *database.PostgresDB.
type PoolStater interface {
	Stats() (*database.PoolStats, error)
}

type Stats struct {
	Counts map[string]int      `json:"counts"`
	Pool   *database.PoolStats `json:"pool,omitempty"`
}

type ServiceInterface interface {
	GetStats(ctx context.Context, identity *session.Identity) (*Stats, error)
}

type statsService struct {
	counters map[string]Counter
	pool     PoolStater
}

// NewStatsService takes named counters; pool may be nil.
func NewStatsService(counters map[string]Counter, pool PoolStater) ServiceInterface {
	return &statsService{counters: counters, pool: pool}
}

func (s *statsService) GetStats(ctx context.Context, identity *session.Identity) (*Stats, error) {
	if _, err := session.RequireRole(identity, session.RoleAdmin); err != nil {
		return nil, err
	}

	names := lo.Keys(s.counters)
	sort.Strings(names)

	var (
		mu     sync.Mutex
		counts = make(map[string]int, len(names))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		count := s.counters[name]
		g.Go(func() error {
			n, err := count(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			mu.Lock()
			counts[name] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, result.Internal(err)
	}

	stats := &Stats{Counts: counts}
	if s.pool != nil {
		pool, err := s.pool.Stats()
		if err != nil {
			log.Warn().Err(err).Msg("pool stats unavailable")
		} else {
			stats.Pool = pool
		}
	}
	return stats, nil
}
