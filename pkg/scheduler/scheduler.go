package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/db"
	"danmiz.net/care-setting-service/pkg/scripts"
	"danmiz.net/care-setting-service/pkg/store"
)

// Broadcaster pushes a freshly built snapshot to every live session.
type Broadcaster interface {
	BroadcastSnapshot(g *store.EntityGraph)
}

// Scheduler owns the current snapshot and runs the refresh cycle:
// pull raw tables, build the graph, swap it in atomically, broadcast.
// A failed tick keeps the previous snapshot in place; readers always see
// either the old graph or the new one, never a partial view.
type Scheduler struct {
	Source      db.RowSource
	Runner      scripts.Runner
	Broadcaster Broadcaster
	Period      time.Duration

	current atomic.Pointer[store.EntityGraph]
}

// Current returns the most recently published snapshot, or nil before the
// first successful refresh.
func (s *Scheduler) Current() *store.EntityGraph {
	return s.current.Load()
}

// RefreshOnce runs a single pull-and-build cycle and publishes the result.
// Any failure leaves the previous snapshot untouched.
func (s *Scheduler) RefreshOnce(ctx context.Context) error {
	tables, err := s.Source.FetchTables(db.SourceTables)
	if err != nil {
		return fmt.Errorf("fetch tables: %w", err)
	}

	graph := store.Build(tables, time.Now())

	if s.Runner != nil {
		templates, err := s.Runner.ActivityTemplates(ctx)
		if err != nil {
			return fmt.Errorf("activity templates: %w", err)
		}
		graph.ActivityTemplates = templates
	}

	s.current.Store(graph)
	return nil
}

// Run ticks at the configured period until the context is cancelled. Each
// successful tick broadcasts; a failed one is logged and skipped.
func (s *Scheduler) Run(ctx context.Context) {
	logger := common.GetLoggerWith(common.LoggerNameScheduler)

	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RefreshOnce(ctx); err != nil {
				logger.Error("Refresh tick failed, previous snapshot retained", zap.Error(err))
				continue
			}
			if s.Broadcaster != nil {
				s.Broadcaster.BroadcastSnapshot(s.Current())
			}
		}
	}
}
