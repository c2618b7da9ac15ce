package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/db"
	dbmocks "danmiz.net/care-setting-service/pkg/db/mocks"
	scriptmocks "danmiz.net/care-setting-service/pkg/scripts/mocks"
	"danmiz.net/care-setting-service/pkg/store"
	_ "danmiz.net/care-setting-service/pkg/testing"
)

type captureBroadcaster struct {
	snapshots chan *store.EntityGraph
}

func (b *captureBroadcaster) BroadcastSnapshot(g *store.EntityGraph) {
	b.snapshots <- g
}

func sourceTables() db.Tables {
	tables := db.Tables{}
	for _, name := range db.SourceTables {
		tables[name] = []db.Row{}
	}
	tables["zones"] = []db.Row{{
		"zone_id": uint(1), "roomName": "Play Room", "maximum_people": 10,
		"safe_zone": true, "restricted": false,
	}}
	return tables
}

func TestRefreshOncePublishes(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	source := dbmocks.NewMockRowSource(ctrl)
	runner := scriptmocks.NewMockRunner(ctrl)

	source.EXPECT().FetchTables(db.SourceTables).Return(sourceTables(), nil)
	runner.EXPECT().ActivityTemplates(gomock.Any()).Return([]store.ActivityTemplate{
		{ActivityName: "Painting", StartTime: "09:00", EndTime: "10:00"},
	}, nil)

	sched := &Scheduler{Source: source, Runner: runner}
	require.Nil(t, sched.Current(), "no snapshot before the first refresh")

	require.NoError(t, sched.RefreshOnce(context.Background()))

	g := sched.Current()
	require.NotNil(t, g)
	require.Len(t, g.Zones, 1)
	assert.Equal(t, "Play Room", g.Zones[0].RoomName)
	require.Len(t, g.ActivityTemplates, 1)
	assert.Equal(t, "Painting", g.ActivityTemplates[0].ActivityName)
}

func TestFailedRefreshRetainsSnapshot(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	source := dbmocks.NewMockRowSource(ctrl)

	first := source.EXPECT().FetchTables(db.SourceTables).Return(sourceTables(), nil)
	source.EXPECT().FetchTables(db.SourceTables).Return(nil, fmt.Errorf("disk error")).After(first)

	sched := &Scheduler{Source: source}

	require.NoError(t, sched.RefreshOnce(context.Background()))
	published := sched.Current()
	require.NotNil(t, published)

	assert.Error(t, sched.RefreshOnce(context.Background()))
	assert.Same(t, published, sched.Current(), "failed refresh must not replace the snapshot")
}

func TestFailedTemplatesFailsTick(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	source := dbmocks.NewMockRowSource(ctrl)
	runner := scriptmocks.NewMockRunner(ctrl)

	source.EXPECT().FetchTables(db.SourceTables).Return(sourceTables(), nil)
	runner.EXPECT().ActivityTemplates(gomock.Any()).Return(nil, fmt.Errorf("script missing"))

	sched := &Scheduler{Source: source, Runner: runner}

	assert.Error(t, sched.RefreshOnce(context.Background()))
	assert.Nil(t, sched.Current())
}

func TestRunBroadcastsEachTick(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	source := dbmocks.NewMockRowSource(ctrl)

	source.EXPECT().FetchTables(db.SourceTables).Return(sourceTables(), nil).MinTimes(1)

	broadcaster := &captureBroadcaster{snapshots: make(chan *store.EntityGraph, 8)}
	sched := &Scheduler{
		Source:      source,
		Broadcaster: broadcaster,
		Period:      10 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	select {
	case g := <-broadcaster.snapshots:
		require.NotNil(t, g)
		require.Len(t, g.Zones, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a broadcast within the tick period")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	source := dbmocks.NewMockRowSource(ctrl)
	source.EXPECT().FetchTables(db.SourceTables).Return(sourceTables(), nil).AnyTimes()

	sched := &Scheduler{Source: source, Period: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}
