package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/db"
	_ "danmiz.net/care-setting-service/pkg/testing"
)

func TestNotificationsFullOrdering(t *testing.T) {
	common.SetTestLoggerNop()

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tables := db.Tables{
		"zones": {
			zoneRow(1, "Play Room", false),
			zoneRow(2, "Boiler Room", true),
		},
		"sensors": {db.Row{"id": uint(1)}, db.Row{"id": uint(2)}},
		"people": {
			// Bob alone in the play room: no responsible cover.
			personRow(1, "Bob", "Low", 3, false, 1, false),
			// Dana wandered into the restricted boiler room.
			personRow(2, "Dana", "Hart", 35, true, 2, false),
			// Eve signed in but with no sensor at all.
			personRow(3, "Eve", "Moss", 35, true, 0, false),
		},
		"location_logs": {
			locationRow(1, 1, now.Add(-time.Minute)),
			locationRow(2, 2, now.Add(-time.Minute)),
		},
		"digital_sign_in": {
			signInRow(1, now.Add(-time.Hour), nil),
			signInRow(2, now.Add(-time.Hour), nil),
			signInRow(3, now.Add(-time.Hour), nil),
		},
		"temperature_logs": {
			db.Row{"zone_id": uint(1), "temp_reading": 25.0, "timestamp": now.Add(-time.Minute)},
		},
	}

	g := Build(tables, now)

	require.Len(t, g.Notifications, 4)

	assert.Equal(t, "Temperature in Play Room exceeded 22°C", g.Notifications[0].Description)
	assert.True(t, g.Notifications[0].Critical)

	assert.Equal(t, "Play Room needs more responsible people", g.Notifications[1].Description)
	assert.False(t, g.Notifications[1].Critical)

	assert.Equal(t, "Dana Hart is in the restricted Boiler Room", g.Notifications[2].Description)
	assert.True(t, g.Notifications[2].Critical)

	assert.Equal(t, "Eve Moss is signed in but they're not present in the setting", g.Notifications[3].Description)
	assert.False(t, g.Notifications[3].Critical)

	for _, n := range g.Notifications {
		assert.True(t, n.Timestamp.Equal(now))
	}
}

func TestNotificationsHotEmptyZone(t *testing.T) {
	common.SetTestLoggerNop()

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tables := db.Tables{
		"zones": {zoneRow(1, "Play Room", false)},
		"temperature_logs": {
			db.Row{"zone_id": uint(1), "temp_reading": 25.0, "timestamp": now.Add(-time.Minute)},
		},
	}

	g := Build(tables, now)

	// An overheating zone with nobody in it still raises exactly the
	// temperature alert and nothing else.
	require.Len(t, g.Notifications, 1)
	assert.Equal(t, "Temperature in Play Room exceeded 22°C", g.Notifications[0].Description)
	assert.True(t, g.Notifications[0].Critical)
}

func TestNotificationsFreezingReading(t *testing.T) {
	common.SetTestLoggerNop()

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tables := db.Tables{
		"zones": {zoneRow(1, "Play Room", false)},
		"temperature_logs": {
			// Zero is a real reading, not a missing one.
			db.Row{"zone_id": uint(1), "temp_reading": 0.0, "timestamp": now.Add(-time.Minute)},
		},
	}

	g := Build(tables, now)

	require.Len(t, g.Notifications, 1)
	assert.Equal(t, "Temperature in Play Room dropped below 18°C", g.Notifications[0].Description)
}

func TestNotificationsComfortBandQuiet(t *testing.T) {
	common.SetTestLoggerNop()

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tables := db.Tables{
		"zones": {zoneRow(1, "Play Room", false)},
		"temperature_logs": {
			db.Row{"zone_id": uint(1), "temp_reading": 18.0, "timestamp": now.Add(-2 * time.Minute)},
			db.Row{"zone_id": uint(1), "temp_reading": 22.0, "timestamp": now.Add(-time.Minute)},
		},
	}

	g := Build(tables, now)

	assert.Empty(t, g.Notifications, "band edges are comfortable")
}
