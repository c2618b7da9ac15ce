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

var buildNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func zoneRow(id uint, name string, restricted bool) db.Row {
	return db.Row{
		"zone_id":        id,
		"roomName":       name,
		"maximum_people": 10,
		"safe_zone":      true,
		"restricted":     restricted,
	}
}

func personRow(id uint, first, last string, age int, responsible bool, sensorID uint, dependent bool) db.Row {
	return db.Row{
		"id":              id,
		"first_name":      first,
		"surname":         last,
		"age":             age,
		"responsible":     responsible,
		"role":            "Carer",
		"microbit_id":     sensorID,
		"requiresSupport": dependent,
	}
}

func locationRow(sensorID, zoneID uint, at time.Time) db.Row {
	return db.Row{"sensor_id": sensorID, "location": zoneID, "time": at}
}

func signInRow(personID uint, arrival time.Time, end any) db.Row {
	return db.Row{"id": personID, "arrival_time": arrival, "end_time": end}
}

// settingTables is a small but fully populated setting: Alice and Bob are
// currently in zone 1 (fresh sensor pings, signed in), Carol is signed in
// but her sensor last pinged over five minutes ago.
func settingTables() db.Tables {
	return db.Tables{
		"zones": {
			zoneRow(1, "Play Room", false),
			zoneRow(2, "Store Room", true),
		},
		"roles":   {db.Row{"role_title": "Carer"}},
		"sensors": {db.Row{"id": uint(1)}, db.Row{"id": uint(2)}, db.Row{"id": uint(3)}},
		"people": {
			personRow(1, "Alice", "Reed", 30, true, 1, false),
			personRow(2, "Bob", "Low", 3, false, 2, false),
			personRow(3, "Carol", "Mars", 4, false, 3, false),
		},
		"location_logs": {
			locationRow(1, 1, buildNow.Add(-time.Minute)),
			locationRow(1, 2, buildNow.Add(-2*time.Hour)),
			locationRow(2, 1, buildNow.Add(-2*time.Minute)),
			locationRow(3, 1, buildNow.Add(-20*time.Minute)),
		},
		"digital_sign_in": {
			signInRow(1, buildNow.Add(-3*time.Hour), nil),
			signInRow(2, buildNow.Add(-2*time.Hour), nil),
			signInRow(3, buildNow.Add(-time.Hour), nil),
		},
	}
}

func TestBuildPopulationInvariants(t *testing.T) {
	common.SetTestLoggerNop()

	g := Build(settingTables(), buildNow)

	require.Len(t, g.Zones, 2)
	playRoom := g.Zones[0]
	assert.Equal(t, "Play Room", playRoom.RoomName)
	require.Len(t, playRoom.Population, 2)

	// Every person in a zone's population locates to that zone, and no
	// person appears in two populations.
	seen := map[uint]int{}
	for _, zone := range g.Zones {
		for _, person := range zone.Population {
			require.NotNil(t, person.ZoneLocation)
			assert.Equal(t, zone.ID, *person.ZoneLocation)
			seen[person.ID]++
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "person %d in more than one population", id)
	}
}

func TestBuildStaleSensorLeavesNoZone(t *testing.T) {
	common.SetTestLoggerNop()

	g := Build(settingTables(), buildNow)

	require.Len(t, g.People, 3)
	carol := g.People[2]
	assert.Equal(t, "Carol", carol.FirstName)
	assert.True(t, carol.IsSignedIn)
	assert.Nil(t, carol.ZoneLocation, "stale ping must not place a person in a zone")
}

func TestBuildSignInStates(t *testing.T) {
	common.SetTestLoggerNop()

	earlier := buildNow.Add(-5 * time.Hour)
	left := buildNow.Add(-4 * time.Hour)
	tables := db.Tables{
		"people": {
			personRow(1, "Alice", "Reed", 30, true, 0, false),
			personRow(2, "Bob", "Low", 3, false, 0, false),
			personRow(3, "Carol", "Mars", 4, false, 0, false),
		},
		"digital_sign_in": {
			// Alice: signed out again.
			signInRow(1, earlier, left),
			// Bob: open sign-in in the past, plus an older closed one.
			signInRow(2, buildNow.Add(-time.Hour), nil),
			signInRow(2, earlier, left),
			// Carol: arrival in the future only.
			signInRow(3, buildNow.Add(time.Hour), nil),
		},
	}

	g := Build(tables, buildNow)
	require.Len(t, g.People, 3)

	alice, bob, carol := g.People[0], g.People[1], g.People[2]

	assert.False(t, alice.IsSignedIn)
	require.NotNil(t, alice.LastSignedIn)
	assert.True(t, alice.LastSignedIn.Equal(earlier))

	assert.True(t, bob.IsSignedIn)
	require.NotNil(t, bob.LastSignedIn)
	assert.True(t, bob.LastSignedIn.Equal(buildNow.Add(-time.Hour)), "last signed in must be the most recent arrival")

	assert.False(t, carol.IsSignedIn, "future arrival is not a current sign-in")
}

func TestBuildIdealRatio(t *testing.T) {
	common.SetTestLoggerNop()

	tables := settingTables()
	g := Build(tables, buildNow)

	playRoom := g.Zones[0]
	// Alice (30) + Bob (3): average age over 2, no dependents.
	assert.Equal(t, Ratio{1, 4}, playRoom.IdealResponsibleRatio)
	assert.Equal(t, Ratio{1, 1}, playRoom.ResponsibleRatio)
	assert.False(t, playRoom.ResponsibleRatioViolated)

	// Empty zone degenerates to [0,0] and never violates.
	storeRoom := g.Zones[1]
	assert.Empty(t, storeRoom.Population)
	assert.Equal(t, Ratio{0, 0}, storeRoom.IdealResponsibleRatio)
	assert.False(t, storeRoom.ResponsibleRatioViolated)
}

func TestBuildIdealRatioDependentsRaiseStaffing(t *testing.T) {
	common.SetTestLoggerNop()

	tables := settingTables()
	// Make Bob a dependent person.
	tables["people"][1]["requiresSupport"] = true

	g := Build(tables, buildNow)
	playRoom := g.Zones[0]

	// Base [1,4] with one dependent becomes [2,4], simplified to [1,2].
	assert.Equal(t, Ratio{1, 2}, playRoom.IdealResponsibleRatio)
	// 1 responsible to 1 not responsible no longer meets 1:2.
	assert.Equal(t, Ratio{1, 1}, playRoom.ResponsibleRatio)
	assert.False(t, playRoom.ResponsibleRatioViolated, "1/1 is above 1/2")
}

func TestBuildRatioViolation(t *testing.T) {
	common.SetTestLoggerNop()

	tables := settingTables()
	// Alice loses her responsible flag: zone 1 has no responsible adults.
	tables["people"][0]["responsible"] = false

	g := Build(tables, buildNow)
	playRoom := g.Zones[0]

	assert.Equal(t, Ratio{0, 1}, playRoom.ResponsibleRatio)
	assert.True(t, playRoom.ResponsibleRatioViolated)
}

func TestBuildRestrictedZoneFlag(t *testing.T) {
	common.SetTestLoggerNop()

	tables := settingTables()
	// Move Alice's sensor into the restricted store room.
	tables["location_logs"][0] = locationRow(1, 2, buildNow.Add(-time.Minute))

	g := Build(tables, buildNow)

	alice := g.People[0]
	require.NotNil(t, alice.ZoneLocation)
	assert.Equal(t, uint(2), *alice.ZoneLocation)
	assert.True(t, alice.IsInRestrictedZone)

	bob := g.People[1]
	assert.False(t, bob.IsInRestrictedZone)
}

func TestBuildSchedules(t *testing.T) {
	common.SetTestLoggerNop()

	tables := db.Tables{
		"activities": {
			db.Row{"name": "Painting", "maximum_people": 8},
			db.Row{"name": "Nap", "maximum_people": 12},
		},
		"activity_schedule": {
			db.Row{"activity_name": "Painting", "zone_id": uint(1), "start_time": buildNow.Add(30 * time.Minute), "end_time": buildNow.Add(90 * time.Minute)},
			db.Row{"activity_name": "Nap", "zone_id": uint(1), "start_time": buildNow.Add(-10 * time.Minute), "end_time": buildNow.Add(20 * time.Minute)},
			db.Row{"activity_name": "Painting", "zone_id": uint(1), "start_time": buildNow.Add(-3 * time.Hour), "end_time": buildNow.Add(-2 * time.Hour)},
		},
		"zones": {zoneRow(1, "Play Room", false)},
	}

	g := Build(tables, buildNow)

	require.Len(t, g.Zones, 1)
	live := g.Zones[0].Activities
	require.Len(t, live, 2, "finished schedules are dropped from the live set")

	// Sorted by start time, most recent first.
	assert.Equal(t, StatusFuture, live[0].Status)
	assert.Equal(t, "Starts in 30 minutes", live[0].StatusMessage)
	assert.Equal(t, 60, live[0].Duration)

	assert.Equal(t, StatusInProgress, live[1].Status)
	assert.Equal(t, "20 minutes remaining", live[1].StatusMessage)
	assert.Equal(t, 30, live[1].Duration)

	require.NotNil(t, live[0].Activity)
	assert.Equal(t, "Painting", live[0].Activity.Name)
}

func TestBuildCurrentTemperature(t *testing.T) {
	common.SetTestLoggerNop()

	tables := db.Tables{
		"zones": {zoneRow(1, "Play Room", false)},
		"temperature_logs": {
			db.Row{"zone_id": uint(1), "temp_reading": 19.5, "timestamp": buildNow.Add(-time.Hour)},
			db.Row{"zone_id": uint(1), "temp_reading": 21.0, "timestamp": buildNow.Add(-time.Minute)},
			db.Row{"zone_id": uint(1), "temp_reading": 18.0, "timestamp": buildNow.Add(-2 * time.Hour)},
		},
	}

	g := Build(tables, buildNow)

	zone := g.Zones[0]
	require.NotNil(t, zone.Temperature)
	assert.Equal(t, 21.0, *zone.Temperature, "current reading is the most recent log")
	require.Len(t, zone.Temperatures, 3)
	assert.Equal(t, 21.0, zone.Temperatures[0].TempReading)
}

func TestBuildMissingTablesDegrade(t *testing.T) {
	common.SetTestLoggerNop()

	g := Build(db.Tables{"zones": {zoneRow(1, "Play Room", false)}}, buildNow)

	require.Len(t, g.Zones, 1)
	assert.Nil(t, g.Zones[0].Temperature)
	assert.Nil(t, g.People)
	assert.Empty(t, g.Zones[0].Population)
	assert.Empty(t, g.Notifications)
}

func TestBuildUnresolvedReferences(t *testing.T) {
	common.SetTestLoggerNop()

	tables := db.Tables{
		"roles":   {db.Row{"role_title": "Manager"}},
		"sensors": {db.Row{"id": uint(9)}},
		"people":  {personRow(1, "Alice", "Reed", 30, true, 1, false)},
	}

	g := Build(tables, buildNow)

	alice := g.People[0]
	assert.Nil(t, alice.Role, "unmatched role title resolves to nil")
	assert.Nil(t, alice.Sensor, "unmatched sensor id resolves to nil")
}
