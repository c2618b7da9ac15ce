package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/models"
	_ "danmiz.net/care-setting-service/pkg/testing"
)

func newTestSource(t *testing.T) *GormRowSource {
	t.Helper()
	common.SetTestLoggerNop()
	return NewGormRowSource(GetInstance(UseMemorySqliteDialector()))
}

func TestFetchTablesShape(t *testing.T) {
	source := newTestSource(t)

	require.NoError(t, source.Db.Conn.Create(&models.Zone{
		ZoneID: 101, RoomName: "Quiet Room", MaxPeople: 5,
	}).Error)
	require.NoError(t, source.Db.Conn.Create(&models.TemperatureLog{
		ZoneID: 101, TempReading: 19.5, Timestamp: time.Now(),
	}).Error)

	tables, err := source.FetchTables(SourceTables)
	require.NoError(t, err)

	// Every requested table is present even when empty.
	for _, name := range SourceTables {
		_, ok := tables[name]
		assert.True(t, ok, "missing table %q", name)
	}

	var quietRoom Row
	for _, row := range tables["zones"] {
		if row.Uint("zone_id") == 101 {
			quietRoom = row
		}
	}
	require.NotNil(t, quietRoom)
	assert.Equal(t, "Quiet Room", quietRoom.String("roomName"))
	assert.Equal(t, 5, quietRoom.Int("maximum_people"))
}

func TestQueryRawStatement(t *testing.T) {
	source := newTestSource(t)

	require.NoError(t, source.Db.Conn.Create(&models.Role{RoleTitle: "Supervisor"}).Error)

	rows, err := source.Query(`SELECT role_title FROM roles WHERE role_title = 'Supervisor'`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Supervisor", rows[0].String("role_title"))
}

func TestQueryBadStatement(t *testing.T) {
	source := newTestSource(t)

	_, err := source.Query(`SELECT * FROM no_such_table`)
	assert.Error(t, err)
}

func TestThemeLifecycle(t *testing.T) {
	source := newTestSource(t)

	require.NoError(t, source.CreateTheme(&models.Theme{
		ThemeName: "Daylight", BgColor: "#ffffff",
	}, false))
	require.NoError(t, source.CreateTheme(&models.Theme{
		ThemeName: "Midnight", BgColor: "#000000",
	}, true))

	themes, err := source.ListThemes()
	require.NoError(t, err)

	byName := map[string]models.Theme{}
	for _, theme := range themes {
		byName[theme.ThemeName] = theme
	}
	require.Contains(t, byName, "Daylight")
	require.Contains(t, byName, "Midnight")
	assert.False(t, byName["Daylight"].IsActive)
	assert.True(t, byName["Midnight"].IsActive)

	// Activating one theme deactivates the rest.
	require.NoError(t, source.ActivateTheme(byName["Daylight"].ID))

	themes, err = source.ListThemes()
	require.NoError(t, err)
	activeCount := 0
	for _, theme := range themes {
		if theme.IsActive {
			activeCount++
			assert.Equal(t, "Daylight", theme.ThemeName)
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestActivateUnknownTheme(t *testing.T) {
	source := newTestSource(t)

	assert.Error(t, source.ActivateTheme(999999))
}

func TestLookupUser(t *testing.T) {
	source := newTestSource(t)

	require.NoError(t, source.Db.Conn.Create(&models.User{
		Username: "lookup_user_test", Password: "hunter2",
	}).Error)

	user, err := source.LookupUser("lookup_user_test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "hunter2", user.Password)

	missing, err := source.LookupUser("nobody_by_this_name")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
