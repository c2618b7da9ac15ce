package store

import (
	"fmt"
	"math"
	"sort"
	"time"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/db"
	"go.uber.org/zap"
)

// sensorStaleAfter bounds how old a sensor ping may be before a person is
// considered to have no known zone.
const sensorStaleAfter = 5 * time.Minute

func durationMins(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(time.Minute)))
}

// Build derives a fresh EntityGraph from raw source rows. It is pure apart
// from logging: all input comes through tables and now, and the returned
// graph is never mutated afterwards. A missing source table skips its step
// and leaves the derived fields absent downstream; unresolved references
// (a person's role or sensor with no match) degrade to nil rather than
// failing the build.
//
// Every time-ordered slice in the graph is sorted most-recent-first at the
// point it is produced, so index 0 is always "latest".
func Build(tables db.Tables, now time.Time) *EntityGraph {
	logger := common.GetLoggerWith(
		common.LoggerNameCareStore,
		zap.String(common.LoggerFieldCareCategory, common.LoggerCategoryCareBuild),
	)

	g := &EntityGraph{BuiltAt: now}

	tempLogs := buildTemperatureLogs(tables["temperature_logs"])
	g.Activities = buildActivities(tables["activities"])
	schedules := buildSchedules(tables["activity_schedule"], g.Activities, now)
	locationLogs := buildLocationLogs(tables["location_logs"])
	signIns := buildSignIns(tables["digital_sign_in"])
	notes := buildNotes(tables["notes"])
	contacts := buildContacts(tables["emergency_contacts"])
	g.BackupLogs = buildBackupLogs(tables["backup_log"])
	g.Roles = buildRoles(tables["roles"])
	g.Sensors = buildSensors(tables["sensors"], locationLogs)
	g.People = buildPeople(tables["people"], g, signIns, notes, contacts, now)
	g.Zones = buildZones(tables["zones"], g, tempLogs, schedules)
	g.Notifications = deriveNotifications(g, now)
	g.ActivityTemplates = []ActivityTemplate{}

	logger.Info("Built entity graph",
		zap.Int("zones", len(g.Zones)),
		zap.Int("people", len(g.People)),
		zap.Int("notifications", len(g.Notifications)),
	)

	return g
}

func buildTemperatureLogs(rows []db.Row) []TemperatureLog {
	if rows == nil {
		return nil
	}
	logs := common.Mapper(rows, func(r db.Row) TemperatureLog {
		return TemperatureLog{
			Timestamp:   r.Time("timestamp"),
			Zone:        r.Uint("zone_id"),
			TempReading: r.Float("temp_reading"),
		}
	})
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs
}

func buildActivities(rows []db.Row) []Activity {
	if rows == nil {
		return nil
	}
	return common.Mapper(rows, func(r db.Row) Activity {
		return Activity{
			Name:          r.String("name"),
			MaximumPeople: r.Int("maximum_people"),
		}
	})
}

func buildSchedules(rows []db.Row, activities []Activity, now time.Time) []ActivitySchedule {
	if rows == nil || activities == nil {
		return nil
	}

	schedules := common.Mapper(rows, func(r db.Row) ActivitySchedule {
		schedule := ActivitySchedule{
			Activity:  findActivity(activities, r.String("activity_name")),
			ZoneID:    r.Uint("zone_id"),
			StartTime: r.Time("start_time"),
			EndTime:   r.Time("end_time"),
		}

		schedule.Duration = durationMins(schedule.EndTime.Sub(schedule.StartTime))

		startsIn := durationMins(schedule.StartTime.Sub(now))
		finishedAgo := durationMins(now.Sub(schedule.EndTime))
		minsRemaining := -finishedAgo

		switch {
		case startsIn >= 0:
			schedule.Status = StatusFuture
			schedule.StatusMessage = fmt.Sprintf("Starts in %d minutes", startsIn)
		case now.After(schedule.StartTime) && now.Before(schedule.EndTime):
			schedule.Status = StatusInProgress
			schedule.StatusMessage = fmt.Sprintf("%d minutes remaining", minsRemaining)
		case finishedAgo >= 0:
			schedule.Status = StatusFinished
			schedule.StatusMessage = fmt.Sprintf("Finished %d minutes ago", finishedAgo)
		default:
			schedule.Status = StatusFuture
			schedule.StatusMessage = "-"
		}

		return schedule
	})

	live := common.Filter(schedules, func(s ActivitySchedule) bool {
		return s.Status != StatusFinished
	})
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].StartTime.After(live[j].StartTime)
	})
	return live
}

func findActivity(activities []Activity, name string) *Activity {
	for i := range activities {
		if activities[i].Name == name {
			return &activities[i]
		}
	}
	return nil
}

func buildLocationLogs(rows []db.Row) []LocationLog {
	if rows == nil {
		return nil
	}
	logs := common.Mapper(rows, func(r db.Row) LocationLog {
		return LocationLog{
			Zone:      r.Uint("location"),
			Timestamp: r.Time("time"),
			Sensor:    r.Uint("sensor_id"),
		}
	})
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs
}

func buildSignIns(rows []db.Row) []SignInRecord {
	if rows == nil {
		return nil
	}
	signIns := common.Mapper(rows, func(r db.Row) SignInRecord {
		return SignInRecord{
			PersonID:    r.Uint("id"),
			ArrivalTime: r.Time("arrival_time"),
			EndTime:     r.TimePtr("end_time"),
		}
	})
	sort.SliceStable(signIns, func(i, j int) bool {
		return signIns[i].ArrivalTime.After(signIns[j].ArrivalTime)
	})
	return signIns
}

func buildNotes(rows []db.Row) []PersonNote {
	if rows == nil {
		return nil
	}
	return common.Mapper(rows, func(r db.Row) PersonNote {
		return PersonNote{
			ID:        r.Uint("id"),
			Text:      r.String("text"),
			PersonID:  r.Uint("person_id"),
			Name:      r.String("name"),
			Timestamp: r.Time("submitted"),
		}
	})
}

func buildContacts(rows []db.Row) []EmergencyContact {
	if rows == nil {
		return nil
	}
	return common.Mapper(rows, func(r db.Row) EmergencyContact {
		return EmergencyContact{
			PersonID:     r.Uint("child_id"),
			FirstName:    r.String("first_name"),
			Surname:      r.String("surname"),
			Email:        r.String("email"),
			MobileNumber: r.String("mobile_number"),
			AltNumber:    r.String("alternative_number"),
		}
	})
}

func buildBackupLogs(rows []db.Row) BackupLogs {
	buckets := BackupLogs{
		Activity: []BackupLog{},
		Zone:     []BackupLog{},
		Schedule: []BackupLog{},
	}
	if rows == nil {
		return buckets
	}

	logs := common.Mapper(rows, func(r db.Row) BackupLog {
		return BackupLog{
			Name:        r.String("name"),
			TableName:   r.String("table_name"),
			Timestamp:   r.Time("backup_time"),
			Type:        BackupLogType(r.String("backup_type")),
			Description: r.String("description"),
		}
	})

	isType := func(t BackupLogType) func(BackupLog) bool {
		return func(l BackupLog) bool { return l.Type == t }
	}
	buckets.Activity = common.Filter(logs, isType(BackupTypeActivity))
	buckets.Zone = common.Filter(logs, isType(BackupTypeZone))
	buckets.Schedule = common.Filter(logs, isType(BackupTypeSchedule))
	return buckets
}

func buildRoles(rows []db.Row) []Role {
	if rows == nil {
		return nil
	}
	return common.Mapper(rows, func(r db.Row) Role {
		return Role{RoleTitle: r.String("role_title")}
	})
}

func buildSensors(rows []db.Row, locationLogs []LocationLog) []*Sensor {
	if rows == nil {
		return nil
	}
	return common.Mapper(rows, func(r db.Row) *Sensor {
		sensor := &Sensor{ID: r.Uint("id")}

		if locationLogs != nil {
			sensor.Locations = common.Filter(locationLogs, func(l LocationLog) bool {
				return l.Sensor == sensor.ID
			})
		}

		return sensor
	})
}

func buildPeople(rows []db.Row, g *EntityGraph, signIns []SignInRecord, notes []PersonNote, contacts []EmergencyContact, now time.Time) []*Person {
	if rows == nil {
		return nil
	}

	return common.Mapper(rows, func(r db.Row) *Person {
		person := &Person{
			ID:          r.Uint("id"),
			FirstName:   r.String("first_name"),
			Surname:     r.String("surname"),
			Age:         r.Int("age"),
			Responsible: r.Bool("responsible"),
			Role:        findRole(g.Roles, r.String("role")),
			Sensor:      findSensor(g.Sensors, r.Uint("microbit_id")),
			IsDependent: r.Bool("requiresSupport"),
		}

		if notes != nil {
			person.Notes = common.Filter(notes, func(n PersonNote) bool {
				return n.PersonID == person.ID
			})
		}

		if contacts != nil {
			person.EmergencyContacts = common.Filter(contacts, func(c EmergencyContact) bool {
				return c.PersonID == person.ID
			})
		}

		if signIns != nil {
			personSignIns := common.Filter(signIns, func(s SignInRecord) bool {
				return s.PersonID == person.ID
			})
			current := common.Filter(personSignIns, func(s SignInRecord) bool {
				return !s.ArrivalTime.After(now) && s.EndTime == nil
			})

			person.IsSignedIn = len(current) > 0

			// personSignIns is most-recent-first, so index 0 is the last
			// arrival.
			if len(personSignIns) > 0 {
				arrival := personSignIns[0].ArrivalTime
				person.LastSignedIn = &arrival
			}
		}

		if person.Sensor != nil && len(person.Sensor.Locations) > 0 {
			latest := person.Sensor.Locations[0]
			wasWithin5Mins := now.Sub(latest.Timestamp) <= sensorStaleAfter

			if person.IsSignedIn && wasWithin5Mins {
				zone := latest.Zone
				person.ZoneLocation = &zone
			}
		}

		return person
	})
}

func findRole(roles []Role, title string) *Role {
	for i := range roles {
		if roles[i].RoleTitle == title {
			return &roles[i]
		}
	}
	return nil
}

func findSensor(sensors []*Sensor, id uint) *Sensor {
	for _, sensor := range sensors {
		if sensor.ID == id {
			return sensor
		}
	}
	return nil
}

func buildZones(rows []db.Row, g *EntityGraph, tempLogs []TemperatureLog, schedules []ActivitySchedule) []*Zone {
	if rows == nil {
		return nil
	}

	return common.Mapper(rows, func(r db.Row) *Zone {
		zone := &Zone{
			ID:           r.Uint("zone_id"),
			RoomName:     r.String("roomName"),
			MaxPeople:    r.Int("maximum_people"),
			IsSafe:       r.Bool("safe_zone"),
			IsRestricted: r.Bool("restricted"),
		}

		if tempLogs != nil {
			zone.Temperatures = common.Filter(tempLogs, func(t TemperatureLog) bool {
				return t.Zone == zone.ID
			})
			if len(zone.Temperatures) > 0 {
				reading := zone.Temperatures[0].TempReading
				zone.Temperature = &reading
			}
		}

		if schedules != nil {
			zone.Activities = common.Filter(schedules, func(s ActivitySchedule) bool {
				return s.ZoneID == zone.ID
			})
		}

		var responsible, notResponsible, dependent float64
		zone.Population = common.Filter(g.People, func(person *Person) bool {
			if person.ZoneLocation == nil || *person.ZoneLocation != zone.ID {
				return false
			}

			if person.Responsible {
				responsible++
			} else {
				notResponsible++
			}
			if person.IsDependent {
				dependent++
			}

			if zone.IsRestricted {
				person.IsInRestrictedZone = true
			}

			return true
		})

		zone.ResponsibleRatio = SimplifiedRatio(responsible, notResponsible)

		avgAge := common.Reducer(zone.Population, func(sum float64, p *Person) float64 {
			return sum + float64(p.Age)
		}, 0) / float64(len(zone.Population))

		switch {
		case len(zone.Population) == 0:
			zone.IdealResponsibleRatio = Ratio{0, 0}
		case avgAge < 2:
			zone.IdealResponsibleRatio = Ratio{1, 3}
		default:
			zone.IdealResponsibleRatio = Ratio{1, 4}
		}

		// Each dependent person in the zone raises the required staffing
		// headcount before the pair is re-simplified.
		zone.IdealResponsibleRatio[0] += dependent
		zone.IdealResponsibleRatio = SimplifiedRatio(zone.IdealResponsibleRatio[0], zone.IdealResponsibleRatio[1])

		if len(zone.Population) > 0 {
			actual := zone.ResponsibleRatio[0] / zone.ResponsibleRatio[1]
			ideal := zone.IdealResponsibleRatio[0] / zone.IdealResponsibleRatio[1]
			zone.ResponsibleRatioViolated = actual < ideal
		}

		return zone
	})
}
