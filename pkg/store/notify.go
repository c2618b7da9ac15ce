package store

import (
	"fmt"
	"time"

	"danmiz.net/care-setting-service/pkg/common"
	"go.uber.org/zap"
)

// Comfortable band for zone temperature readings, degrees celsius.
const (
	MinComfortTemp float64 = 18
	MaxComfortTemp float64 = 22
)

// deriveNotifications produces the transient alert list for a just-built
// graph. The four classes always concatenate in the same order:
// temperature, ratio, restricted-zone, signed-in-but-absent. Each cycle's
// list fully replaces the previous one; there is no identity or history.
func deriveNotifications(g *EntityGraph, now time.Time) []Notification {
	logger := common.GetLoggerWith(
		common.LoggerNameCareStore,
		zap.String(common.LoggerFieldCareCategory, common.LoggerCategoryCareNotify),
	)

	notifications := []Notification{}

	for _, zone := range g.Zones {
		if zone.Temperature == nil {
			continue
		}
		temp := *zone.Temperature
		if temp >= MinComfortTemp && temp <= MaxComfortTemp {
			continue
		}

		violation := fmt.Sprintf("exceeded %v°C", MaxComfortTemp)
		if temp < MinComfortTemp {
			violation = fmt.Sprintf("dropped below %v°C", MinComfortTemp)
		}

		notifications = append(notifications, Notification{
			Description: fmt.Sprintf("Temperature in %s %s", zone.RoomName, violation),
			Critical:    true,
			Timestamp:   now,
		})
	}

	for _, zone := range g.Zones {
		if !zone.ResponsibleRatioViolated {
			continue
		}
		notifications = append(notifications, Notification{
			Description: fmt.Sprintf("%s needs more responsible people", zone.RoomName),
			Critical:    false,
			Timestamp:   now,
		})
	}

	for _, person := range g.People {
		if !person.IsInRestrictedZone {
			continue
		}
		notifications = append(notifications, Notification{
			Description: fmt.Sprintf("%s is in the restricted %s", person.FullName(), zoneName(g, person.ZoneLocation)),
			Critical:    true,
			Timestamp:   now,
		})
	}

	for _, person := range g.People {
		if !person.IsSignedIn || person.ZoneLocation != nil {
			continue
		}
		notifications = append(notifications, Notification{
			Description: fmt.Sprintf("%s is signed in but they're not present in the setting", person.FullName()),
			Critical:    false,
			Timestamp:   now,
		})
	}

	for _, n := range notifications {
		logger.Info("Notification raised", zap.Reflect("notification", n))
	}

	return notifications
}

func zoneName(g *EntityGraph, zoneID *uint) string {
	if zoneID == nil {
		return ""
	}
	for _, zone := range g.Zones {
		if zone.ID == *zoneID {
			return zone.RoomName
		}
	}
	return ""
}
