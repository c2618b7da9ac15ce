package store

import "time"

// EntityGraph is the fully rebuilt derived state for one refresh cycle.
// Every field is recomputed wholesale by Build; nothing is mutated after a
// graph has been published. Field names on the wire match what dashboard
// clients already consume.
type EntityGraph struct {
	Zones             []*Zone            `json:"zones"`
	People            []*Person          `json:"people"`
	BackupLogs        BackupLogs         `json:"backupLogs"`
	Roles             []Role             `json:"roles"`
	Sensors           []*Sensor          `json:"sensors"`
	Activities        []Activity         `json:"activities"`
	Notifications     []Notification     `json:"notifications"`
	ActivityTemplates []ActivityTemplate `json:"activityTemplates"`
	BuiltAt           time.Time          `json:"builtAt"`
}

// Ratio is a responsible:dependent staffing pair, always two non-negative
// elements.
type Ratio [2]float64

type Zone struct {
	ID                       uint               `json:"id"`
	RoomName                 string             `json:"roomName"`
	MaxPeople                int                `json:"maxPeople"`
	IsSafe                   bool               `json:"isSafe"`
	IsRestricted             bool               `json:"isRestricted"`
	IdealResponsibleRatio    Ratio              `json:"idealResponsibleRatio"`
	Temperatures             []TemperatureLog   `json:"temperatures,omitempty"`
	Temperature              *float64           `json:"temperature,omitempty"`
	Activities               []ActivitySchedule `json:"activities,omitempty"`
	Population               []*Person          `json:"population"`
	ResponsibleRatio         Ratio              `json:"responsibleRatio"`
	ResponsibleRatioViolated bool               `json:"responsibleRatioViolated"`
}

type Person struct {
	ID                 uint               `json:"id"`
	FirstName          string             `json:"firstName"`
	Surname            string             `json:"surname"`
	Age                int                `json:"age"`
	Responsible        bool               `json:"responsible"`
	Role               *Role              `json:"role"`
	Sensor             *Sensor            `json:"sensor"`
	IsDependent        bool               `json:"isDependent"`
	Notes              []PersonNote       `json:"notes,omitempty"`
	EmergencyContacts  []EmergencyContact `json:"emergencyContacts,omitempty"`
	IsSignedIn         bool               `json:"isSignedIn"`
	LastSignedIn       *time.Time         `json:"lastSignedIn"`
	ZoneLocation       *uint              `json:"zoneLocation"`
	IsInRestrictedZone bool               `json:"isInRestrictedZone"`
}

func (p *Person) FullName() string {
	return p.FirstName + " " + p.Surname
}

type Role struct {
	RoleTitle string `json:"roleTitle"`
}

// Sensor carries the location trail of one wearable, most recent first.
type Sensor struct {
	ID        uint          `json:"id"`
	Locations []LocationLog `json:"locations,omitempty"`
}

type Activity struct {
	Name          string `json:"name"`
	MaximumPeople int    `json:"maximumPeople"`
}

type ActivityStatus string

const (
	StatusFuture     ActivityStatus = "FUTURE"
	StatusInProgress ActivityStatus = "IN_PROGRESS"
	StatusFinished   ActivityStatus = "FINISHED"
)

type ActivitySchedule struct {
	ZoneID        uint           `json:"zoneId"`
	Activity      *Activity      `json:"activity"`
	StartTime     time.Time      `json:"startTime"`
	EndTime       time.Time      `json:"endTime"`
	Duration      int            `json:"duration"`
	Status        ActivityStatus `json:"status"`
	StatusMessage string         `json:"statusMessage"`
}

type TemperatureLog struct {
	Timestamp   time.Time `json:"timestamp"`
	Zone        uint      `json:"zone"`
	TempReading float64   `json:"tempReading"`
}

type LocationLog struct {
	Timestamp time.Time `json:"timestamp"`
	Zone      uint      `json:"zone"`
	Sensor    uint      `json:"sensor"`
}

type SignInRecord struct {
	PersonID    uint       `json:"personId"`
	ArrivalTime time.Time  `json:"arrivalTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
}

type PersonNote struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	PersonID  uint      `json:"personId"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type EmergencyContact struct {
	PersonID     uint   `json:"personId"`
	FirstName    string `json:"firstName"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	AltNumber    string `json:"altNumber"`
}

type BackupLogType string

const (
	BackupTypeActivity BackupLogType = "Activity"
	BackupTypeZone     BackupLogType = "Zone"
	BackupTypeSchedule BackupLogType = "Schedule"
)

type BackupLog struct {
	Name        string        `json:"name"`
	TableName   string        `json:"tableName"`
	Timestamp   time.Time     `json:"timestamp"`
	Type        BackupLogType `json:"type"`
	Description string        `json:"description,omitempty"`
}

// BackupLogs partitions the backup history into the three bucket types the
// dashboard renders separately.
type BackupLogs struct {
	Activity []BackupLog `json:"activity"`
	Zone     []BackupLog `json:"zone"`
	Schedule []BackupLog `json:"schedule"`
}

type Notification struct {
	Description string    `json:"description"`
	Critical    bool      `json:"critical"`
	Timestamp   time.Time `json:"timestamp"`
}

type ActivityTemplate struct {
	ActivityName string `json:"activityName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

type Theme struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	BgColor        string    `json:"bgColor"`
	SidebarColor   string    `json:"sidebarColor"`
	HeaderColor    string    `json:"headerColor"`
	ContainerColor string    `json:"containerColor"`
	CompanyName    string    `json:"companyName"`
	CompanyLogo    string    `json:"companyLogo"`
	CreatedAt      time.Time `json:"createdAt"`
	IsActive       bool      `json:"isActive"`
}
