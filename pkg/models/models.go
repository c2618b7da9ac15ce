package models

import "time"

type BackupType string

const (
	BackupTypeActivity BackupType = "Activity"
	BackupTypeZone     BackupType = "Zone"
	BackupTypeSchedule BackupType = "Schedule"
)

// Source tables of the care setting database. Column names follow the
// upstream schema; the aggregation layer consumes these as raw rows, so
// the tags here are the one place the names are spelled out.

type Zone struct {
	ZoneID     uint   `gorm:"primaryKey;column:zone_id"`
	RoomName   string `gorm:"column:roomName"`
	MaxPeople  int    `gorm:"column:maximum_people"`
	SafeZone   bool   `gorm:"column:safe_zone"`
	Restricted bool   `gorm:"column:restricted"`
}

type Person struct {
	ID              uint   `gorm:"primaryKey;column:id"`
	FirstName       string `gorm:"column:first_name"`
	Surname         string `gorm:"column:surname"`
	Age             int    `gorm:"column:age"`
	Responsible     bool   `gorm:"column:responsible"`
	Role            string `gorm:"column:role"`
	MicrobitID      *uint  `gorm:"column:microbit_id"`
	RequiresSupport bool   `gorm:"column:requiresSupport"`
}

func (Person) TableName() string { return "people" }

type Role struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	RoleTitle string `gorm:"column:role_title"`
}

type Sensor struct {
	ID uint `gorm:"primaryKey;column:id"`
}

type Activity struct {
	ID            uint   `gorm:"primaryKey;column:id"`
	Name          string `gorm:"column:name"`
	MaximumPeople int    `gorm:"column:maximum_people"`
}

func (Activity) TableName() string { return "activities" }

type ActivitySchedule struct {
	ID           uint      `gorm:"primaryKey;column:id"`
	ActivityName string    `gorm:"column:activity_name"`
	ZoneID       uint      `gorm:"column:zone_id"`
	StartTime    time.Time `gorm:"column:start_time"`
	EndTime      time.Time `gorm:"column:end_time"`
}

func (ActivitySchedule) TableName() string { return "activity_schedule" }

type TemperatureLog struct {
	ID          uint      `gorm:"primaryKey;column:id"`
	ZoneID      uint      `gorm:"column:zone_id"`
	TempReading float64   `gorm:"column:temp_reading"`
	Timestamp   time.Time `gorm:"column:timestamp"`
}

type LocationLog struct {
	ID       uint      `gorm:"primaryKey;column:id"`
	Location uint      `gorm:"column:location"`
	SensorID uint      `gorm:"column:sensor_id"`
	Time     time.Time `gorm:"column:time"`
}

// DigitalSignIn rows key on the person, not a row id; `id` is the upstream
// column name for the person reference.
type DigitalSignIn struct {
	RecordID    uint       `gorm:"primaryKey;column:record_id"`
	PersonID    uint       `gorm:"column:id"`
	ArrivalTime time.Time  `gorm:"column:arrival_time"`
	EndTime     *time.Time `gorm:"column:end_time"`
}

func (DigitalSignIn) TableName() string { return "digital_sign_in" }

type Note struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Text      string    `gorm:"column:text"`
	PersonID  uint      `gorm:"column:person_id"`
	Name      string    `gorm:"column:name"`
	Submitted time.Time `gorm:"column:submitted"`
}

type EmergencyContact struct {
	ID                uint   `gorm:"primaryKey;column:id"`
	ChildID           uint   `gorm:"column:child_id"`
	FirstName         string `gorm:"column:first_name"`
	Surname           string `gorm:"column:surname"`
	Email             string `gorm:"column:email"`
	MobileNumber      string `gorm:"column:mobile_number"`
	AlternativeNumber string `gorm:"column:alternative_number"`
}

type BackupLog struct {
	ID          uint       `gorm:"primaryKey;column:id"`
	Name        string     `gorm:"column:name"`
	SourceTable string     `gorm:"column:table_name"`
	BackupTime  time.Time  `gorm:"column:backup_time"`
	BackupType  BackupType `gorm:"column:backup_type;type:varchar(20);check:backup_type IN ('Activity','Zone','Schedule')"`
	Description string     `gorm:"column:description"`
}

func (BackupLog) TableName() string { return "backup_log" }

type User struct {
	ID       uint   `gorm:"primaryKey;column:id"`
	Username string `gorm:"column:username;uniqueIndex"`
	Password string `gorm:"column:password"`
}

type Theme struct {
	ID             uint      `gorm:"primaryKey;column:id"`
	ThemeName      string    `gorm:"column:theme_name"`
	BgColor        string    `gorm:"column:bg_color"`
	CompanyLogo    string    `gorm:"column:company_logo"`
	CompanyName    string    `gorm:"column:company_name"`
	ContainerColor string    `gorm:"column:container_color"`
	HeaderColor    string    `gorm:"column:header_color"`
	SidebarColor   string    `gorm:"column:sidebar_color"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}
