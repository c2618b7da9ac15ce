package ws

import (
	"encoding/json"

	z "github.com/Oudwins/zog"

	"danmiz.net/care-setting-service/pkg/store"
)

type PacketType string

const (
	PacketAuth          PacketType = "AUTH"
	PacketQuery         PacketType = "QUERY"
	PacketCreateBackup  PacketType = "CREATE_BACKUP"
	PacketLoadBackup    PacketType = "LOAD_BACKUP"
	PacketZoneReport    PacketType = "ZONE_REPORT"
	PacketPersonReport  PacketType = "PERSON_REPORT"
	PacketSettingReport PacketType = "SETTING_REPORT"
	PacketActivateTheme PacketType = "ACTIVATE_THEME"
	PacketCreateTheme   PacketType = "CREATE_THEME"
	PacketFactoryReset  PacketType = "FACTORY_RESET"

	PacketAuthSuccess     PacketType = "AUTH_SUCCESS"
	PacketAuthFailed      PacketType = "AUTH_FAILED"
	PacketLiveUpdate      PacketType = "LIVE_UPDATE"
	PacketThemeChanged    PacketType = "THEME_CHANGED"
	PacketReportGenerated PacketType = "REPORT_GENERATED"
	PacketReportFailed    PacketType = "REPORT_FAILED"
)

// Backup types that operate on a single zone's schedule and therefore
// require a zone id.
const (
	BackupSaveSchedule = "saveSchedule"
	BackupLoadSchedule = "loadSchedule"
)

// Inbound packets. Each is decoded once from the raw message by its json
// tags, then validated against its zog schema; a packet failing either
// step is silently dropped.

type AuthPacket struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var authSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Password": z.String().Required(),
})

type QueryPacket struct {
	Token string `json:"token"`
	Query string `json:"query"`
}

var querySchema = z.Struct(z.Shape{
	"Token": z.String().Required(),
	"Query": z.String().Required(),
})

type CreateBackupPacket struct {
	Token       string `json:"token"`
	BackupType  string `json:"backupType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ZoneID      int    `json:"zoneId"`
}

var createBackupSchema = z.Struct(z.Shape{
	"Token":       z.String().Required(),
	"BackupType":  z.String().Required(),
	"Title":       z.String().Required(),
	"Description": z.String().Required(),
	"ZoneID":      z.Int(),
})

type LoadBackupPacket struct {
	Token      string `json:"token"`
	BackupType string `json:"backupType"`
	BackupName string `json:"backupName"`
	ZoneID     int    `json:"zoneId"`
}

var loadBackupSchema = z.Struct(z.Shape{
	"Token":      z.String().Required(),
	"BackupType": z.String().Required(),
	"BackupName": z.String().Required(),
	"ZoneID":     z.Int(),
})

type ZoneReportPacket struct {
	Token  string `json:"token"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Name   string `json:"name"`
	ZoneID int    `json:"zoneId"`
}

var zoneReportSchema = z.Struct(z.Shape{
	"Token":  z.String().Required(),
	"Start":  z.String().Required(),
	"End":    z.String().Required(),
	"Name":   z.String().Required(),
	"ZoneID": z.Int().Required(),
})

type PersonReportPacket struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	PersonID int    `json:"personId"`
}

var personReportSchema = z.Struct(z.Shape{
	"Token":    z.String().Required(),
	"Name":     z.String().Required(),
	"PersonID": z.Int().Required(),
})

type SettingReportPacket struct {
	Token string `json:"token"`
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
}

var settingReportSchema = z.Struct(z.Shape{
	"Token": z.String().Required(),
	"Start": z.String().Required(),
	"End":   z.String().Required(),
	"Name":  z.String().Required(),
})

type ActivateThemePacket struct {
	Token   string `json:"token"`
	ThemeID int    `json:"themeId"`
}

var activateThemeSchema = z.Struct(z.Shape{
	"Token":   z.String().Required(),
	"ThemeID": z.Int().Required(),
})

type CreateThemePacket struct {
	Token          string `json:"token"`
	Name           string `json:"name"`
	BgColor        string `json:"bgColor"`
	SidebarColor   string `json:"sidebarColor"`
	HeaderColor    string `json:"headerColor"`
	ContainerColor string `json:"containerColor"`
	CompanyName    string `json:"companyName"`
	CompanyLogo    string `json:"companyLogo"`
	SetActive      *bool  `json:"setActive"`
}

var createThemeSchema = z.Struct(z.Shape{
	"Token":          z.String().Required(),
	"Name":           z.String().Required(),
	"BgColor":        z.String().Required(),
	"SidebarColor":   z.String().Required(),
	"HeaderColor":    z.String().Required(),
	"ContainerColor": z.String().Required(),
	"CompanyName":    z.String().Required(),
	"CompanyLogo":    z.String().Required(),
})

type FactoryResetPacket struct {
	Token     string `json:"token"`
	ResetType string `json:"resetType"`
	UserID    int    `json:"userId"`
}

var factoryResetSchema = z.Struct(z.Shape{
	"Token":     z.String().Required(),
	"ResetType": z.String().Required(),
	"UserID":    z.Int(),
})

// Outbound packets.

type AuthSuccessPacket struct {
	Type     PacketType         `json:"type"`
	Token    string             `json:"token"`
	Entities *store.EntityGraph `json:"entities"`
	Themes   []store.Theme      `json:"themes"`
}

type LiveUpdatePacket struct {
	Type     PacketType         `json:"type"`
	Entities *store.EntityGraph `json:"entities"`
}

type ThemeChangedPacket struct {
	Type   PacketType    `json:"type"`
	Themes []store.Theme `json:"themes"`
}

type ReportGeneratedPacket struct {
	Type     PacketType `json:"type"`
	Location string     `json:"location"`
}

type TypeOnlyPacket struct {
	Type PacketType `json:"type"`
}

// decodePacket unmarshals an inbound message into dest and validates it
// against the packet's schema. A false return means drop the packet.
func decodePacket(raw []byte, schema *z.StructSchema, dest any) bool {
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	if errs := schema.Validate(dest); errs != nil {
		return false
	}
	return true
}
