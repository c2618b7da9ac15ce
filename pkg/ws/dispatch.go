package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/models"
	"danmiz.net/care-setting-service/pkg/scripts"
)

// envelope is decoded first to pick the packet's schema; everything else
// about the message is ignored until the full decode.
type envelope struct {
	Type  PacketType `json:"type"`
	Token string     `json:"token"`
}

// onClientMessage routes one inbound message. The protocol is best-effort
// by contract: unparseable messages, unknown types, schema failures,
// invalid tokens and rate-limited commands are all dropped without an
// error reply. Only AUTH ever answers a failure explicitly.
func (s *WSServer) onClientMessage(conn ClientConn, raw []byte) {
	logger := common.GetLoggerWith(
		common.LoggerNameWsServer,
		zap.String(common.LoggerFieldCareCategory, common.LoggerCategoryCareDispatch),
	)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		return
	}

	if env.Type == PacketAuth {
		var packet AuthPacket
		if !decodePacket(raw, authSchema, &packet) {
			return
		}
		s.handleAuth(conn, packet)
		return
	}

	userID, ok := s.ValidateToken(env.Token)
	if !ok {
		logger.Debug("Dropped packet with invalid token", zap.String("type", string(env.Type)))
		return
	}

	if s.RateLimiterStore != nil && !s.RateLimiterStore.GetLimiter(userID).Allow() {
		logger.Debug("Dropped rate-limited packet", zap.Uint("user_id", userID), zap.String("type", string(env.Type)))
		return
	}

	switch env.Type {
	case PacketQuery:
		var packet QueryPacket
		if decodePacket(raw, querySchema, &packet) {
			s.handleQuery(conn, packet)
		}
	case PacketCreateBackup:
		var packet CreateBackupPacket
		if decodePacket(raw, createBackupSchema, &packet) {
			s.handleCreateBackup(packet)
		}
	case PacketLoadBackup:
		var packet LoadBackupPacket
		if decodePacket(raw, loadBackupSchema, &packet) {
			s.handleLoadBackup(packet)
		}
	case PacketZoneReport:
		var packet ZoneReportPacket
		if decodePacket(raw, zoneReportSchema, &packet) {
			s.handleZoneReport(conn, packet)
		}
	case PacketPersonReport:
		var packet PersonReportPacket
		if decodePacket(raw, personReportSchema, &packet) {
			s.handlePersonReport(conn, packet)
		}
	case PacketSettingReport:
		var packet SettingReportPacket
		if decodePacket(raw, settingReportSchema, &packet) {
			s.handleSettingReport(conn, packet)
		}
	case PacketActivateTheme:
		var packet ActivateThemePacket
		if decodePacket(raw, activateThemeSchema, &packet) {
			s.handleActivateTheme(packet)
		}
	case PacketCreateTheme:
		var packet CreateThemePacket
		if decodePacket(raw, createThemeSchema, &packet) {
			s.handleCreateTheme(packet)
		}
	case PacketFactoryReset:
		var packet FactoryResetPacket
		if decodePacket(raw, factoryResetSchema, &packet) {
			s.handleFactoryReset(packet)
		}
	default:
		logger.Debug("Dropped packet of unknown type", zap.String("type", string(env.Type)))
	}
}

func (s *WSServer) handleAuth(conn ClientConn, packet AuthPacket) {
	token, err := s.Authenticate(packet.Username, packet.Password, conn)
	if err != nil {
		s.sendTo(conn, TypeOnlyPacket{Type: PacketAuthFailed})
		return
	}

	s.sendTo(conn, AuthSuccessPacket{
		Type:     PacketAuthSuccess,
		Token:    token,
		Entities: s.Snapshots.Current(),
		Themes:   s.listThemes(),
	})
}

func (s *WSServer) handleQuery(conn ClientConn, packet QueryPacket) {
	if _, err := s.Source.Query(packet.Query); err != nil {
		return
	}
	s.liveUpdateTo(conn)
}

func (s *WSServer) handleCreateBackup(packet CreateBackupPacket) {
	logger := common.GetLoggerWith(common.LoggerNameWsServer)

	var zoneID *uint
	if packet.BackupType == BackupSaveSchedule {
		if packet.ZoneID <= 0 {
			return
		}
		id := uint(packet.ZoneID)
		zoneID = &id
	}

	logger.Info("Creating backup", zap.String("backup_type", packet.BackupType), zap.String("title", packet.Title))
	go func() {
		if err := s.Runner.CreateBackup(context.Background(), packet.BackupType, packet.Title, packet.Description, zoneID); err != nil {
			logger.Error("Backup failed", zap.String("title", packet.Title), zap.Error(err))
		}
	}()
}

func (s *WSServer) handleLoadBackup(packet LoadBackupPacket) {
	logger := common.GetLoggerWith(common.LoggerNameWsServer)

	var zoneID *uint
	if packet.BackupType == BackupLoadSchedule {
		if packet.ZoneID <= 0 {
			return
		}
		id := uint(packet.ZoneID)
		zoneID = &id
	}

	logger.Info("Loading backup", zap.String("backup_type", packet.BackupType), zap.String("backup_name", packet.BackupName))
	go func() {
		if err := s.Runner.LoadBackup(context.Background(), packet.BackupType, packet.BackupName, zoneID); err != nil {
			logger.Error("Backup load failed", zap.String("backup_name", packet.BackupName), zap.Error(err))
		}
	}()
}

func (s *WSServer) handleZoneReport(conn ClientConn, packet ZoneReportPacket) {
	start, okStart := parseWireDate(packet.Start)
	end, okEnd := parseWireDate(packet.End)
	if !okStart || !okEnd {
		return
	}
	s.generateAndSendReport(conn, scripts.ZoneReport, start, end, packet.Name, uint(packet.ZoneID))
}

func (s *WSServer) handlePersonReport(conn ClientConn, packet PersonReportPacket) {
	// Person reports always cover the trailing week.
	end := time.Now()
	start := end.AddDate(0, 0, -7)
	s.generateAndSendReport(conn, scripts.PersonReport, start, end, packet.Name, uint(packet.PersonID))
}

func (s *WSServer) handleSettingReport(conn ClientConn, packet SettingReportPacket) {
	start, okStart := parseWireDate(packet.Start)
	end, okEnd := parseWireDate(packet.End)
	if !okStart || !okEnd {
		return
	}
	s.generateAndSendReport(conn, scripts.SettingReport, start, end, packet.Name, 1)
}

// generateAndSendReport runs report generation off the dispatch goroutine
// and replies to the originating client only: REPORT_GENERATED with the
// retrieval location, or REPORT_FAILED.
func (s *WSServer) generateAndSendReport(conn ClientConn, reportType scripts.ReportType, start, end time.Time, name string, entityID uint) {
	logger := common.GetLoggerWith(common.LoggerNameWsServer)

	go func() {
		fileName, err := s.Runner.CreateReport(context.Background(), reportType, start, end, name, entityID)
		if err != nil {
			logger.Error("Generating report failed", zap.String("name", name), zap.Error(err))
			s.sendTo(conn, TypeOnlyPacket{Type: PacketReportFailed})
			return
		}
		s.sendTo(conn, ReportGeneratedPacket{
			Type:     PacketReportGenerated,
			Location: s.ReportEndpoint + "/" + fileName,
		})
	}()
}

func (s *WSServer) handleActivateTheme(packet ActivateThemePacket) {
	if err := s.Source.ActivateTheme(uint(packet.ThemeID)); err != nil {
		common.GetLoggerWith(common.LoggerNameWsServer).Error("Activating theme failed", zap.Int("theme_id", packet.ThemeID), zap.Error(err))
		return
	}
	s.broadcast(ThemeChangedPacket{Type: PacketThemeChanged, Themes: s.listThemes()})
}

func (s *WSServer) handleCreateTheme(packet CreateThemePacket) {
	if packet.SetActive == nil {
		return
	}

	theme := models.Theme{
		ThemeName:      packet.Name,
		BgColor:        packet.BgColor,
		SidebarColor:   packet.SidebarColor,
		HeaderColor:    packet.HeaderColor,
		ContainerColor: packet.ContainerColor,
		CompanyName:    packet.CompanyName,
		CompanyLogo:    packet.CompanyLogo,
		CreatedAt:      time.Now(),
	}
	if err := s.Source.CreateTheme(&theme, *packet.SetActive); err != nil {
		common.GetLoggerWith(common.LoggerNameWsServer).Error("Creating theme failed", zap.String("name", packet.Name), zap.Error(err))
		return
	}
	s.broadcast(ThemeChangedPacket{Type: PacketThemeChanged, Themes: s.listThemes()})
}

func (s *WSServer) handleFactoryReset(packet FactoryResetPacket) {
	logger := common.GetLoggerWith(common.LoggerNameWsServer)

	var userID *uint
	if packet.ResetType == scripts.ResetWipeSpecificUser && packet.UserID > 0 {
		id := uint(packet.UserID)
		userID = &id
	}

	logger.Info("Factory reset requested", zap.String("reset_type", packet.ResetType))
	go func() {
		if err := s.Runner.FactoryReset(context.Background(), packet.ResetType, userID); err != nil {
			logger.Error("Factory reset failed", zap.String("reset_type", packet.ResetType), zap.Error(err))
		}
	}()
}

func parseWireDate(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
