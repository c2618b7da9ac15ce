package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/db"
	"danmiz.net/care-setting-service/pkg/models"
	"danmiz.net/care-setting-service/pkg/scripts"
	"danmiz.net/care-setting-service/pkg/store"
)

// SnapshotProvider exposes the current entity graph read-only. The
// scheduler owns the value; the ws layer only ever reads whole snapshots.
type SnapshotProvider interface {
	Current() *store.EntityGraph
}

// WSServer is the session manager and protocol dispatcher. It hangs off a
// gin engine: /ws upgrades to the dashboard protocol, /healthz and the
// /reports file tree are plain HTTP.
type WSServer struct {
	Server           *gin.Engine
	Source           db.RowSource
	Runner           scripts.Runner
	Snapshots        SnapshotProvider
	RateLimiterStore *RateLimiterStore

	TokenSecret    []byte
	TokenTTL       time.Duration
	ReportEndpoint string
	ReportsDir     string

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions []*Session
}

func (s *WSServer) Setup() {
	if s.TokenTTL == 0 {
		s.TokenTTL = DefaultTokenTTL
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	s.Server.GET("/healthz", s.HealthCheck)
	s.Server.GET("/ws", s.HandleWs)
	if s.ReportsDir != "" {
		s.Server.Static("/reports", s.ReportsDir)
	}
}

func (s *WSServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *WSServer) HandleWs(c *gin.Context) {
	logger := common.GetLoggerWith(common.LoggerNameWsServer)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Upgrade failed", zap.Error(err))
		return
	}

	logger.Info("Client connected", zap.String("remote", conn.RemoteAddr().String()))
	go s.readLoop(conn)
}

func (s *WSServer) readLoop(raw *websocket.Conn) {
	logger := common.GetLoggerWith(common.LoggerNameWsServer)
	conn := newLockedConn(raw)

	for {
		_, msg, err := raw.ReadMessage()
		if err != nil {
			break
		}
		s.onClientMessage(conn, msg)
	}

	s.dropConn(conn)
	logger.Info("Client disconnected", zap.Int("sessions_remaining", s.SessionCount()))
}

// Authenticate checks a credential pair against the row source and, on a
// match, issues a token and stores the session against the transport.
// There is exactly one success and one failure outcome; no partial state
// survives a failed attempt.
func (s *WSServer) Authenticate(username, password string, conn ClientConn) (string, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameWsServer,
		zap.String(common.LoggerFieldCareCategory, common.LoggerCategoryCareSession),
	)

	user, err := s.Source.LookupUser(username)
	if err != nil {
		return "", err
	}
	if user == nil || user.Password != password {
		return "", errAuthFailed
	}

	now := time.Now()
	token, err := IssueToken(s.TokenSecret, user.ID, s.TokenTTL, now)
	if err != nil {
		return "", err
	}

	session := newSession(user.ID, token, now.Add(s.TokenTTL), conn)

	s.mu.Lock()
	s.sessions = append(s.sessions, session)
	s.mu.Unlock()

	logger.Info("Client authenticated",
		zap.Uint("user_id", user.ID),
		zap.String("session_id", session.ID),
		zap.Time("expires_at", session.ExpiresAt),
	)
	return token, nil
}

// ValidateToken resolves a bearer token to a principal; any structural
// problem is the single invalid outcome.
func (s *WSServer) ValidateToken(token string) (uint, bool) {
	return ParseToken(s.TokenSecret, token)
}

// BroadcastSnapshot prunes and pushes in a single pass: sessions whose
// token has expired or whose transport fails the write are removed, and
// every survivor receives a LIVE_UPDATE with the full snapshot.
func (s *WSServer) BroadcastSnapshot(g *store.EntityGraph) {
	logger := common.GetLoggerWith(
		common.LoggerNameWsServer,
		zap.String(common.LoggerFieldCareCategory, common.LoggerCategoryCareBroadcast),
	)

	packet := LiveUpdatePacket{Type: PacketLiveUpdate, Entities: g}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	survivors := s.sessions[:0]
	for _, session := range s.sessions {
		if session.Expired(now) {
			logger.Info("Session expired", zap.String("session_id", session.ID), zap.Uint("user_id", session.UserID))
			continue
		}
		if err := session.conn.WriteJSON(packet); err != nil {
			logger.Info("Session transport closed", zap.String("session_id", session.ID), zap.Error(err))
			continue
		}
		survivors = append(survivors, session)
	}
	s.sessions = survivors
}

func (s *WSServer) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *WSServer) dropConn(conn ClientConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	survivors := s.sessions[:0]
	for _, session := range s.sessions {
		if session.conn == conn {
			continue
		}
		survivors = append(survivors, session)
	}
	s.sessions = survivors
	_ = conn.Close()
}

func (s *WSServer) sendTo(conn ClientConn, v any) {
	if err := conn.WriteJSON(v); err != nil {
		common.GetLoggerWith(common.LoggerNameWsServer).Debug("Send failed", zap.Error(err))
	}
}

func (s *WSServer) broadcast(v any) {
	s.mu.Lock()
	conns := make([]ClientConn, 0, len(s.sessions))
	for _, session := range s.sessions {
		conns = append(conns, session.conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		s.sendTo(conn, v)
	}
}

func (s *WSServer) liveUpdateTo(conn ClientConn) {
	s.sendTo(conn, LiveUpdatePacket{Type: PacketLiveUpdate, Entities: s.Snapshots.Current()})
}

func (s *WSServer) listThemes() []store.Theme {
	themes, err := s.Source.ListThemes()
	if err != nil {
		common.GetLoggerWith(common.LoggerNameWsServer).Error("Listing themes failed", zap.Error(err))
		return nil
	}
	return common.Mapper(themes, themeFromModel)
}

func themeFromModel(m models.Theme) store.Theme {
	return store.Theme{
		ID:             m.ID,
		Name:           m.ThemeName,
		BgColor:        m.BgColor,
		SidebarColor:   m.SidebarColor,
		HeaderColor:    m.HeaderColor,
		ContainerColor: m.ContainerColor,
		CompanyName:    m.CompanyName,
		CompanyLogo:    m.CompanyLogo,
		CreatedAt:      m.CreatedAt,
		IsActive:       m.IsActive,
	}
}
