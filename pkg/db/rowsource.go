package db

import (
	"fmt"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SourceTables is the fixed set of tables the aggregation engine is built
// from, in fetch order.
var SourceTables = []string{
	"activities", "activity_schedule", "backup_log", "digital_sign_in",
	"emergency_contacts", "location_logs", "notes", "people", "roles",
	"sensors", "temperature_logs", "zones",
}

// RowSource is the relational boundary of the system. The aggregation
// engine and the ws server depend on this contract only, never on gorm
// directly.
type RowSource interface {
	// FetchTables reads every named table wholesale.
	FetchTables(names []string) (Tables, error)
	// Query runs an ad-hoc statement issued by a dashboard client.
	Query(query string) ([]Row, error)
	ListThemes() ([]models.Theme, error)
	ActivateTheme(themeID uint) error
	CreateTheme(theme *models.Theme, setActive bool) error
	// LookupUser returns the credential row for a username, or nil when no
	// user matches.
	LookupUser(username string) (*models.User, error)
}

// GormRowSource implements RowSource over the shared gorm connection.
type GormRowSource struct {
	Db DB
}

func NewGormRowSource(db *DB) *GormRowSource {
	return &GormRowSource{Db: *db}
}

func (s *GormRowSource) FetchTables(names []string) (Tables, error) {
	tables := Tables{}
	for _, name := range names {
		var rows []map[string]any
		if err := s.Db.Conn.Table(name).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("fetch table %s: %w", name, err)
		}
		tables[name] = common.Mapper(rows, func(r map[string]any) Row { return Row(r) })
	}
	return tables, nil
}

func (s *GormRowSource) Query(query string) ([]Row, error) {
	logger := common.GetLoggerWith(common.LoggerNameRowSource)

	var rows []map[string]any
	if err := s.Db.Conn.Raw(query).Scan(&rows).Error; err != nil {
		logger.Error("Query failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return common.Mapper(rows, func(r map[string]any) Row { return Row(r) }), nil
}

func (s *GormRowSource) ListThemes() ([]models.Theme, error) {
	var themes []models.Theme
	err := s.Db.Conn.Order("theme_name").Find(&themes).Error
	return themes, err
}

func (s *GormRowSource) ActivateTheme(themeID uint) error {
	var theme models.Theme
	if err := s.Db.Conn.First(&theme, "id = ?", themeID).Error; err != nil {
		return fmt.Errorf("activate theme %d: %w", themeID, err)
	}

	return s.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Theme{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Theme{}).Where("id = ?", themeID).Update("is_active", true).Error
	})
}

func (s *GormRowSource) CreateTheme(theme *models.Theme, setActive bool) error {
	return s.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if setActive {
			if err := tx.Model(&models.Theme{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		theme.IsActive = setActive
		return tx.Create(theme).Error
	})
}

func (s *GormRowSource) LookupUser(username string) (*models.User, error) {
	var users []models.User
	if err := s.Db.Conn.Where("username = ?", username).Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
