package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

// DefaultCapacity applies to any class without an explicit setting.
const DefaultCapacity = 20

// Default working-hour bounds.
const (
	DefaultWorkStart = "13:00"
	DefaultWorkEnd   = "18:00"
)

// ScreeningCriterion represents the screening_criteria table.
type ScreeningCriterion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"not null" json:"type"`
	Operator  string    `gorm:"not null" json:"operator"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassSetting represents the class_settings table. Created lazily on the
// first capacity edit for a class.
type ClassSetting struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ClassName string `gorm:"unique;not null" json:"class_name"`
	Capacity  int    `gorm:"default:20" json:"capacity"`
}

// WorkHours represents the work_hours table, a single row (ID = 1) holding
// the HH:MM bounds of the care-class day.
type WorkHours struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Start string `gorm:"type:char(5);not null;default:'13:00'" json:"start"`
	End   string `gorm:"type:char(5);not null;default:'18:00'" json:"end"`
}

// APIKey represents the api_keys table.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table.
type APIUsage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	KeyID         uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date          string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount  int    `gorm:"default:0" json:"request_count"`
	TotalRows     int    `gorm:"default:0" json:"total_rows"`
	TotalStudents int    `gorm:"default:0" json:"total_students"`
}

// MasterUser represents the master_users table.
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "careclass.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&ScreeningCriterion{}, &ClassSetting{}, &WorkHours{}, &APIKey{}, &APIUsage{}, &MasterUser{})

	return db
}

// GetClassCapacity returns the configured capacity for a class, or the
// default when none exists.
func GetClassCapacity(db *gorm.DB, className string) int {
	var setting ClassSetting
	if err := db.Where("class_name = ?", className).First(&setting).Error; err != nil {
		return DefaultCapacity
	}
	if setting.Capacity <= 0 {
		return DefaultCapacity
	}
	return setting.Capacity
}

// SetClassCapacity upserts the capacity for a class.
func SetClassCapacity(db *gorm.DB, className string, capacity int) (ClassSetting, error) {
	var setting ClassSetting
	err := db.Where(ClassSetting{ClassName: className}).
		Assign(ClassSetting{Capacity: capacity}).
		FirstOrCreate(&setting).Error
	return setting, err
}

// GetWorkHours returns the working-hour bounds, falling back to the defaults
// when the settings row is missing.
func GetWorkHours(db *gorm.DB) WorkHours {
	var wh WorkHours
	if err := db.First(&wh, 1).Error; err != nil {
		return WorkHours{ID: 1, Start: DefaultWorkStart, End: DefaultWorkEnd}
	}
	return wh
}

// SetWorkHours upserts the single working-hours row.
func SetWorkHours(db *gorm.DB, start, end string) (WorkHours, error) {
	wh := WorkHours{ID: 1, Start: start, End: end}
	err := db.Save(&wh).Error
	return wh, err
}

// ListCriteria returns all configured screening criteria as core values;
// callers take this snapshot once before aggregating.
func ListCriteria(db *gorm.DB) ([]models.ScreeningCriterion, error) {
	var rows []ScreeningCriterion
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	criteria := make([]models.ScreeningCriterion, 0, len(rows))
	for _, r := range rows {
		criteria = append(criteria, models.ScreeningCriterion{
			ID:       r.ID,
			Type:     r.Type,
			Operator: r.Operator,
			Value:    r.Value,
		})
	}
	return criteria, nil
}
