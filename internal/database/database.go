// Package database opens the gorm connections behind the sqlite and postgres result stores.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hotmech/simulator/internal/model"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN is the shared-cache in-memory sqlite database used when no file is configured.
const MemoryDSN = "file::memory:?cache=shared"

// ErrNoDumpPath is returned when a dump is requested without a target file.
var ErrNoDumpPath = errors.New("sqlite dump path not set")

// Manager owns one database connection and the logger that reports on it.
type Manager struct {
	DB              *gorm.DB
	SqlDB           *sql.DB
	ShouldSaveLocal bool // running on sqlite rather than postgres
	SqliteFilePath  string
	Logger          zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		Logger: log,
	}
}

// ConnectPostgres opens and pings the postgres database configured under db.*.
func (m *Manager) ConnectPostgres() error {
	db, err := GetPostgresDB()
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := m.adopt(db); err != nil {
		return err
	}
	m.SqlDB.SetMaxOpenConns(10)
	m.Logger.Info().Str("host", viper.GetString("db.host")).Msg("Connected to Postgres DB")
	return nil
}

// ConnectSqlite opens a sqlite database at path, or a shared in-memory one when path
// is empty.
func (m *Manager) ConnectSqlite(path string) error {
	db, err := GetSqliteDB(path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite DB: %w", err)
	}
	if err := m.adopt(db); err != nil {
		return err
	}
	m.ShouldSaveLocal = true
	m.SqliteFilePath = path
	if path == "" {
		m.Logger.Info().Msg("Using local SQLite DB in memory")
	} else {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	}
	return nil
}

func (m *Manager) adopt(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	m.DB, m.SqlDB = db, sqlDB
	return nil
}

// Setup migrates every result table.
func (m *Manager) Setup() error {
	if m.DB == nil {
		return errors.New("database not connected")
	}
	m.Logger.Info().Str("dialect", m.DB.Name()).Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// DumpToDisk copies the sqlite database to path with VACUUM INTO.
func (m *Manager) DumpToDisk(path string) error {
	start := time.Now()
	if err := DumpMemoryDBToDisk(m.DB, path); err != nil {
		m.Logger.Error().Err(err).Str("path", path).Msg("Failed to dump DB to disk")
		return err
	}
	m.Logger.Debug().Dur("duration", time.Since(start)).Str("path", path).Msg("Dumped DB to disk")
	return nil
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	return m.SqlDB.Close()
}

// GetPostgresDB returns a connection to the Postgres database using viper config.
func GetPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        1000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
		"PRAGMA foreign_keys = ON;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// DumpMemoryDBToDisk vacuums the database into a disk file, replacing any file already there.
func DumpMemoryDBToDisk(db *gorm.DB, sqliteFilePath string) error {
	if sqliteFilePath == "" {
		return ErrNoDumpPath
	}

	if _, err := os.Stat(sqliteFilePath); err == nil {
		if err := os.Remove(sqliteFilePath); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	if err := db.Exec("VACUUM INTO ?", sqliteFilePath).Error; err != nil {
		return fmt.Errorf("error dumping DB to disk: %w", err)
	}
	return nil
}
