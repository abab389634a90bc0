package store

import (
	"database/sql"
	stddriver "database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oxhq/refract/internal/driver"
)

// Store wraps a gorm connection migrated to this package's Run/FileChange
// schema — db.Connect generalized beyond the teacher's Stage/Apply/Session
// MCP tables.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn (a local SQLite file path, or an http(s)/libsql URL
// for Turso) and migrates the schema — db.Connect.
func Open(dsn string, debug bool) (*Store, error) {
	if !isRemoteURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: creating database directory: %w", err)
			}
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	dialector, conn, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("store: connecting: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := db.AutoMigrate(&Run{}, &FileChange{}); err != nil {
		return nil, fmt.Errorf("store: migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

func dialectorFor(dsn string) (gorm.Dialector, *sql.DB, error) {
	if !isRemoteURL(dsn) {
		return sqlite.Open(dsn), nil, nil
	}

	var (
		connector stddriver.Connector
		err       error
	)
	if token := os.Getenv("REFRACT_LIBSQL_AUTH_TOKEN"); token != "" {
		connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
	} else {
		connector, err = libsql.NewConnector(dsn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("store: creating libsql connector: %w", err)
	}

	conn := sql.OpenDB(connector)
	return sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn}), conn, nil
}

func isRemoteURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql")
}

// RecordRun persists one driver.Result as a Run with its per-file changes.
func (s *Store) RecordRun(id, description string, result *driver.Result) error {
	now := time.Now()
	run := &Run{
		ID:            id,
		Description:   description,
		TransactionID: result.TransactionID,
		FilesScanned:  result.FilesScanned,
		FilesModified: result.FilesModified,
		TotalMatches:  result.TotalMatches,
		Status:        "completed",
		EndedAt:       &now,
	}
	if result.Quit {
		run.Status = "rolled_back"
	}
	for _, f := range result.Files {
		run.Changes = append(run.Changes, FileChange{
			FilePath:   f.FilePath,
			MatchCount: f.MatchCount,
			Modified:   f.Modified,
			Diff:       f.Diff,
			Error:      f.Error,
		})
	}
	return s.db.Create(run).Error
}

// ListRuns returns every recorded run, most recent first.
func (s *Store) ListRuns() ([]Run, error) {
	var runs []Run
	err := s.db.Preload("Changes").Order("started_at desc").Find(&runs).Error
	return runs, err
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
