// Package store persists a history of completed refactor runs to SQLite
// (or a remote libSQL/Turso database) via gorm — adapted from the
// teacher's db/sqlite.go and models/models.go, which backed its MCP
// session/stage/apply bookkeeping. Here a Run is one driver.Run
// invocation and its FileChanges are the per-file outcome it recorded,
// kept independently of internal/driver's own flat-file transaction log
// (which exists purely to roll a run back — this store exists so a user
// can ask "what did refract do to this repo over time").
package store

import (
	"time"

	"gorm.io/datatypes"
)

// Run records one driver.Run invocation.
type Run struct {
	ID            string `gorm:"primaryKey;type:varchar(32)"`
	Description   string `gorm:"type:text"`
	TransactionID string `gorm:"type:varchar(64);index"`

	FilesScanned  int `gorm:"default:0"`
	FilesModified int `gorm:"default:0"`
	TotalMatches  int `gorm:"default:0"`

	Status    string `gorm:"type:varchar(20);default:'completed'"` // completed, rolled_back
	StartedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	Changes []FileChange `gorm:"foreignKey:RunID"`
}

// FileChange records one file's outcome within a Run.
type FileChange struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	RunID string `gorm:"type:varchar(32);index"`

	FilePath   string `gorm:"type:text"`
	MatchCount int    `gorm:"default:0"`
	Modified   bool   `gorm:"default:false"`
	Diff       string `gorm:"type:text"`
	Error      string `gorm:"type:text"`

	Metadata datatypes.JSON `gorm:"type:jsonb"`
}

func (Run) TableName() string        { return "runs" }
func (FileChange) TableName() string { return "file_changes" }
