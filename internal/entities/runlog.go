package entities

import "time"

// RunLogEntry is one terminal outcome of a pipeline run: exit point 0 on
// success, a positive stage code on failure. Append-only.
type RunLogEntry struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ExitPoint int
	Message   string
	CreatedAt time.Time
}

func (RunLogEntry) TableName() string {
	return "ingest_log"
}
