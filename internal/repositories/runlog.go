package repositories

import (
	"context"
	"github.com/vacsdata/sj-parser/internal/entities"
	"gorm.io/gorm"
	"time"
)

type RunLog struct {
	db *gorm.DB
}

func NewRunLogRepository(db *gorm.DB) *RunLog {
	return &RunLog{db: db}
}

func (repo *RunLog) Record(ctx context.Context, exitPoint int, message string) error {
	return repo.db.WithContext(ctx).Create(&entities.RunLogEntry{
		ExitPoint: exitPoint,
		Message:   message,
		CreatedAt: time.Now(),
	}).Error
}
