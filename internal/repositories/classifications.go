package repositories

import (
	"context"
	"github.com/vacsdata/sj-parser/internal/entities"
	"gorm.io/gorm"
)

type Classifications struct {
	db *gorm.DB
}

func NewClassificationsRepository(db *gorm.DB) *Classifications {
	return &Classifications{db: db}
}

// Eligible returns the taxonomy rows that may serve as match targets, i.e.
// everything except placeholder rows, ordered by id.
func (repo *Classifications) Eligible(ctx context.Context) ([]entities.ClassificationEntry, error) {

	var entries []entities.ClassificationEntry
	err := repo.db.WithContext(ctx).
		Where("code <> ?", entities.PlaceholderCode).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
