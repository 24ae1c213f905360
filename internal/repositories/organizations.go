package repositories

import (
	"context"
	"github.com/vacsdata/sj-parser/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

type Organizations struct {
	db *gorm.DB
}

func NewOrganizationsRepository(db *gorm.DB) *Organizations {
	return &Organizations{db: db}
}

// Upsert inserts organizations that are not yet present and leaves existing
// rows untouched.
func (repo *Organizations) Upsert(ctx context.Context, organizations []entities.Organization) error {
	if len(organizations) == 0 {
		return nil
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(organizations, insertBatchSize).Error
	})
}
