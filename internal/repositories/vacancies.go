package repositories

import (
	"context"
	"github.com/vacsdata/sj-parser/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns rewritten on conflict. Deliberately excludes okpdtr_id and
// is_matched: those are owned by the reconciliation pass.
var vacancyUpdateColumns = []string{
	"organization_id", "profession", "requirements", "duties", "compensation",
	"education", "experience", "employment_type", "work_place",
	"marital_status", "children", "gender", "driving_licence",
	"age_from", "age_to", "moveable", "agreement", "agency", "town",
	"payment_from", "payment_to", "currency", "address",
	"latitude", "longitude", "metro", "link",
	"published_at", "published_to", "archived_at", "is_closed",
	"catalogue_ids", "catalogue_names", "downloaded_at", "source_id",
}

type Vacancies struct {
	db *gorm.DB
}

func NewVacanciesRepository(db *gorm.DB) *Vacancies {
	return &Vacancies{db: db}
}

// Upsert inserts new vacancies and overwrites every ingest column of
// existing rows sharing the same id.
func (repo *Vacancies) Upsert(ctx context.Context, vacancies []entities.Vacancy) error {
	if len(vacancies) == 0 {
		return nil
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(vacancyUpdateColumns),
		}).CreateInBatches(vacancies, insertBatchSize).Error
	})
}

// Unmatched returns the (id, profession) pairs of every vacancy that has not
// yet been through a reconciliation pass, ordered by id.
func (repo *Vacancies) Unmatched(ctx context.Context) ([]entities.UnmatchedVacancy, error) {

	var unmatched []entities.UnmatchedVacancy
	err := repo.db.WithContext(ctx).
		Model(&entities.Vacancy{}).
		Select("id", "profession").
		Where("is_matched = ?", false).
		Order("id").
		Find(&unmatched).Error
	if err != nil {
		return nil, err
	}
	return unmatched, nil
}

// SetClassifications writes the resolved OKPDTR ids, one batch per call.
func (repo *Vacancies) SetClassifications(ctx context.Context, matches []entities.MatchResult) error {
	if len(matches) == 0 {
		return nil
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, match := range matches {
			err := tx.Model(&entities.Vacancy{}).
				Where("id = ?", match.VacancyID).
				Update("okpdtr_id", match.OKPDTRID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkMatched flags the given vacancies as having been through reconciliation,
// whether or not a code was found for them.
func (repo *Vacancies) MarkMatched(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&entities.Vacancy{}).
			Where("id IN ?", ids).
			Update("is_matched", true).Error
	})
}
