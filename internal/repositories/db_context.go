package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/vacsdata/sj-parser/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Organization{})
	if err != nil {
		return fmt.Errorf("failed to migrate Organization entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Vacancy{})
	if err != nil {
		return fmt.Errorf("failed to migrate Vacancy entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.ClassificationEntry{})
	if err != nil {
		return fmt.Errorf("failed to migrate ClassificationEntry entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.RunLogEntry{})
	if err != nil {
		return fmt.Errorf("failed to migrate RunLogEntry entity: %w", err)
	}

	if err = c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_vacancies_is_matched ON vacancies (is_matched);").
		Error; err != nil {
		return fmt.Errorf("failed to create vacancy index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
