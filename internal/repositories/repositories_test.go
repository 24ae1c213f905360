package repositories

import (
	"context"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacsdata/sj-parser/internal/entities"
	"testing"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())

	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func testOrganization(id int64, name string) entities.Organization {
	return entities.Organization{
		ID:           id,
		Name:         lo.ToPtr(name),
		DownloadedAt: "2023-01-01 06:00:00",
	}
}

func testVacancy(id, organizationID int64, profession string) entities.Vacancy {
	return entities.Vacancy{
		ID:             id,
		OrganizationID: organizationID,
		Profession:     profession,
		Link:           "https://www.superjob.ru/vakansii/test.html",
		PublishedAt:    "2023-01-01 00:00:00",
		PublishedTo:    "2023-02-01 00:00:00",
		ArchivedAt:     "2023-02-01 00:00:00",
		DownloadedAt:   "2023-01-01 06:00:00",
		SourceID:       23,
	}
}

func Test_Organizations_UpsertIgnoresExistingRows(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewOrganizationsRepository(dbContext.DB)

	require.NoError(t, repo.Upsert(ctx, []entities.Organization{testOrganization(1, "Рога и Копыта")}))

	renamed := testOrganization(1, "Рога и Копыта (переименовано)")
	require.NoError(t, repo.Upsert(ctx, []entities.Organization{renamed, testOrganization(2, "Вектор")}))

	var organizations []entities.Organization
	require.NoError(t, dbContext.DB.Order("id").Find(&organizations).Error)

	require.Len(t, organizations, 2)
	assert.Equal(t, "Рога и Копыта", *organizations[0].Name)
	assert.Equal(t, "Вектор", *organizations[1].Name)
}

func Test_Organizations_UpsertIsIdempotent(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewOrganizationsRepository(dbContext.DB)

	batch := []entities.Organization{testOrganization(1, "Рога и Копыта")}
	require.NoError(t, repo.Upsert(ctx, batch))
	require.NoError(t, repo.Upsert(ctx, batch))

	var count int64
	require.NoError(t, dbContext.DB.Model(&entities.Organization{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_Vacancies_UpsertOverwritesIngestColumns(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewVacanciesRepository(dbContext.DB)

	vacancy := testVacancy(42, 7, "Системный администратор")
	require.NoError(t, repo.Upsert(ctx, []entities.Vacancy{vacancy}))

	updated := vacancy
	updated.IsClosed = true
	updated.Town = lo.ToPtr("Новосибирск")
	require.NoError(t, repo.Upsert(ctx, []entities.Vacancy{updated}))

	var stored entities.Vacancy
	require.NoError(t, dbContext.DB.First(&stored, "id = ?", 42).Error)

	assert.True(t, stored.IsClosed)
	assert.Equal(t, "Новосибирск", *stored.Town)
}

func Test_Vacancies_UpsertPreservesReconciliationColumns(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewVacanciesRepository(dbContext.DB)

	vacancy := testVacancy(42, 7, "Системный администратор")
	require.NoError(t, repo.Upsert(ctx, []entities.Vacancy{vacancy}))

	require.NoError(t, repo.SetClassifications(ctx, []entities.MatchResult{{VacancyID: 42, OKPDTRID: 200}}))
	require.NoError(t, repo.MarkMatched(ctx, []int64{42}))

	// next run re-upserts the same vacancy with a fresh ingest timestamp
	rerun := testVacancy(42, 7, "Системный администратор")
	rerun.DownloadedAt = "2023-01-02 06:00:00"
	require.NoError(t, repo.Upsert(ctx, []entities.Vacancy{rerun}))

	var stored entities.Vacancy
	require.NoError(t, dbContext.DB.First(&stored, "id = ?", 42).Error)

	assert.Equal(t, "2023-01-02 06:00:00", stored.DownloadedAt)
	require.NotNil(t, stored.OKPDTRID)
	assert.Equal(t, int64(200), *stored.OKPDTRID)
	assert.True(t, stored.IsMatched)
}

func Test_Vacancies_UnmatchedReturnsOnlyUnprocessedRows(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewVacanciesRepository(dbContext.DB)

	require.NoError(t, repo.Upsert(ctx, []entities.Vacancy{
		testVacancy(44, 7, "Бухгалтер"),
		testVacancy(42, 7, "Системный администратор"),
		testVacancy(43, 8, "Курьер"),
	}))
	require.NoError(t, repo.MarkMatched(ctx, []int64{43}))

	unmatched, err := repo.Unmatched(ctx)
	require.NoError(t, err)

	require.Len(t, unmatched, 2)
	assert.Equal(t, int64(42), unmatched[0].ID)
	assert.Equal(t, "Системный администратор", unmatched[0].Profession)
	assert.Equal(t, int64(44), unmatched[1].ID)
}

func Test_Vacancies_MarkMatchedFlagsEvenUnresolvedRows(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewVacanciesRepository(dbContext.DB)

	require.NoError(t, repo.Upsert(ctx, []entities.Vacancy{testVacancy(42, 7, "Флорист")}))
	require.NoError(t, repo.MarkMatched(ctx, []int64{42}))

	var stored entities.Vacancy
	require.NoError(t, dbContext.DB.First(&stored, "id = ?", 42).Error)

	assert.True(t, stored.IsMatched)
	assert.Nil(t, stored.OKPDTRID)
}

func Test_Classifications_EligibleExcludesPlaceholderRows(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)

	require.NoError(t, dbContext.DB.Create(&[]entities.ClassificationEntry{
		{ID: 300, Name: "Бухгалтер", Code: "20336"},
		{ID: 100, Name: "Разное", Code: entities.PlaceholderCode},
		{ID: 200, Name: "Системный администратор сети", Code: "27099"},
	}).Error)

	repo := NewClassificationsRepository(dbContext.DB)
	entries, err := repo.Eligible(ctx)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, int64(200), entries[0].ID)
	assert.Equal(t, int64(300), entries[1].ID)
}

func Test_CachedClassifications_SecondReadHitsCache(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)

	require.NoError(t, dbContext.DB.Create(&[]entities.ClassificationEntry{
		{ID: 200, Name: "Системный администратор сети", Code: "27099"},
	}).Error)

	cached := NewCachedClassifications(NewClassificationsRepository(dbContext.DB))

	first, err := cached.Eligible(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// the row is gone from the table but the decorator still serves it
	require.NoError(t, dbContext.DB.Delete(&entities.ClassificationEntry{}, "id = ?", 200).Error)

	second, err := cached.Eligible(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func Test_RunLog_RecordAppends(t *testing.T) {

	ctx := context.Background()
	dbContext := newTestDbContext(t)
	repo := NewRunLogRepository(dbContext.DB)

	require.NoError(t, repo.Record(ctx, 3, "stage fetch failed"))
	require.NoError(t, repo.Record(ctx, 0, "run completed"))

	var rows []entities.RunLogEntry
	require.NoError(t, dbContext.DB.Order("id").Find(&rows).Error)

	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].ExitPoint)
	assert.Equal(t, 0, rows[1].ExitPoint)
	assert.Equal(t, "run completed", rows[1].Message)
}
