package services

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacsdata/sj-parser/internal/entities"
	"testing"
)

func taxonomy() []entities.ClassificationEntry {
	return []entities.ClassificationEntry{
		{ID: 100, Name: "Инженер-программист", Code: "22824"},
		{ID: 200, Name: "Системный администратор сети", Code: "27099"},
		{ID: 300, Name: "Бухгалтер", Code: "20336"},
	}
}

func Test_Matcher_ResolvesCloseProfession(t *testing.T) {

	matcher := NewMatcher(75)

	results := matcher.Match([]entities.UnmatchedVacancy{
		{ID: 42, Profession: "Системный администратор"},
	}, taxonomy())

	require.Len(t, results, 1)
	assert.Equal(t, int64(42), results[0].VacancyID)
	assert.Equal(t, int64(200), results[0].OKPDTRID)
}

func Test_Matcher_TokenOrderDoesNotMatter(t *testing.T) {

	matcher := NewMatcher(75)

	results := matcher.Match([]entities.UnmatchedVacancy{
		{ID: 42, Profession: "администратор Системный"},
	}, taxonomy())

	require.Len(t, results, 1)
	assert.Equal(t, int64(200), results[0].OKPDTRID)
}

func Test_Matcher_BelowCutoffProducesNoResult(t *testing.T) {

	matcher := NewMatcher(75)

	results := matcher.Match([]entities.UnmatchedVacancy{
		{ID: 42, Profession: "Флорист-декоратор"},
	}, taxonomy())

	assert.Empty(t, results)
}

func Test_Matcher_TieKeepsEarliestEntry(t *testing.T) {

	matcher := NewMatcher(75)
	entries := []entities.ClassificationEntry{
		{ID: 10, Name: "Бухгалтер", Code: "20336"},
		{ID: 20, Name: "Бухгалтер", Code: "20337"},
	}

	for i := 0; i < 5; i++ {
		results := matcher.Match([]entities.UnmatchedVacancy{
			{ID: 1, Profession: "Бухгалтер"},
		}, entries)

		require.Len(t, results, 1)
		assert.Equal(t, int64(10), results[0].OKPDTRID)
	}
}

func Test_Matcher_NoVacanciesNoResults(t *testing.T) {

	matcher := NewMatcher(75)

	assert.Empty(t, matcher.Match(nil, taxonomy()))
	assert.Empty(t, matcher.Match([]entities.UnmatchedVacancy{
		{ID: 1, Profession: "Бухгалтер"},
	}, nil))
}
