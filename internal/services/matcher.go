package services

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	log "github.com/sirupsen/logrus"
	"github.com/vacsdata/sj-parser/internal/entities"
)

const DefaultSimilarityCutoff = 75

// Matcher resolves free-text professions to OKPDTR taxonomy entries by
// token-set similarity. Every (vacancy, entry) pair is scored on every call;
// with a few thousand taxonomy rows that is cheap enough to redo per run.
type Matcher struct {
	cutoff int
}

func NewMatcher(cutoff int) *Matcher {
	if cutoff <= 0 {
		cutoff = DefaultSimilarityCutoff
	}
	return &Matcher{cutoff: cutoff}
}

// Match returns one result per vacancy whose best-scoring classification name
// reaches the cutoff. Ties keep the earliest entry in the given slice, so
// the outcome is deterministic for an id-ordered taxonomy.
func (m *Matcher) Match(vacancies []entities.UnmatchedVacancy,
	entries []entities.ClassificationEntry) []entities.MatchResult {

	var results []entities.MatchResult

	for _, vacancy := range vacancies {
		bestScore := 0
		var bestEntry entities.ClassificationEntry

		for _, entry := range entries {
			// forceAscii off: professions and taxonomy names are Cyrillic
			score := fuzzy.TokenSetRatio(vacancy.Profession, entry.Name, false, true)
			if score > bestScore {
				bestScore = score
				bestEntry = entry
			}
		}

		if bestScore < m.cutoff {
			continue
		}

		log.Debugf("profession %q matched %q with score %d", vacancy.Profession, bestEntry.Name, bestScore)
		results = append(results, entities.MatchResult{
			VacancyID: vacancy.ID,
			OKPDTRID:  bestEntry.ID,
		})
	}

	log.Infof("matched %d of %d unmatched vacancies", len(results), len(vacancies))
	return results
}
