package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/vacsdata/sj-parser/internal/clients/sj"
	"github.com/vacsdata/sj-parser/internal/entities"
	"github.com/vacsdata/sj-parser/internal/events"
	"github.com/vacsdata/sj-parser/internal/logger"
	"github.com/vacsdata/sj-parser/internal/metrics"
	"time"
)

// Stage identifies the point a run terminated at. The numeric value doubles
// as the process exit code and the run-log exit_point.
type Stage int

const (
	StageConnect Stage = iota + 1
	StageAuth
	StageFetch
	StageNormalize
	StageUpsertOrganizations
	StageUpsertVacancies
	StageReadBack
	StageMatch
	StageWriteBack
)

const exitPointSuccess = 0

func (s Stage) String() string {
	switch s {
	case StageConnect:
		return "connect"
	case StageAuth:
		return "auth"
	case StageFetch:
		return "fetch"
	case StageNormalize:
		return "normalize"
	case StageUpsertOrganizations:
		return "upsert-organizations"
	case StageUpsertVacancies:
		return "upsert-vacancies"
	case StageReadBack:
		return "read-back"
	case StageMatch:
		return "match"
	case StageWriteBack:
		return "write-back"
	default:
		return "unknown"
	}
}

func (s Stage) ExitCode() int {
	return int(s)
}

func (s Stage) errorType() string {
	switch s {
	case StageConnect, StageUpsertOrganizations, StageUpsertVacancies, StageReadBack, StageWriteBack:
		return logger.ErrorTypeDb
	case StageAuth, StageFetch:
		return logger.ErrorTypeSjApi
	case StageNormalize:
		return logger.ErrorTypeTransform
	case StageMatch:
		return logger.ErrorTypeMatch
	default:
		return "unknown"
	}
}

// StageError is a terminal run failure tied to the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %v failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type authClient interface {
	Authenticate(ctx context.Context, creds sj.Credentials) (string, error)
}

type organizationStore interface {
	Upsert(ctx context.Context, organizations []entities.Organization) error
}

type vacancyStore interface {
	Upsert(ctx context.Context, vacancies []entities.Vacancy) error
	Unmatched(ctx context.Context) ([]entities.UnmatchedVacancy, error)
	SetClassifications(ctx context.Context, matches []entities.MatchResult) error
	MarkMatched(ctx context.Context, ids []int64) error
}

type classificationStore interface {
	Eligible(ctx context.Context) ([]entities.ClassificationEntry, error)
}

type runLogStore interface {
	Record(ctx context.Context, exitPoint int, message string) error
}

// Pipeline sequences one full ingest-normalize-reconcile run. Stages are
// never retried; the first failure terminates the run and is recorded to
// the run log best-effort.
type Pipeline struct {
	client          authClient
	fetcher         *Fetcher
	normalizer      *Normalizer
	matcher         *Matcher
	organizations   organizationStore
	vacancies       vacancyStore
	classifications classificationStore
	runLog          runLogStore
	bus             EventBus.Bus
	credentials     sj.Credentials
}

func NewPipeline(client authClient, fetcher *Fetcher, normalizer *Normalizer, matcher *Matcher,
	organizations organizationStore, vacancies vacancyStore, classifications classificationStore,
	runLog runLogStore, bus EventBus.Bus, credentials sj.Credentials) *Pipeline {

	return &Pipeline{
		client:          client,
		fetcher:         fetcher,
		normalizer:      normalizer,
		matcher:         matcher,
		organizations:   organizations,
		vacancies:       vacancies,
		classifications: classifications,
		runLog:          runLog,
		bus:             bus,
		credentials:     credentials,
	}
}

// Run executes the whole pipeline once. A nil return means the success
// marker was recorded; otherwise the returned error is a *StageError.
func (p *Pipeline) Run(ctx context.Context) error {

	start := time.Now()
	log.Info("pipeline run started")

	err := p.run(ctx)

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	log.Infof("pipeline run finished after %v", time.Since(start))
	return nil
}

func (p *Pipeline) run(ctx context.Context) error {

	token, err := stage(ctx, p, StageAuth, func(ctx context.Context) (string, error) {
		return p.client.Authenticate(ctx, p.credentials)
	})
	if err != nil {
		return err
	}

	listings, err := stage(ctx, p, StageFetch, func(ctx context.Context) ([]sj.Listing, error) {
		return p.fetcher.FetchAll(ctx, token)
	})
	if err != nil {
		return err
	}

	records, err := stage(ctx, p, StageNormalize, func(_ context.Context) (normalized, error) {
		organizations, vacancies, err := p.normalizer.Normalize(listings)
		return normalized{organizations, vacancies}, err
	})
	if err != nil {
		return err
	}
	log.Infof("normalized %d listings into %d organizations and %d vacancies",
		len(listings), len(records.organizations), len(records.vacancies))

	if _, err = stage(ctx, p, StageUpsertOrganizations, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.organizations.Upsert(ctx, records.organizations)
	}); err != nil {
		return err
	}

	if _, err = stage(ctx, p, StageUpsertVacancies, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.vacancies.Upsert(ctx, records.vacancies)
	}); err != nil {
		return err
	}

	reference, err := stage(ctx, p, StageReadBack, func(ctx context.Context) (readBack, error) {
		unmatched, err := p.vacancies.Unmatched(ctx)
		if err != nil {
			return readBack{}, err
		}
		entries, err := p.classifications.Eligible(ctx)
		return readBack{unmatched, entries}, err
	})
	if err != nil {
		return err
	}

	matches, err := stage(ctx, p, StageMatch, func(_ context.Context) ([]entities.MatchResult, error) {
		return p.matcher.Match(reference.unmatched, reference.entries), nil
	})
	if err != nil {
		return err
	}

	if _, err = stage(ctx, p, StageWriteBack, func(ctx context.Context) (struct{}, error) {
		if err := p.vacancies.SetClassifications(ctx, matches); err != nil {
			return struct{}{}, err
		}
		processedIDs := make([]int64, 0, len(reference.unmatched))
		for _, vacancy := range reference.unmatched {
			processedIDs = append(processedIDs, vacancy.ID)
		}
		return struct{}{}, p.vacancies.MarkMatched(ctx, processedIDs)
	}); err != nil {
		return err
	}

	metrics.VacanciesMatched.Add(float64(len(matches)))

	p.recordOutcome(ctx, exitPointSuccess, "run completed")
	return nil
}

type normalized struct {
	organizations []entities.Organization
	vacancies     []entities.Vacancy
}

type readBack struct {
	unmatched []entities.UnmatchedVacancy
	entries   []entities.ClassificationEntry
}

// stage runs one pipeline step, times it, and converts a failure into a
// recorded *StageError.
func stage[T any](ctx context.Context, p *Pipeline, s Stage, fn func(ctx context.Context) (T, error)) (T, error) {

	start := time.Now()
	result, err := fn(ctx)
	metrics.StageDuration.WithLabelValues(s.String()).Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, s.errorType()).
			Errorf("stage %v failed: %v", s, err)
		p.recordOutcome(ctx, s.ExitCode(), fmt.Sprintf("stage %v failed: %v", s, err))
		return result, &StageError{Stage: s, Err: err}
	}

	p.publish(events.StageCompletedTopic, events.StageCompleted{
		Stage:    s.String(),
		Duration: time.Since(start),
	})
	return result, nil
}

// recordOutcome writes the terminal run-log row. Best-effort: a log-write
// failure must not mask the original stage error.
func (p *Pipeline) recordOutcome(ctx context.Context, exitPoint int, message string) {
	if err := p.runLog.Record(ctx, exitPoint, message); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record run outcome: %v", err)
	}
	p.publish(events.RunFinishedTopic, events.RunFinished{ExitPoint: exitPoint, Message: message})
}

func (p *Pipeline) publish(topic string, payload any) {
	if p.bus != nil {
		p.bus.Publish(topic, payload)
	}
}
