package main

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/vacsdata/sj-parser/internal/clients/sj"
	"github.com/vacsdata/sj-parser/internal/config"
	"github.com/vacsdata/sj-parser/internal/events"
	"github.com/vacsdata/sj-parser/internal/logger"
	"github.com/vacsdata/sj-parser/internal/metrics"
	"github.com/vacsdata/sj-parser/internal/repositories"
	"github.com/vacsdata/sj-parser/internal/services"
	"os"
	"os/signal"
	"syscall"
)

func buildPipeline(cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus) *services.Pipeline {

	client := sj.NewClient(cfg.SJ.ClientSecret)
	if cfg.SJ.BaseURL != "" {
		client.SetBaseURL(cfg.SJ.BaseURL)
	}
	if cfg.SJ.RequestTimeout > 0 {
		client.SetRequestTimeout(cfg.SJ.RequestTimeout)
	}
	if cfg.SJ.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.SJ.MaxRequestsPerSecond)
	}

	fetcher, err := services.NewFetcher(client, services.FetcherOptions{
		Catalogues: cfg.Pipeline.Catalogues,
		TownID:     cfg.Pipeline.TownID,
		Pages:      cfg.Pipeline.Pages,
		PerPage:    cfg.Pipeline.PerPage,
		Workers:    cfg.Pipeline.Workers,
	})
	if err != nil {
		log.Fatalf("can't create fetcher: %v", err)
	}

	organizations := repositories.NewOrganizationsRepository(dbContext.DB)
	vacancies := repositories.NewVacanciesRepository(dbContext.DB)
	classifications := repositories.NewCachedClassifications(
		repositories.NewClassificationsRepository(dbContext.DB))
	runLog := repositories.NewRunLogRepository(dbContext.DB)

	return services.NewPipeline(
		client,
		fetcher,
		services.NewNormalizer(cfg.Pipeline.SourceID),
		services.NewMatcher(cfg.Pipeline.Cutoff),
		organizations,
		vacancies,
		classifications,
		runLog,
		bus,
		sj.Credentials{
			Login:        cfg.SJ.Login,
			Password:     cfg.SJ.Password,
			ClientID:     cfg.SJ.ClientID,
			ClientSecret: cfg.SJ.ClientSecret,
		},
	)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var stageErr *services.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage.ExitCode()
	}
	return 1
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Errorf("can't create db context: %v", err)
		os.Exit(services.StageConnect.ExitCode())
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Errorf("can't migrate db context: %v", err)
		os.Exit(services.StageConnect.ExitCode())
	}

	bus := EventBus.New()
	if err = bus.Subscribe(events.RunFinishedTopic, func(finished events.RunFinished) {
		log.Infof("run finished with exit point %d: %s", finished.ExitPoint, finished.Message)
	}); err != nil {
		log.Fatalf("can't subscribe to run events: %v", err)
	}

	pipeline := buildPipeline(cfg, dbContext, bus)

	if cfg.Pipeline.Schedule == "" {
		os.Exit(exitCode(pipeline.Run(ctx)))
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Pipeline.Schedule, func() {
		if runErr := pipeline.Run(ctx); runErr != nil {
			log.Errorf("scheduled run failed: %v", runErr)
		}
	})
	if err != nil {
		log.Fatalf("invalid schedule %q: %v", cfg.Pipeline.Schedule, err)
	}

	scheduler.Start()
	log.Infof("scheduler started with schedule %q", cfg.Pipeline.Schedule)

	<-ctx.Done()

	log.Info("Shutting down...")
	<-scheduler.Stop().Done()
	log.Info("Scheduler stopped.")
}
