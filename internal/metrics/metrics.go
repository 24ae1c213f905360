package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parser_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parser_run_duration_seconds",
			Help:    "Duration of each full pipeline run in seconds.",
			Buckets: []float64{30, 60, 300, 900, 1800, 3600},
		},
	)
	StageDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "parser_stage_duration_seconds",
			Help:       "Duration of each pipeline stage.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage"},
	)
	ListingsFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "parser_listings_fetched_total",
			Help: "Total number of raw listings fetched from the API.",
		},
	)
	VacanciesMatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "parser_vacancies_matched_total",
			Help: "Total number of vacancies resolved to an OKPDTR code.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(ListingsFetched)
	prometheus.MustRegister(VacanciesMatched)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
