package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"enrolcli/internal/dataprocessing"
	"enrolcli/internal/files"
	"enrolcli/internal/infrastructure"
	"enrolcli/internal/validation"
	"enrolcli/pkg/contracts/domain"
)

var (
	seriesBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enrol_series_builds_total",
		Help: "Total number of enrolment series built",
	})

	recordsParsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enrol_records_parsed_total",
		Help: "Total number of enrolment records parsed from input files",
	})

	seriesBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enrol_series_build_duration_seconds",
		Help:    "Time spent building an enrolment series end to end",
		Buckets: prometheus.DefBuckets,
	})
)

// SeriesRequest describes one series computation: the source file, the
// epoch date the day offsets are computed against, and the inclusive
// window of offsets to keep.
type SeriesRequest struct {
	InputPath string
	EpochDate string
	Low       int
	High      int
}

// SeriesResult bundles the computed series with its summary. OK is false
// when the window contained no data points, in which case Summary holds
// zero values and must not be reported.
type SeriesResult struct {
	Epoch   time.Time
	Series  domain.Series
	Summary domain.Summary
	OK      bool
}

// EnrolmentService turns raw enrolment event logs into day-offset time series
type EnrolmentService struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewEnrolmentService creates a new enrolment service
func NewEnrolmentService(logger *slog.Logger) *EnrolmentService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "enrolment_service")
	return &EnrolmentService{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// BuildSeries runs the full pipeline: read rows from the input file, parse
// them into records, tally per-day net counts against the epoch, and window
// the result into a series with its summary.
func (s *EnrolmentService) BuildSeries(ctx context.Context, req SeriesRequest) (SeriesResult, error) {
	timer := prometheus.NewTimer(seriesBuildDuration)
	defer timer.ObserveDuration()

	epoch, err := dataprocessing.NormalizeEpoch(req.EpochDate)
	if err != nil {
		return SeriesResult{}, fmt.Errorf("%w %q: %v", ErrInvalidEpoch, req.EpochDate, err)
	}

	if err := s.validator.ValidateInputFile(req.InputPath); err != nil {
		return SeriesResult{}, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}

	rows, err := files.ReadRows(req.InputPath)
	if err != nil {
		return SeriesResult{}, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, req.InputPath, err)
	}

	records, err := dataprocessing.ParseRows(rows, s.logger)
	if err != nil {
		return SeriesResult{}, fmt.Errorf("%w: %s: %v", ErrMalformedInput, req.InputPath, err)
	}
	recordsParsedTotal.Add(float64(len(records)))

	histogram := dataprocessing.Tally(records, epoch, s.logger)
	series := dataprocessing.BuildSeries(histogram, req.Low, req.High)
	summary, ok := dataprocessing.Summarize(series)

	seriesBuildsTotal.Inc()

	s.logger.InfoContext(ctx, "series built",
		slog.String("input", req.InputPath),
		slog.Time("epoch", epoch),
		slog.Int("records", len(records)),
		slog.Int("points", series.Len()),
		slog.Bool("has_data", ok),
	)

	return SeriesResult{
		Epoch:   epoch,
		Series:  series,
		Summary: summary,
		OK:      ok,
	}, nil
}
