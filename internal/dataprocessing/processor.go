package dataprocessing

import (
	"log/slog"
	"time"

	"enrolcli/pkg/contracts/domain"
)

// Tally reduces enrolment records to a day-offset histogram of the running
// net enrolment count.
//
// The input must be in raw file order, i.e. reverse-chronological; Tally
// reverses a copy to chronological order before folding, so the running
// count is applied oldest-first and caller-owned data is never mutated.
// For each event the post-update accumulator value is written under the
// event's day offset, overwriting any earlier value for the same day: a
// day's entry always reflects the net count after the last event of that
// day.
//
// Tally is a pure fold over the sequence; identical input and epoch always
// produce an identical histogram.
func Tally(records []domain.Record, epoch time.Time, logger *slog.Logger) domain.Histogram {
	if logger == nil {
		logger = slog.Default()
	}

	chronological := make([]domain.Record, len(records))
	for i, record := range records {
		chronological[len(records)-1-i] = record
	}

	histogram := make(domain.Histogram, len(chronological))
	count := 0
	for _, record := range chronological {
		switch record.Action {
		case domain.ActionAdded:
			count++
		case domain.ActionRemoved:
			count--
		default:
			// Ingestion never emits these; if one slips through,
			// leave the count untouched but still record the day.
			logger.Warn("unexpected action reached tally stage",
				slog.String("action", string(record.Action)),
				slog.Time("instant", record.Instant))
		}
		histogram[DayOffset(record.Instant, epoch)] = count
	}
	return histogram
}
