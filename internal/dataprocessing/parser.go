package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"enrolcli/pkg/contracts/domain"
)

const (
	// InstantFormat matches the timestamps in LMS enrolment history
	// exports, e.g. "21-Sep-2014 21:47" (24-hour clock).
	InstantFormat = "02-Jan-2006 15:04"

	// lastMinuteOfDay is appended to a date-only epoch so that every
	// event on the epoch day itself lands on day 0.
	lastMinuteOfDay = "23:59"

	// recordFieldCount is the exact column count of a history row:
	// DATE,LAST_NAME,GIVEN_NAMES,STUDENT_NUMBER,USERNAME,ACTION.
	recordFieldCount = 6
)

// ParseInstant parses an LMS date-time string into a comparable instant.
// The month abbreviation is accepted in any letter case ("28-JUL-2014"
// appears in real exports); everything else must match InstantFormat
// exactly.
func ParseInstant(text string) (time.Time, error) {
	t, err := time.Parse(InstantFormat, canonicalizeMonth(strings.TrimSpace(text)))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse instant %q: %w", text, err)
	}
	return t, nil
}

// NormalizeEpoch converts a date-only epoch string to the last minute of
// that calendar day, establishing the day as day 0 for all offsets.
func NormalizeEpoch(dateOnly string) (time.Time, error) {
	epoch, err := ParseInstant(strings.TrimSpace(dateOnly) + " " + lastMinuteOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse epoch %q: %w", dateOnly, err)
	}
	return epoch, nil
}

// DayOffset computes the signed whole-day offset of an event from the
// epoch using division that truncates toward zero, not floor. Events less
// than a full day before the epoch therefore truncate to day 0; the first
// negative offset appears only once the gap exceeds 24 hours. Downstream
// bucketing depends on this boundary behavior.
func DayOffset(event, epoch time.Time) int {
	return int(event.Sub(epoch) / (24 * time.Hour))
}

// ParseRows filters raw history rows into enrolment records, keeping the
// input (reverse-chronological) order. Rows with the wrong field count are
// dropped without diagnosis; rows with an action label other than exactly
// "Added" or "Removed" are logged and dropped so they never reach the
// tally stage. A malformed date on an otherwise valid row is fatal.
func ParseRows(rows [][]string, logger *slog.Logger) ([]domain.Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var records []domain.Record
	for i, row := range rows {
		if len(row) != recordFieldCount {
			continue
		}

		label := row[len(row)-1]
		action := domain.ParseAction(label)
		if action == domain.ActionUnrecognized {
			logger.Warn("unrecognised action, skipping row",
				slog.Int("row", i),
				slog.String("action", label),
				slog.String("date", row[0]))
			continue
		}

		instant, err := ParseInstant(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		records = append(records, domain.Record{Instant: instant, Action: action})
	}
	return records, nil
}

// canonicalizeMonth rewrites the month token of "DD-Mon-YYYY ..." text to
// title case so time.Parse accepts exports that upper-case the month.
func canonicalizeMonth(text string) string {
	parts := strings.SplitN(text, "-", 3)
	if len(parts) != 3 || len(parts[1]) != 3 {
		return text
	}
	parts[1] = strings.ToUpper(parts[1][:1]) + strings.ToLower(parts[1][1:])
	return strings.Join(parts, "-")
}
