package domain

import (
	"time"
)

// Action classifies an enrolment event from the LMS history export.
type Action string

const (
	// ActionAdded marks a student being enrolled.
	ActionAdded Action = "Added"
	// ActionRemoved marks a student being unenrolled.
	ActionRemoved Action = "Removed"
	// ActionUnrecognized marks any other label. Ingestion never emits
	// records with this action; it exists for defensive classification.
	ActionUnrecognized Action = "Unrecognized"
)

// ParseAction maps a raw action label to an Action. Anything that is not
// exactly "Added" or "Removed" is ActionUnrecognized.
func ParseAction(label string) Action {
	switch label {
	case string(ActionAdded):
		return ActionAdded
	case string(ActionRemoved):
		return ActionRemoved
	default:
		return ActionUnrecognized
	}
}

// Record represents one enrolment event from the input file. Only the
// event instant and the kind of action matter; the student identity
// columns are discarded at ingestion. Records are immutable once built.
type Record struct {
	Instant time.Time `json:"instant" validate:"required"`
	Action  Action    `json:"action" validate:"required,oneof=Added Removed"`
}

// Histogram maps a signed day offset from the epoch to the net enrolment
// count as of the last event on that day. Days with no events have no key.
// It is built unordered and must be consumed in ascending key order.
type Histogram map[int]int

// Series is the bounded, ascending, index-aligned pair of sequences
// consumed by chart rendering and export: Counts[i] is the net enrolment
// as of day Days[i].
type Series struct {
	Days   []int `json:"days"`
	Counts []int `json:"counts"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Days)
}

// Empty reports whether the series holds no points.
func (s Series) Empty() bool {
	return len(s.Days) == 0
}

// Summary holds the derived statistics of a non-empty series: the maximum
// net enrolment observed inside the window and the count as of the latest
// day in the window.
type Summary struct {
	Maximum int `json:"maximum"`
	Current int `json:"current"`
}
