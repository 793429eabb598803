package services

import "errors"

// Enrolment service errors
var (
	ErrInvalidEpoch    = errors.New("invalid epoch date")
	ErrInputUnreadable = errors.New("input file unreadable")
	ErrMalformedInput  = errors.New("malformed input row")
)
