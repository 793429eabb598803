// Package dataprocessing turns a reverse-chronological log of LMS
// enrolment events into a day-indexed series of net enrolment counts.
//
// The package is organized into three components:
//
//  1. Parser: normalizes date-time text and filters raw rows into Records
//  2. Processor: reorders to chronological and folds a running tally into
//     a day-offset histogram
//  3. Summarizer: applies the day window and builds the aligned series
//     plus its summary statistics
//
// # Data Flow
//
//	Raw rows → ParseRows → Records → Tally → Histogram → BuildSeries → Series
//
// All offsets are whole days relative to a caller-supplied epoch date,
// normalized to the last minute of that day. See DayOffset for the
// truncation semantics near the epoch.
//
// Everything here is a pure, single-pass, synchronous computation; the
// only side effect is diagnostic logging for rows that are dropped.
package dataprocessing
