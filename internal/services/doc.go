// Package services contains the business logic layer. EnrolmentService
// orchestrates the enrolment pipeline: reading event rows from CSV or Excel
// input, parsing them into records, tallying per-day net enrolment counts
// against an epoch date, and producing a windowed series with its summary.
package services
