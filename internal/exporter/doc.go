// Package exporter handles writing computed enrolment series to CSV
// files, with Excel-friendly output (UTF-8 BOM) and directory creation.
package exporter
