// Package files reads LMS enrolment history exports from disk into raw
// field rows. It understands the two export formats the LMS produces,
// comma-delimited text and Excel workbooks, and hands both to the caller
// as the same [][]string shape so the downstream parser is format-blind.
package files
