// Package chart renders an enrolment series as a line chart: SVG for file
// output from the CLI, vega-lite JSON for the web dashboard. It consumes
// only the final (days, counts) series and summary values; everything
// about how those are computed lives in dataprocessing.
package chart
