// Package middleware provides HTTP middleware for the enrolment web server:
// request ID propagation, structured request logging, panic recovery, and
// token-bucket rate limiting.
package middleware
