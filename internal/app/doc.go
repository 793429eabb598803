// Package app assembles the enrolment web server: configuration, logging,
// services, HTTP handlers, middleware and graceful shutdown.
package app
