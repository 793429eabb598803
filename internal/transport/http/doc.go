// Package http implements the HTTP request handlers for the enrolment web
// server. Handlers stay thin: they parse and validate query parameters,
// delegate to the service layer, and map service errors onto API error
// responses rendered with go-chi/render.
package http
