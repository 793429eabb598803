// Package shared holds cross-cutting utilities with no domain logic of
// their own. Currently this is testutil, the slog capture helpers used by
// tests that assert on ingestion diagnostics.
package shared
