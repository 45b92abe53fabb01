// Package logging builds the JSON slog logger used by every binary and
// carries a request-scoped logger through context.Context.
//
// HTTP middleware stores a logger enriched with request_id and trace_id via
// WithLogger; handlers and the article service retrieve it with FromContext
// and fall back to slog.Default outside a request.
package logging
