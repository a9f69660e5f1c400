package app

import "strings"

// Span attributes get unwieldy beyond this; the query head is enough to
// recognize the statement.
const tracedQueryLimit = 512

// formatDBQueryForTrace collapses a SQL statement onto one line and caps its
// length before it is attached to a span.
func formatDBQueryForTrace(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) <= tracedQueryLimit {
		return flat
	}

	return flat[:tracedQueryLimit] + "..."
}
