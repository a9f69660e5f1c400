package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes to the DSN when
// the toggle is on. PostgREST owns the same database and chokes on binary
// result rows left behind by prepared statements. An explicit value in the
// DSN wins over the toggle.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	params := u.Query()
	if params.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	params.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = params.Encode()

	return u.String()
}

// dbNameFromURL extracts the database name for the otelsql db.name attribute.
// It accepts both postgres:// URLs and key=value DSNs; unknown shapes yield
// an empty name rather than an error.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if u, err := url.Parse(trimmed); err == nil && u != nil && u.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(u.Path, "/")); name != "" {
			return name
		}
	}

	for _, pair := range strings.Fields(trimmed) {
		key, value, found := strings.Cut(pair, "=")
		if !found || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
