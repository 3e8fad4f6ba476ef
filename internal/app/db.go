package app

import (
	"net/url"
	"strings"
)

// statsDSN applies connection options that only make sense for the stats
// store. disable_prepared_binary_result is required behind pgbouncer in
// transaction pooling mode.
func statsDSN(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// databaseName extracts the database name from either a postgres:// URL or
// a key=value DSN for the db.name span attribute.
func databaseName(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(raw) {
		if value, ok := strings.CutPrefix(token, "dbname="); ok {
			if name := strings.Trim(value, `"'`); name != "" {
				return name
			}
		}
	}

	return ""
}

const maxTracedQueryLen = 512

// traceQuery collapses whitespace and truncates long statements so ranking
// queries with their long column lists stay readable in span attributes.
func traceQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLen {
		return normalized
	}
	return normalized[:maxTracedQueryLen] + "..."
}
