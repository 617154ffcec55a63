package repository

import "strings"

// joinList and splitList encode string sets (table ids, tags, zone
// ids) into the comma-separated columns used throughout the schema.
// Empty sets round-trip to empty strings so NULL handling stays out of
// the scan paths.

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
