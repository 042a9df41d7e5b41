package db

import (
	"strconv"
	"strings"
)

// Rebind rewrites "?" placeholders to "$n" for Postgres drivers. MySQL queries
// are returned untouched. Queries must not contain literal question marks.
func Rebind(driver, query string) string {
	if !IsPostgres(driver) {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func IsPostgres(driver string) bool {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql", "pgx":
		return true
	}
	return false
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
