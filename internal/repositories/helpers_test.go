package repositories

import (
	"regexp"
	"time"
)

func strPtr(s string) *string { return &s }

// sqlLike turns a literal SQL fragment into a pgxmock regexp.
func sqlLike(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

var (
	tenantA = "pkbm-pena-hikmah"
	tenantB = "pkbm-lain"
	fixedAt = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
)
