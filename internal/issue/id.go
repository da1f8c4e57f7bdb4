package issue

import (
	"regexp"
	"time"
)

// IDs are derived from creation time at second granularity. The format keeps
// lexicographic order equal to creation order and embeds the year/month used
// for the storage subdirectories.
const idLayout = "20060102_150405"

var idPattern = regexp.MustCompile(`^\d{8}_\d{6}$`)

// NewID formats t as an issue ID.
func NewID(t time.Time) string {
	return t.Format(idLayout)
}

// ValidID reports whether id has the yyyyMMdd_HHmmss shape.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// idYear and idMonth slice the storage subdirectory names out of an ID.
// Callers must have validated the ID first.
func idYear(id string) string  { return id[:4] }
func idMonth(id string) string { return id[4:6] }
