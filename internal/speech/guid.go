package speech

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var guidPattern = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b|\b[0-9a-fA-F]{32}\b`)

// ValidGUID reports whether s is exactly 32 hex digits, with hyphens
// optionally present. Every handle returned by the vendor CLI must pass this
// before the pipeline will use it.
func ValidGUID(s string) bool {
	stripped := strings.ReplaceAll(s, "-", "")
	if len(stripped) != 32 {
		return false
	}
	_, err := uuid.Parse(stripped)
	return err == nil
}

// ExtractGUIDs scans free-form CLI output for GUID tokens, in order of
// appearance. The vendor tool prints handles inside human-readable text, so
// this replaces the fixed line/column parsing the tool's docs suggest.
func ExtractGUIDs(output string) []string {
	return guidPattern.FindAllString(output, -1)
}

// FirstGUID returns the first GUID token in output, or "" if none is present.
func FirstGUID(output string) string {
	return guidPattern.FindString(output)
}
