package speech

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ModelKind selects which class of models phase-1 resolution considers.
type ModelKind string

const (
	AcousticModel ModelKind = "Acoustic"
	LanguageModel ModelKind = "Language"
)

// TestSummary is the JSON document `test show` emits after its leading log
// line. ResultsURL is only fetchable while the test still exists on the
// service.
type TestSummary struct {
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	WordErrorRate float64 `json:"wordErrorRate"`
	ResultsURL    string  `json:"resultsUrl"`
}

// ParseSummary strips the non-JSON log line(s) the CLI prints before the
// summary document and decodes what remains. It returns the parsed summary and
// the cleaned JSON text, which is what gets archived.
func ParseSummary(raw string) (TestSummary, string, error) {
	lines := strings.Split(raw, "\n")

	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") {
			start = i
			break
		}
	}
	if start < 0 {
		return TestSummary{}, "", fmt.Errorf("no JSON document found in test summary output")
	}

	cleaned := strings.TrimSpace(strings.Join(lines[start:], "\n"))

	var summary TestSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return TestSummary{}, "", fmt.Errorf("failed to parse test summary: %w", err)
	}

	return summary, cleaned, nil
}
