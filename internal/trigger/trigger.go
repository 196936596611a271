package trigger

import (
	"fmt"
	"strings"
)

const (
	// Tags named BASELINE* force a baseline test against the vendor's
	// pretrained model instead of the current benchmark model.
	BaselineTagPrefix = "BASELINE"

	shortHashLen = 7
)

// Event identifies a single pipeline run. The ID is stable per commit/tag and
// is embedded in every artifact name the run produces.
type Event struct {
	ID       string
	Baseline bool
}

// Resolve derives the run identity from the CI trigger: a BASELINE* tag runs a
// forced baseline test named after the tag, any other push runs a data-update
// test named after the short commit hash.
func Resolve(refName, commitSHA string) (Event, error) {
	if strings.HasPrefix(refName, BaselineTagPrefix) {
		return Event{ID: refName, Baseline: true}, nil
	}

	if len(commitSHA) < shortHashLen {
		return Event{}, fmt.Errorf("commit sha %q is too short to derive an event id", commitSHA)
	}

	return Event{ID: commitSHA[:shortHashLen], Baseline: false}, nil
}

// Mode returns the artifact-name component that distinguishes baseline runs
// from data-update runs.
func (e Event) Mode() string {
	if e.Baseline {
		return "test_baseline"
	}
	return "test_data_update"
}

// SummaryBlobName is the object key for the run's test summary in the
// test-results container.
func (e Event) SummaryBlobName() string {
	return fmt.Sprintf("test-summary-from-%s-%s.json", e.Mode(), e.ID)
}

// ResultsBlobName is the object key for the run's raw results in the
// test-results container.
func (e Event) ResultsBlobName() string {
	return fmt.Sprintf("test-results-from-%s-%s.txt", e.Mode(), e.ID)
}
