package trigger_test

import (
	"testing"

	"speech-bench/internal/trigger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		refName   string
		commitSHA string
		want      trigger.Event
		wantErr   bool
	}{
		{
			name:      "baseline tag",
			refName:   "BASELINE-2024-06",
			commitSHA: "0123456789abcdef0123456789abcdef01234567",
			want:      trigger.Event{ID: "BASELINE-2024-06", Baseline: true},
		},
		{
			name:      "bare baseline tag",
			refName:   "BASELINE",
			commitSHA: "",
			want:      trigger.Event{ID: "BASELINE", Baseline: true},
		},
		{
			name:      "branch push uses short hash",
			refName:   "master",
			commitSHA: "0123456789abcdef0123456789abcdef01234567",
			want:      trigger.Event{ID: "0123456", Baseline: false},
		},
		{
			name:      "lowercase baseline is not a baseline tag",
			refName:   "baseline-fix",
			commitSHA: "fedcba9876543210fedcba9876543210fedcba98",
			want:      trigger.Event{ID: "fedcba9", Baseline: false},
		},
		{
			name:      "short sha on non-baseline ref fails",
			refName:   "master",
			commitSHA: "abc",
			wantErr:   true,
		},
		{
			name:    "empty trigger fails",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := trigger.Resolve(tt.refName, tt.commitSHA)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	a, err := trigger.Resolve("master", "0123456789abcdef0123456789abcdef01234567")
	require.NoError(t, err)
	b, err := trigger.Resolve("master", "0123456789abcdef0123456789abcdef01234567")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := trigger.Resolve("master", "89abcdef0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestArtifactNames(t *testing.T) {
	ev := trigger.Event{ID: "0123456", Baseline: false}
	assert.Equal(t, "test_data_update", ev.Mode())
	assert.Equal(t, "test-summary-from-test_data_update-0123456.json", ev.SummaryBlobName())
	assert.Equal(t, "test-results-from-test_data_update-0123456.txt", ev.ResultsBlobName())

	base := trigger.Event{ID: "BASELINE", Baseline: true}
	assert.Equal(t, "test_baseline", base.Mode())
	assert.Equal(t, "test-summary-from-test_baseline-BASELINE.json", base.SummaryBlobName())
}
