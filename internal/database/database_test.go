package database_test

import (
	"path/filepath"
	"testing"

	"speech-bench/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLedger(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)

	runId, err := database.CreateRun(db, "0123456", "test_data_update", false)
	require.NoError(t, err)

	var run database.BenchmarkRun
	require.NoError(t, db.First(&run, "id = ?", runId).Error)
	assert.Equal(t, "0123456", run.EventId)
	assert.Equal(t, database.RunRunning, run.Status)
	assert.False(t, run.CompletionTime.Valid)

	require.NoError(t, database.CompleteRun(db, runId, database.RunFailed, "baseline resolution"))

	require.NoError(t, db.First(&run, "id = ?", runId).Error)
	assert.Equal(t, database.RunFailed, run.Status)
	assert.Equal(t, "baseline resolution", run.Checkpoint.String)
	assert.True(t, run.CompletionTime.Valid)
}
