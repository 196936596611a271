package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"speech-bench/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
model_kind: Language
locale: de-de
transcript_file: transcript.txt
archive_path: data/bundle.zip
`), 0o644))

	scenario, err := config.LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "Language", scenario.ModelKind)
	assert.Equal(t, "de-de", scenario.Locale)
	assert.Equal(t, "transcript.txt", scenario.TranscriptFile)
	assert.Equal(t, "data/bundle.zip", scenario.ArchivePath)
}

func TestLoadScenarioDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark.yml")
	require.NoError(t, os.WriteFile(path, []byte("locale: en-gb\n"), 0o644))

	scenario, err := config.LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "Acoustic", scenario.ModelKind)
	assert.Equal(t, "en-gb", scenario.Locale)
	assert.Equal(t, "trans.txt", scenario.TranscriptFile)
	assert.Equal(t, "testing/audio-and-trans.zip", scenario.ArchivePath)
}

func TestLoadScenarioInvalidKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark.yml")
	require.NoError(t, os.WriteFile(path, []byte("model_kind: Hybrid\n"), 0o644))

	_, err := config.LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model_kind")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := config.LoadScenario(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
