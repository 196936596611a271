package archive_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"speech-bench/internal/archive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	writer := zip.NewWriter(out)
	for name, content := range entries {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
}

func readArchiveNames(t *testing.T, path string) []string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var names []string
	for _, file := range reader.File {
		names = append(names, file.Name)
	}
	return names
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio-and-trans.zip")
	writeTestArchive(t, src, map[string]string{
		"clips/one.wav": "RIFF-one",
		"clips/two.wav": "RIFF-two",
		"trans.txt":     "one.wav\thello\ntwo.wav\tworld\n",
	})

	audioZip, transcript, err := archive.Split(src, "trans.txt", filepath.Join(dir, "staging"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"one.wav", "two.wav"}, readArchiveNames(t, audioZip))

	content, err := os.ReadFile(transcript)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
}

func TestSplitMissingTranscript(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio-only.zip")
	writeTestArchive(t, src, map[string]string{"one.wav": "RIFF-one"})

	_, _, err := archive.Split(src, "trans.txt", filepath.Join(dir, "staging"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript")
}

func TestSplitNoAudio(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "trans-only.zip")
	writeTestArchive(t, src, map[string]string{"trans.txt": "one.wav\thello\n"})

	_, _, err := archive.Split(src, "trans.txt", filepath.Join(dir, "staging"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio files")
}
