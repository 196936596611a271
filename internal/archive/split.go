package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// Split separates a combined test-data archive into the two artifacts the
// speech service expects: a zip containing only the audio files, and the
// transcript as a standalone file. Both are written under destDir.
func Split(srcZip, transcriptName, destDir string) (audioZip, transcriptPath string, err error) {
	reader, err := zip.OpenReader(srcZip)
	if err != nil {
		return "", "", fmt.Errorf("failed to open archive %s: %w", srcZip, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return "", "", fmt.Errorf("failed to create staging directory %s: %w", destDir, err)
	}

	audioZip = filepath.Join(destDir, "audio.zip")
	out, err := os.Create(audioZip)
	if err != nil {
		return "", "", fmt.Errorf("failed to create audio archive %s: %w", audioZip, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)

	bar := progressbar.NewOptions(len(reader.File),
		progressbar.OptionSetDescription("repacking audio"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	audioFiles := 0
	for _, file := range reader.File {
		bar.Add(1) //nolint:errcheck

		if file.FileInfo().IsDir() {
			continue
		}

		if filepath.Base(file.Name) == transcriptName {
			transcriptPath = filepath.Join(destDir, transcriptName)
			if err := extractFile(file, transcriptPath); err != nil {
				return "", "", err
			}
			continue
		}

		if err := copyEntry(writer, file); err != nil {
			return "", "", err
		}
		audioFiles++
	}

	if err := writer.Close(); err != nil {
		return "", "", fmt.Errorf("failed to finalize audio archive: %w", err)
	}

	if transcriptPath == "" {
		return "", "", fmt.Errorf("archive %s does not contain transcript %s", srcZip, transcriptName)
	}
	if audioFiles == 0 {
		return "", "", fmt.Errorf("archive %s contains no audio files", srcZip)
	}

	return audioZip, transcriptPath, nil
}

func extractFile(file *zip.File, dest string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s from archive: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}

	return nil
}

func copyEntry(writer *zip.Writer, file *zip.File) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s from archive: %w", file.Name, err)
	}
	defer src.Close()

	// Audio entries are flattened to their basenames so the upload does not
	// depend on how the source archive was laid out.
	dst, err := writer.Create(filepath.Base(file.Name))
	if err != nil {
		return fmt.Errorf("failed to add %s to audio archive: %w", file.Name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy %s into audio archive: %w", file.Name, err)
	}

	return nil
}
