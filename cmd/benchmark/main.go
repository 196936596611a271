package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"speech-bench/cmd"
	"speech-bench/internal/config"
	"speech-bench/internal/database"
	"speech-bench/internal/pipeline"
	"speech-bench/internal/speech"
	"speech-bench/internal/storage"
	"speech-bench/internal/trigger"

	"gorm.io/gorm"
)

func main() {
	log.Println("Starting benchmark pipeline...")

	cmd.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	scenario, err := config.LoadScenario(cfg.ScenarioFile)
	if err != nil {
		log.Fatalf("error loading scenario: %v", err)
	}

	event, err := trigger.Resolve(cfg.RefName, cfg.CommitSHA)
	if err != nil {
		log.Fatalf("error resolving trigger: %v", err)
	}

	store, err := storage.NewS3ObjectStore(storage.S3ClientConfig{
		Endpoint:        cfg.S3EndpointURL,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		log.Fatalf("error creating object store: %v", err)
	}

	var db *gorm.DB
	if cfg.RunHistoryDB != "" {
		db, err = database.NewDatabase(cfg.RunHistoryDB)
		if err != nil {
			log.Fatalf("error opening run-history database: %v", err)
		}
	}

	speechClient := speech.NewCLIClient(speech.CLIConfig{
		Binary:  cfg.SpeechCLI,
		Project: cfg.SpeechProject,
		Key:     cfg.SpeechKey,
		Region:  cfg.SpeechRegion,
		Locale:  scenario.Locale,
	})

	runner := pipeline.New(pipeline.Options{
		Speech:         speechClient,
		Store:          store,
		ResultsBucket:  cfg.ResultsBucket,
		ConfigBucket:   cfg.ConfigBucket,
		ModelKind:      speech.ModelKind(scenario.ModelKind),
		Locale:         scenario.Locale,
		TranscriptFile: scenario.TranscriptFile,
		ArchivePath:    scenario.ArchivePath,
		DB:             db,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Bootstrap(ctx); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	if err := runner.Run(ctx, event); err != nil {
		// Annotate the checkpoint so the CI log calls out where the run died.
		switch {
		case errors.Is(err, pipeline.ErrDatasetUpload):
			slog.Error("run failed at upload checkpoint", "error", err)
		case errors.Is(err, pipeline.ErrBaselineResolution):
			slog.Error("run failed at baseline resolution checkpoint", "error", err)
		case errors.Is(err, pipeline.ErrTestCreation):
			slog.Error("run failed at test creation checkpoint", "error", err)
		default:
			slog.Error("run failed", "error", err)
		}
		os.Exit(1)
	}

	slog.Info("benchmark pipeline finished", "event_id", event.ID, "mode", event.Mode())
}
