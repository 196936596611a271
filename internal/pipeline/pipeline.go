package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"speech-bench/internal/archive"
	"speech-bench/internal/database"
	"speech-bench/internal/speech"
	"speech-bench/internal/storage"
	"speech-bench/internal/trigger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BenchmarkPointerBlob names the single blob in the configuration container
// that points at the current benchmark's test summary.
const BenchmarkPointerBlob = "benchmark-test.txt"

// Checkpoint errors mark the three validation points a failed run is
// annotated with in the CI UI.
var (
	ErrDatasetUpload      = errors.New("dataset upload checkpoint failed")
	ErrBaselineResolution = errors.New("baseline resolution checkpoint failed")
	ErrTestCreation       = errors.New("test creation checkpoint failed")
)

type Options struct {
	Speech speech.Client
	Store  storage.ObjectStore

	ResultsBucket string
	ConfigBucket  string

	ModelKind      speech.ModelKind
	Locale         string
	TranscriptFile string
	ArchivePath    string

	HTTP *resty.Client

	// Optional run-history ledger; nil disables recording.
	DB *gorm.DB
}

// Pipeline runs the benchmark workflow: strictly sequential, no retries, any
// step failure aborts the run. Cleanup of live service resources is not
// guaranteed on failure; a failed run may leak a dataset or test.
type Pipeline struct {
	opts Options
	http *resty.Client
}

func New(opts Options) *Pipeline {
	client := opts.HTTP
	if client == nil {
		client = resty.New()
	}
	return &Pipeline{opts: opts, http: client}
}

// Bootstrap ensures both storage containers exist. Idempotent, run
// unconditionally before every pipeline invocation.
func (p *Pipeline) Bootstrap(ctx context.Context) error {
	for _, bucket := range []string{p.opts.ResultsBucket, p.opts.ConfigBucket} {
		if err := p.opts.Store.EnsureBucket(ctx, bucket); err != nil {
			return fmt.Errorf("bootstrap failed for container %s: %w", bucket, err)
		}
	}
	return nil
}

// modelResolution is the outcome of the two-phase model lookup.
type modelResolution struct {
	modelID string

	// benchmarkExisted reports whether phase 1 found a valid previously
	// benchmarked model. It feeds the pointer-update condition even when the
	// baseline fallback ends up being used.
	benchmarkExisted bool

	// usedBaseline reports whether phase 2 ran and supplied the model.
	usedBaseline bool
}

// resolveModel picks the model to benchmark. Phase 1 takes the most recent
// model of the configured kind; phase 2 falls back to the vendor's latest
// baseline model for the locale, and also runs whenever the trigger forces a
// baseline test.
func (p *Pipeline) resolveModel(ctx context.Context, forceBaseline bool) (modelResolution, error) {
	var res modelResolution

	models, err := p.opts.Speech.ListModels(ctx, p.opts.ModelKind)
	if err != nil {
		return res, fmt.Errorf("failed to list %s models: %w", p.opts.ModelKind, err)
	}

	if len(models) > 0 {
		latest := models[len(models)-1]
		if speech.ValidGUID(latest) {
			res.benchmarkExisted = true
			res.modelID = latest
			slog.Info("found existing benchmark model", "model_id", latest)
		}
	}

	if !forceBaseline && res.benchmarkExisted {
		return res, nil
	}

	scenarios, err := p.opts.Speech.ListScenarioModels(ctx, p.opts.Locale)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrBaselineResolution, err)
	}
	if len(scenarios) == 0 || !speech.ValidGUID(scenarios[0]) {
		return res, fmt.Errorf("%w: no valid baseline model for locale %s", ErrBaselineResolution, p.opts.Locale)
	}

	res.modelID = scenarios[0]
	res.usedBaseline = true
	slog.Info("using baseline model", "model_id", res.modelID, "locale", p.opts.Locale)

	return res, nil
}

// Run executes the test pipeline for one trigger event.
func (p *Pipeline) Run(ctx context.Context, ev trigger.Event) (err error) {
	slog.Info("starting benchmark run", "event_id", ev.ID, "mode", ev.Mode())

	runId := p.recordStart(ev)
	defer func() { p.recordFinish(runId, err) }()

	staging, err := os.MkdirTemp("", "speech-bench-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	audioZip, transcript, err := archive.Split(p.opts.ArchivePath, p.opts.TranscriptFile, staging)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatasetUpload, err)
	}

	datasetID, err := p.opts.Speech.CreateDataset(ctx, "dataset-"+ev.ID, audioZip, transcript)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatasetUpload, err)
	}
	p.recordUpdate(runId, map[string]any{"dataset_id": sql.NullString{String: datasetID, Valid: true}})

	resolution, err := p.resolveModel(ctx, ev.Baseline)
	if err != nil {
		return err
	}
	p.recordUpdate(runId, map[string]any{"model_id": sql.NullString{String: resolution.modelID, Valid: true}})

	testID, err := p.opts.Speech.CreateTest(ctx, "test-"+ev.ID, datasetID, resolution.modelID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTestCreation, err)
	}
	p.recordUpdate(runId, map[string]any{"test_id": sql.NullString{String: testID, Valid: true}})

	// The dataset is only needed until the test references it.
	if err := p.opts.Speech.DeleteDataset(ctx, datasetID); err != nil {
		return fmt.Errorf("failed to delete dataset %s: %w", datasetID, err)
	}

	summary, cleanedJSON, err := p.opts.Speech.GetTestSummary(ctx, testID)
	if err != nil {
		return fmt.Errorf("failed to retrieve summary for test %s: %w", testID, err)
	}

	if err := p.opts.Store.PutObject(ctx, p.opts.ResultsBucket, ev.SummaryBlobName(), strings.NewReader(cleanedJSON)); err != nil {
		return fmt.Errorf("failed to archive test summary: %w", err)
	}

	// The results URL is only valid while the test exists, so this fetch has
	// to happen before the test is deleted.
	results, err := p.fetchResults(ctx, summary.ResultsURL)
	if err != nil {
		return err
	}
	if err := p.opts.Store.PutObject(ctx, p.opts.ResultsBucket, ev.ResultsBlobName(), strings.NewReader(results)); err != nil {
		return fmt.Errorf("failed to archive raw results: %w", err)
	}
	p.recordUpdate(runId, map[string]any{
		"summary_blob": sql.NullString{String: ev.SummaryBlobName(), Valid: true},
		"results_blob": sql.NullString{String: ev.ResultsBlobName(), Valid: true},
	})

	if err := p.opts.Speech.DeleteTest(ctx, testID); err != nil {
		return fmt.Errorf("failed to delete test %s: %w", testID, err)
	}

	if err := p.updateBenchmarkPointer(ctx, ev, resolution); err != nil {
		return err
	}

	slog.Info("benchmark run complete", "event_id", ev.ID, "word_error_rate", summary.WordErrorRate)

	return nil
}

func (p *Pipeline) fetchResults(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("test summary has no results url")
	}

	res, err := p.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch results from %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("results fetch from %s returned status %d", url, res.StatusCode())
	}

	return res.String(), nil
}

// updateBenchmarkPointer advances the configuration container's pointer blob
// to this run's summary. A forced baseline run leaves an established pointer
// alone when a benchmark model already existed, so the next data-update run
// still compares against the real benchmark.
func (p *Pipeline) updateBenchmarkPointer(ctx context.Context, ev trigger.Event, resolution modelResolution) error {
	pointerExists, err := p.opts.Store.ObjectExists(ctx, p.opts.ConfigBucket, BenchmarkPointerBlob)
	if err != nil {
		return fmt.Errorf("failed to check benchmark pointer: %w", err)
	}

	if ev.Baseline && pointerExists && resolution.benchmarkExisted {
		slog.Info("benchmark pointer left unchanged", "event_id", ev.ID)
		return nil
	}

	if err := p.opts.Store.PutObject(ctx, p.opts.ConfigBucket, BenchmarkPointerBlob, strings.NewReader(ev.SummaryBlobName())); err != nil {
		return fmt.Errorf("failed to update benchmark pointer: %w", err)
	}
	slog.Info("benchmark pointer updated", "summary", ev.SummaryBlobName())

	return nil
}

func (p *Pipeline) recordStart(ev trigger.Event) uuid.UUID {
	if p.opts.DB == nil {
		return uuid.Nil
	}

	runId, err := database.CreateRun(p.opts.DB, ev.ID, ev.Mode(), ev.Baseline)
	if err != nil {
		slog.Warn("failed to record run start", "error", err)
		return uuid.Nil
	}
	return runId
}

func (p *Pipeline) recordUpdate(runId uuid.UUID, updates map[string]any) {
	if p.opts.DB == nil || runId == uuid.Nil {
		return
	}
	if err := database.UpdateRun(p.opts.DB, runId, updates); err != nil {
		slog.Warn("failed to record run update", "error", err)
	}
}

func (p *Pipeline) recordFinish(runId uuid.UUID, runErr error) {
	if p.opts.DB == nil || runId == uuid.Nil {
		return
	}

	status := database.RunCompleted
	checkpoint := ""
	if runErr != nil {
		status = database.RunFailed
		switch {
		case errors.Is(runErr, ErrDatasetUpload):
			checkpoint = "upload"
		case errors.Is(runErr, ErrBaselineResolution):
			checkpoint = "baseline resolution"
		case errors.Is(runErr, ErrTestCreation):
			checkpoint = "test creation"
		}
	}

	if err := database.CompleteRun(p.opts.DB, runId, status, checkpoint); err != nil {
		slog.Warn("failed to record run completion", "error", err)
	}
}
