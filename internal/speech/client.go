package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Client is the surface of the hosted speech service the pipeline depends on.
// All entities are identified by opaque GUID handles issued by the service.
type Client interface {
	CreateDataset(ctx context.Context, name, audioZip, transcript string) (string, error)

	DeleteDataset(ctx context.Context, id string) error

	// ListModels returns the handles of all models of the given kind, oldest
	// first, as listed by the service.
	ListModels(ctx context.Context, kind ModelKind) ([]string, error)

	// ListScenarioModels returns the handles of the vendor-provided baseline
	// models for a locale, latest first.
	ListScenarioModels(ctx context.Context, locale string) ([]string, error)

	CreateTest(ctx context.Context, name, datasetID, modelID string) (string, error)

	// GetTestSummary returns the parsed summary and the cleaned JSON text.
	GetTestSummary(ctx context.Context, id string) (TestSummary, string, error)

	DeleteTest(ctx context.Context, id string) error
}

// CLIConfig carries the vendor CLI invocation parameters. Project, key and
// region are passed on every call; the CLI has no session state.
type CLIConfig struct {
	Binary  string
	Project string
	Key     string
	Region  string
	Locale  string
}

// CLIClient shells out to the vendor command-line tool. Create operations use
// the tool's --wait flag, so each call blocks until the service finishes the
// operation.
type CLIClient struct {
	cfg CLIConfig
	run func(ctx context.Context, args ...string) (string, error)
}

var _ Client = (*CLIClient)(nil)

func NewCLIClient(cfg CLIConfig) *CLIClient {
	client := &CLIClient{cfg: cfg}
	client.run = client.execute
	return client
}

func (c *CLIClient) execute(ctx context.Context, args ...string) (string, error) {
	args = append(args,
		"--project", c.cfg.Project,
		"--key", c.cfg.Key,
		"--region", c.cfg.Region,
	)

	cmd := exec.CommandContext(ctx, c.cfg.Binary, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %w: %s", c.cfg.Binary, strings.Join(args[:2], " "), err, strings.TrimSpace(string(out)))
	}

	return string(out), nil
}

// handleFromOutput extracts and validates the single GUID a create operation
// is expected to report.
func handleFromOutput(op, output string) (string, error) {
	id := FirstGUID(output)
	if !ValidGUID(id) {
		return "", fmt.Errorf("%s did not report a valid GUID handle (got %q)", op, id)
	}
	return id, nil
}

func (c *CLIClient) CreateDataset(ctx context.Context, name, audioZip, transcript string) (string, error) {
	out, err := c.run(ctx,
		"dataset", "create",
		"--name", name,
		"--locale", c.cfg.Locale,
		"--audio", audioZip,
		"--transcript", transcript,
		"--wait",
	)
	if err != nil {
		return "", err
	}

	id, err := handleFromOutput("dataset create", out)
	if err != nil {
		return "", err
	}
	slog.Info("dataset uploaded", "name", name, "dataset_id", id)

	return id, nil
}

func (c *CLIClient) DeleteDataset(ctx context.Context, id string) error {
	if _, err := c.run(ctx, "dataset", "delete", "--id", id); err != nil {
		return err
	}
	slog.Info("dataset deleted", "dataset_id", id)
	return nil
}

func (c *CLIClient) ListModels(ctx context.Context, kind ModelKind) ([]string, error) {
	out, err := c.run(ctx, "model", "list", "--kind", string(kind))
	if err != nil {
		return nil, err
	}
	return ExtractGUIDs(out), nil
}

func (c *CLIClient) ListScenarioModels(ctx context.Context, locale string) ([]string, error) {
	out, err := c.run(ctx, "model", "list-scenarios", "--locale", locale)
	if err != nil {
		return nil, err
	}
	return ExtractGUIDs(out), nil
}

func (c *CLIClient) CreateTest(ctx context.Context, name, datasetID, modelID string) (string, error) {
	out, err := c.run(ctx,
		"test", "create",
		"--name", name,
		"--audio-dataset", datasetID,
		"--acoustic-model", modelID,
		"--language-model", modelID,
		"--wait",
	)
	if err != nil {
		return "", err
	}

	id, err := handleFromOutput("test create", out)
	if err != nil {
		return "", err
	}
	slog.Info("test completed", "name", name, "test_id", id)

	return id, nil
}

func (c *CLIClient) GetTestSummary(ctx context.Context, id string) (TestSummary, string, error) {
	out, err := c.run(ctx, "test", "show", "--id", id)
	if err != nil {
		return TestSummary{}, "", err
	}
	return ParseSummary(out)
}

func (c *CLIClient) DeleteTest(ctx context.Context, id string) error {
	if _, err := c.run(ctx, "test", "delete", "--id", id); err != nil {
		return err
	}
	slog.Info("test deleted", "test_id", id)
	return nil
}
