package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// Config is the per-run environment: service credentials, storage account, and
// the CI trigger payload. Secrets come from the CI platform's secret store.
type Config struct {
	SpeechCLI     string `env:"SPEECH_CLI" envDefault:"speech"`
	SpeechProject string `env:"SPEECH_PROJECT,notEmpty,required"`
	SpeechKey     string `env:"SPEECH_KEY,notEmpty,required"`
	SpeechRegion  string `env:"SPEECH_REGION,notEmpty,required"`

	S3EndpointURL     string `env:"S3_ENDPOINT_URL" envDefault:""`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`

	ResultsBucket string `env:"RESULTS_BUCKET" envDefault:"test-results"`
	ConfigBucket  string `env:"CONFIG_BUCKET" envDefault:"configuration"`

	// Trigger payload from the CI platform.
	RefName   string `env:"CI_REF_NAME" envDefault:""`
	CommitSHA string `env:"CI_COMMIT_SHA" envDefault:""`

	ScenarioFile string `env:"SCENARIO_FILE" envDefault:"benchmark.yml"`

	// Path to the local run-history database; empty disables the ledger.
	RunHistoryDB string `env:"RUN_HISTORY_DB" envDefault:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config from environment: %w", err)
	}
	return &cfg, nil
}

// Scenario holds the static test-scenario constants, checked into the repo
// next to the test data rather than configured per run.
type Scenario struct {
	ModelKind      string `yaml:"model_kind"`
	Locale         string `yaml:"locale"`
	TranscriptFile string `yaml:"transcript_file"`
	ArchivePath    string `yaml:"archive_path"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario file %s: %w", path, err)
	}

	scenario := Scenario{
		ModelKind:      "Acoustic",
		Locale:         "en-us",
		TranscriptFile: "trans.txt",
		ArchivePath:    "testing/audio-and-trans.zip",
	}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("error parsing scenario file %s: %w", path, err)
	}

	if scenario.ModelKind != "Acoustic" && scenario.ModelKind != "Language" {
		return nil, fmt.Errorf("invalid model_kind %q in %s: must be Acoustic or Language", scenario.ModelKind, path)
	}

	return &scenario, nil
}
