package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	LearningRate      float64       `yaml:"learning_rate"`
	MaxEpochs         int           `yaml:"max_epochs"`
	TickInterval      time.Duration `yaml:"tick_interval"`
	PredictEvery      int           `yaml:"predict_every"`
	FeedbackSteps     int           `yaml:"feedback_steps"`
	Seed              int64         `yaml:"seed"`
	LogEvery          int           `yaml:"log_every"`
	DatasetPath       string        `yaml:"dataset_path"`
	PlotDir           string        `yaml:"plot_dir"`
	ImageMaxSide      int           `yaml:"image_max_side"`
	MinClassifyEpochs int           `yaml:"min_classify_epochs"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	LearningRate float64
	MaxEpochs    int
	TickInterval time.Duration
	Seed         int64
	LogEvery     int
	DatasetPath  string
	PlotDir      string
}

// Default returns the settings of the interactive demo.
func Default() *Config {
	return &Config{
		LearningRate:      0.1,
		MaxEpochs:         500,
		TickInterval:      20 * time.Millisecond,
		PredictEvery:      10,
		FeedbackSteps:     10,
		Seed:              42,
		LogEvery:          50,
		MinClassifyEpochs: 100,
	}
}

// Load reads a Config from YAML on top of Default and validates it. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.MaxEpochs > 0 {
		c.MaxEpochs = o.MaxEpochs
	}
	if o.TickInterval > 0 {
		c.TickInterval = o.TickInterval
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.DatasetPath != "" {
		c.DatasetPath = o.DatasetPath
	}
	if o.PlotDir != "" {
		c.PlotDir = o.PlotDir
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return errors.Errorf("learning_rate must be in (0, 1] (got %g)", c.LearningRate)
	}
	if c.MaxEpochs <= 0 {
		return errors.Errorf("max_epochs must be > 0 (got %d)", c.MaxEpochs)
	}
	if c.TickInterval < 0 {
		return errors.Errorf("tick_interval must be >= 0 (got %s)", c.TickInterval)
	}
	if c.PredictEvery <= 0 {
		return errors.Errorf("predict_every must be > 0 (got %d)", c.PredictEvery)
	}
	if c.FeedbackSteps <= 0 {
		return errors.Errorf("feedback_steps must be > 0 (got %d)", c.FeedbackSteps)
	}
	if c.ImageMaxSide < 0 {
		return errors.Errorf("image_max_side must be >= 0 (got %d)", c.ImageMaxSide)
	}
	if c.MinClassifyEpochs < 0 {
		return errors.Errorf("min_classify_epochs must be >= 0 (got %d)", c.MinClassifyEpochs)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
