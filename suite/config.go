package suite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/specops/observe"
)

// Config configures a Suite.
type Config struct {
	// Parallelism bounds concurrent cases in ExecuteAll.
	// Default: GOMAXPROCS. Zero means the default.
	Parallelism int `yaml:"parallelism"`

	// FailFast cancels cases that have not started yet once one fails.
	FailFast bool `yaml:"failFast"`

	// Observe configures telemetry. Everything is disabled by default.
	Observe observe.Config `yaml:"observe"`
}

// DefaultConfig returns the default suite configuration.
func DefaultConfig() Config {
	return Config{
		Parallelism: runtime.GOMAXPROCS(0),
		Observe: observe.Config{
			ServiceName: "specops",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidParallelism, c.Parallelism)
	}
	return c.Observe.Validate()
}

func (c *Config) applyDefaults() {
	if c.Parallelism == 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.Observe.ServiceName == "" {
		c.Observe.ServiceName = "specops"
	}
}

// LoadConfig reads a YAML configuration on top of DefaultConfig.
// Unknown keys are rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("suite: decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("suite: open config %s: %w", path, err)
	}
	defer f.Close()

	return LoadConfig(f)
}
