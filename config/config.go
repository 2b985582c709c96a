package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/miku/cryokit"
	"github.com/miku/cryokit/portal"
	"github.com/segmentio/encoding/json"
)

// DefaultDataURL serves the output directory locally, e.g. with "python -m
// http.server" run from the output directory.
const DefaultDataURL = "http://0.0.0.0:8000"

// Duration accepts nanoseconds or a duration string like "24h" in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// S3 configures publishing of generated files. Publishing is disabled, if
// Bucket is empty.
type S3 struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Region string `json:"region"`
	// Endpoint for S3 compatible stores, e.g. minio.
	Endpoint     string `json:"endpoint" validate:"omitempty,url"`
	UsePathStyle bool   `json:"use_path_style"`
}

// Config for dataset generation.
type Config struct {
	// OutDir gets one subdirectory per dataset.
	OutDir string `json:"out_dir" validate:"required"`
	// DataURL is the location the output directory is served from, used to
	// build content URLs.
	DataURL    string   `json:"data_url" validate:"required,url"`
	Endpoint   string   `json:"endpoint" validate:"required,url"`
	// Workers is the number of datasets generated in parallel, zero means one
	// per CPU.
	Workers    int      `json:"workers" validate:"min=0,max=64"`
	MaxRetries int      `json:"max_retries" validate:"min=0"`
	Timeout    Duration `json:"timeout"`
	// PageSize of portal queries, zero fetches all records at once.
	PageSize int      `json:"page_size" validate:"min=0"`
	NoCache  bool     `json:"no_cache"`
	CacheTTL Duration `json:"cache_ttl"`
	// Binaries adds file objects and file sets for tomograms, tilt series
	// and alignments.
	Binaries bool   `json:"binaries"`
	LogLevel string `json:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	S3       S3     `json:"s3"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		OutDir:     filepath.Join(xdg.DataHome, cryokit.AppName),
		DataURL:    DefaultDataURL,
		Endpoint:   portal.DefaultEndpoint,
		Workers:    4,
		MaxRetries: 3,
		Timeout:    Duration{60 * time.Second},
		CacheTTL:   Duration{24 * time.Hour},
		Binaries:   true,
		LogLevel:   "info",
	}
}

// Load reads a JSON configuration file, values not set in the file keep
// their defaults.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Timeout.Duration < 0 || c.CacheTTL.Duration < 0 {
		return errors.New("config: negative duration")
	}
	return nil
}
