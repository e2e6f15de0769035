package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/FocuswithJustin/kjvparse/core/corpus"
	"github.com/FocuswithJustin/kjvparse/core/marker"
)

//go:embed sample_config.toml
var sampleConfig string

// ProjectFile is the configuration file looked up in the working directory
// when no explicit path is given.
const ProjectFile = "kjvparse.toml"

// Markers holds the four boundary marker strings.
type Markers struct {
	OldTestament        string `toml:"old_testament"`
	NewTestament        string `toml:"new_testament"`
	NewTestamentListEnd string `toml:"new_testament_list_end"`
	CorpusEnd           string `toml:"corpus_end"`
}

// Matching selects the marker comparison policy.
type Matching struct {
	Policy string `toml:"policy"`
}

// Fixtures configures fixture file parsing and verification.
type Fixtures struct {
	Sentinel      string `toml:"sentinel"`
	ExpectedBooks int    `toml:"expected_books"`
}

// Logging configures the process logger.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the complete kjvparse configuration.
type Config struct {
	Markers     Markers        `toml:"markers"`
	Matching    Matching       `toml:"matching"`
	Corrections map[string]int `toml:"corrections"`
	Fixtures    Fixtures       `toml:"fixtures"`
	Logging     Logging        `toml:"logging"`
}

// Load parses and validates the configuration at path. An empty path
// falls back to ProjectFile in the working directory. A file that does not
// exist yields the defaults; the returned bool reports whether one was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		resolved = ProjectFile
	}

	exists := true
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// CorpusOptions converts the configuration into pipeline options. It
// assumes Validate has passed.
func (c *Config) CorpusOptions() corpus.Options {
	policy, err := marker.ParsePolicy(c.Matching.Policy)
	if err != nil {
		policy = marker.PolicyContains
	}
	corrections := make(corpus.Corrections, len(c.Corrections))
	for title, delta := range c.Corrections {
		if delta != 0 {
			corrections[title] = delta
		}
	}
	return corpus.Options{
		Markers: corpus.Markers{
			OldTestament:        c.Markers.OldTestament,
			NewTestament:        c.Markers.NewTestament,
			NewTestamentListEnd: c.Markers.NewTestamentListEnd,
			CorpusEnd:           c.Markers.CorpusEnd,
		},
		Policy:        policy,
		Corrections:   corrections,
		ExpectedBooks: corpus.BookCount,
	}
}
