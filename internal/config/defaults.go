package config

import (
	"strings"

	"github.com/FocuswithJustin/kjvparse/core/corpus"
	"github.com/FocuswithJustin/kjvparse/core/fixture"
)

// Default returns the configuration for the Gutenberg KJV.
func Default() Config {
	m := corpus.DefaultMarkers()
	corrections := make(map[string]int)
	for title, delta := range corpus.DefaultCorrections() {
		corrections[title] = delta
	}
	return Config{
		Markers: Markers{
			OldTestament:        m.OldTestament,
			NewTestament:        m.NewTestament,
			NewTestamentListEnd: m.NewTestamentListEnd,
			CorpusEnd:           m.CorpusEnd,
		},
		Matching:    Matching{Policy: "contains"},
		Corrections: corrections,
		Fixtures: Fixtures{
			Sentinel:      fixture.DefaultSentinel,
			ExpectedBooks: corpus.BookCount,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

func (c *Config) normalize() {
	c.Markers.OldTestament = strings.TrimSpace(c.Markers.OldTestament)
	c.Markers.NewTestament = strings.TrimSpace(c.Markers.NewTestament)
	c.Markers.NewTestamentListEnd = strings.TrimSpace(c.Markers.NewTestamentListEnd)
	c.Markers.CorpusEnd = strings.TrimSpace(c.Markers.CorpusEnd)
	if c.Markers.NewTestamentListEnd == "" {
		c.Markers.NewTestamentListEnd = c.Markers.OldTestament
	}

	c.Matching.Policy = strings.ToLower(strings.TrimSpace(c.Matching.Policy))
	if c.Matching.Policy == "" {
		c.Matching.Policy = "contains"
	}

	if c.Corrections == nil {
		c.Corrections = make(map[string]int)
	}

	c.Fixtures.Sentinel = strings.TrimSpace(c.Fixtures.Sentinel)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}
