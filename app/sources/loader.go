package sources

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the source configuration from a YAML file. An empty path falls
// back to the built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		slog.Debug("No sources file configured, using built-in defaults")
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	return &config, nil
}

func setDefaults(config *Config) {
	for i := range config.Sources {
		if config.Sources[i].Kind == "" {
			config.Sources[i].Kind = KindSyndication
		}
	}
}

func validate(config *Config) error {
	if len(config.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]bool, len(config.Sources))
	for i, src := range config.Sources {
		if src.Name == "" {
			return fmt.Errorf("source at index %d: name is required", i)
		}
		if src.URL == "" {
			return fmt.Errorf("source %s: URL is required", src.Name)
		}
		if src.Kind != KindSyndication && src.Kind != KindKeywordSearch {
			return fmt.Errorf("source %s: unknown kind %q", src.Name, src.Kind)
		}
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name: %s", src.Name)
		}
		seen[src.Name] = true
	}

	if len(config.KeywordSearch()) > 0 && len(config.SearchKeywords) == 0 {
		return fmt.Errorf("a keyword-search source is configured but search_keywords is empty")
	}

	return nil
}
