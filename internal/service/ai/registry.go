package ai

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ModelEntry is one model in the fallback chain.
type ModelEntry struct {
	ID          string `yaml:"id"`
	MaxAttempts int    `yaml:"max_attempts"`
}

// Registry holds the ordered model fallback chain and retry tuning,
// loaded from the embedded YAML file.
type Registry struct {
	Models           []ModelEntry  `yaml:"models"`
	InitialBackoffMS int           `yaml:"initial_backoff_ms"`
	InitialBackoff   time.Duration `yaml:"-"`
}

// NewRegistry loads the embedded model configuration.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/models.yaml")
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}

	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal model config: %w", err)
	}

	if len(r.Models) == 0 {
		return nil, fmt.Errorf("model config lists no models")
	}
	for i := range r.Models {
		if r.Models[i].MaxAttempts <= 0 {
			r.Models[i].MaxAttempts = 1
		}
	}
	r.InitialBackoff = time.Duration(r.InitialBackoffMS) * time.Millisecond
	if r.InitialBackoff <= 0 {
		r.InitialBackoff = 500 * time.Millisecond
	}

	return &r, nil
}
