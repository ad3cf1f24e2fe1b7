package identification

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/aas/model"
)

// Strategy names accepted in Config.Strategy.
const (
	StrategyUUID      = "uuid"
	StrategyNamespace = "namespace"
)

// Config selects and parameterizes a Generator. It is usually loaded from the
// "identification" section of a runtime configuration file:
//
//	strategy: namespace
//	namespace: https://example.com/ids/
//	max_probes: 10000
type Config struct {
	// Strategy is "uuid" or "namespace".
	// Default: "namespace" when Namespace is set, "uuid" otherwise.
	Strategy string `yaml:"strategy,omitempty"`

	// Namespace is the IRI prefix for the namespace strategy.
	Namespace string `yaml:"namespace,omitempty"`

	// MaxProbes bounds the collision search of the namespace strategy.
	// Default: DefaultMaxProbes
	MaxProbes int `yaml:"max_probes,omitempty"`
}

// GetStrategy returns the configured strategy or the default value.
func (c *Config) GetStrategy() string {
	if c == nil {
		return StrategyUUID
	}
	if c.Strategy != "" {
		return c.Strategy
	}
	if c.Namespace != "" {
		return StrategyNamespace
	}
	return StrategyUUID
}

// GetMaxProbes returns the configured probe limit or the default value.
func (c *Config) GetMaxProbes() int {
	if c == nil || c.MaxProbes <= 0 {
		return DefaultMaxProbes
	}
	return c.MaxProbes
}

// NewGenerator builds the configured Generator. provider is consulted by the
// namespace strategy and ignored by the uuid strategy.
func (c *Config) NewGenerator(provider model.ObjectProvider) (Generator, error) {
	switch strategy := c.GetStrategy(); strategy {
	case StrategyUUID:
		return NewUUIDGenerator(), nil
	case StrategyNamespace:
		var namespace string
		if c != nil {
			namespace = c.Namespace
		}
		gen, err := NewNamespaceIRIGenerator(namespace, provider, WithMaxProbes(c.GetMaxProbes()))
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, model.NewInvalidConfigError("Config.NewGenerator",
			fmt.Sprintf("unknown identification strategy %q", strategy))
	}
}

// LoadConfig reads and parses a generator configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
