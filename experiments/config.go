package experiments

import (
	"fmt"
	"os"
	"time"

	"tsuro/experiments/metrics"

	"gopkg.in/yaml.v3"
)

type agentConfigYAML struct {
	ID         int `yaml:"id"`
	Goroutines int `yaml:"goroutines"`
	DurationMS int `yaml:"duration_ms"`
	Episodes   int `yaml:"episodes"`
	Cutoff     int `yaml:"cutoff"`
}

type experimentConfigYAML struct {
	Name   string            `yaml:"name"`
	Agents []agentConfigYAML `yaml:"agents"`
}

// LoadExperimentConfig reads an experiment setup from a YAML file. The
// agents list pairs up into matchups: agents 0 vs 1, 2 vs 3, and so on.
func LoadExperimentConfig(path string) (string, []metrics.AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read experiment config: %w", err)
	}

	var config experimentConfigYAML
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse experiment config: %w", err)
	}

	if config.Name == "" {
		return "", nil, fmt.Errorf("experiment config must specify a name")
	}

	configs := make([]metrics.AgentConfig, len(config.Agents))
	for i, agent := range config.Agents {
		if agent.Goroutines <= 0 {
			return "", nil, fmt.Errorf("agent %d must specify goroutines", agent.ID)
		}
		if agent.DurationMS <= 0 && agent.Episodes <= 0 {
			return "", nil, fmt.Errorf("agent %d must specify duration_ms or episodes", agent.ID)
		}
		configs[i] = metrics.AgentConfig{
			ID:         agent.ID,
			Goroutines: agent.Goroutines,
			Duration:   time.Duration(agent.DurationMS) * time.Millisecond,
			Episodes:   agent.Episodes,
			Cutoff:     agent.Cutoff,
		}
	}
	return config.Name, configs, nil
}

// RunFromConfig runs the matchups described by a YAML experiment file.
func RunFromConfig(path string) error {
	name, configs, err := LoadExperimentConfig(path)
	if err != nil {
		return err
	}

	RunMatchups(name, configs)
	return nil
}
