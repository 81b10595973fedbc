package application

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/topo/internal/config"
	"github.com/eugenenazirov/topo/internal/envinject"
	"github.com/eugenenazirov/topo/internal/model"
	"github.com/eugenenazirov/topo/internal/source"
)

// App holds the resolved topology for one run.
type App struct {
	topology *model.Application
	logger   *zap.Logger
}

// New selects a loader for the configured source, resolves the topology
// once, and wraps it. Any load or merge failure aborts construction; there is
// no partial topology.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	loader, err := source.ForPath(cfg.Source, logger)
	if err != nil {
		return nil, err
	}

	descriptions, contextDir, err := loader.Load(cfg.BaseDir, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Source, err)
	}

	topology := model.NewApplication(contextDir, descriptions)
	logger.Info("resolved topology",
		zap.String("source", cfg.Source),
		zap.String("contextDirectory", contextDir),
		zap.Int("services", len(topology.Services)))

	return &App{topology: topology, logger: logger}, nil
}

// Topology returns the resolved application map.
func (a *App) Topology() *model.Application {
	return a.topology
}

// EnvFor derives the environment for one service as sorted KEY=value lines.
func (a *App) EnvFor(service string) ([]string, error) {
	var lines []string
	err := envinject.Inject(a.topology, service, func(key, value string) {
		lines = append(lines, key+"="+value)
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(lines)
	return lines, nil
}

// Render serializes the resolved topology in the requested format.
func (a *App) Render(format string) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return json.MarshalIndent(a.topology, "", "  ")
	case config.FormatYAML:
		return yaml.Marshal(a.topology)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
