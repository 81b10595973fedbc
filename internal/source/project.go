package source

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/topo/internal/launch"
	"github.com/eugenenazirov/topo/internal/model"
)

// ProjectLoader infers a single service description from one build-project
// file plus its local launch configuration.
type ProjectLoader struct {
	logger *zap.Logger
}

// NewProjectLoader creates a single-project loader.
func NewProjectLoader(logger *zap.Logger) *ProjectLoader {
	return &ProjectLoader{logger: logger}
}

// Load infers a description named after the project file. A project with no
// discoverable launch configuration yields no description at all: loading it
// standalone produces an empty topology rather than a bare service.
func (l *ProjectLoader) Load(baseDir, path string) ([]model.ServiceDescription, string, error) {
	abs, contextDir, err := resolveSource(baseDir, path)
	if err != nil {
		return nil, "", err
	}

	desc := model.ServiceDescription{
		Name:    serviceName(abs),
		Project: abs,
	}

	found, err := launch.Merge(&desc, abs, l.logger)
	if err != nil {
		return nil, "", err
	}
	if !found {
		l.logger.Debug("project has no launch settings, skipping",
			zap.String("project", abs))
		return nil, contextDir, nil
	}

	l.logger.Debug("loaded project",
		zap.String("project", abs), zap.String("service", desc.Name))

	return []model.ServiceDescription{desc}, contextDir, nil
}

// serviceName derives a service name from the project file's base name,
// normalized to lower case.
func serviceName(projectPath string) string {
	base := filepath.Base(projectPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}
