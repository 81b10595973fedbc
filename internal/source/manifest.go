package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/topo/internal/launch"
	"github.com/eugenenazirov/topo/internal/model"
)

// ManifestLoader parses a declarative YAML manifest: a top-level sequence of
// service records matching the ServiceDescription schema.
type ManifestLoader struct {
	logger *zap.Logger
}

// NewManifestLoader creates a manifest loader.
func NewManifestLoader(logger *zap.Logger) *ManifestLoader {
	return &ManifestLoader{logger: logger}
}

// Load parses the manifest at path. Every description carrying a project
// launch target is enriched from its launch configuration before returning;
// manifest entries without a runnable target are kept as inert services.
func (l *ManifestLoader) Load(baseDir, path string) ([]model.ServiceDescription, string, error) {
	abs, contextDir, err := resolveSource(baseDir, path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest %s: %w", abs, err)
	}

	descriptions, err := decodeManifest(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: manifest %s: %v", model.ErrParse, abs, err)
	}

	for i := range descriptions {
		if descriptions[i].Project == "" {
			continue
		}

		projectPath := descriptions[i].Project
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(contextDir, projectPath)
		}
		if _, err := launch.Merge(&descriptions[i], projectPath, l.logger); err != nil {
			return nil, "", err
		}
	}

	l.logger.Debug("loaded manifest",
		zap.String("path", abs), zap.Int("services", len(descriptions)))

	return descriptions, contextDir, nil
}

// decodeManifest decodes strictly so a record whose shape does not match the
// schema is rejected rather than silently dropped.
func decodeManifest(data []byte) ([]model.ServiceDescription, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var descriptions []model.ServiceDescription
	if err := decoder.Decode(&descriptions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return descriptions, nil
}
