package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/topo/internal/model"
)

// Loader produces the sequence of service descriptions declared by or
// inferred from one source file, together with the context directory every
// relative path inside the descriptions resolves against. A relative source
// path resolves against baseDir; nothing here consults the process working
// directory.
type Loader interface {
	Load(baseDir, path string) ([]model.ServiceDescription, string, error)
}

// ForPath selects a loader by the source file's extension: manifests are
// YAML, single projects are build-project files, and solutions aggregate
// multiple projects.
func ForPath(path string, logger *zap.Logger) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewManifestLoader(logger), nil
	case ".csproj", ".fsproj":
		return NewProjectLoader(logger), nil
	case ".sln":
		return NewSolutionLoader(logger), nil
	default:
		return nil, fmt.Errorf("%w: unsupported source file %s", model.ErrParse, path)
	}
}

// resolveSource makes path absolute against baseDir and verifies it exists.
// It returns the absolute path and its directory, which becomes the
// application's context directory.
func resolveSource(baseDir, path string) (string, string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", path, err)
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w: %s", model.ErrNotFound, abs)
		}
		return "", "", fmt.Errorf("stat %s: %w", abs, err)
	}

	return abs, filepath.Dir(abs), nil
}
