package source

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/topo/internal/model"
)

func TestProjectLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	projectPath := filepath.Join(dir, "Orders.Api.csproj")
	writeFile(t, projectPath, "<Project/>")
	writeFile(t, filepath.Join(dir, "Properties", "launchSettings.json"), `{
		"profiles": {
			"Orders.Api": {
				"applicationUrl": "https://localhost:7001",
				"environmentVariables": {"ASPNETCORE_ENVIRONMENT": "Development"}
			}
		}
	}`)

	descs, contextDir, err := NewProjectLoader(zaptest.NewLogger(t)).Load(dir, projectPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contextDir != dir {
		t.Fatalf("expected context directory %s, got %s", dir, contextDir)
	}
	if len(descs) != 1 {
		t.Fatalf("expected 1 description, got %d", len(descs))
	}

	desc := descs[0]
	if desc.Name != "orders.api" {
		t.Fatalf("expected lower-cased base name, got %q", desc.Name)
	}
	if desc.Project != projectPath {
		t.Fatalf("expected project target %s, got %s", projectPath, desc.Project)
	}
	if len(desc.Bindings) != 1 || desc.Bindings[0].Protocol != "https" || *desc.Bindings[0].Port != 7001 {
		t.Fatalf("unexpected bindings %+v", desc.Bindings)
	}
	if desc.Configuration["ASPNETCORE_ENVIRONMENT"] != "Development" {
		t.Fatalf("unexpected configuration %v", desc.Configuration)
	}
}

func TestProjectLoadWithoutLaunchSettingsYieldsNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	projectPath := filepath.Join(dir, "worker.csproj")
	writeFile(t, projectPath, "<Project/>")

	descs, contextDir, err := NewProjectLoader(zaptest.NewLogger(t)).Load(dir, projectPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descs) != 0 {
		t.Fatalf("expected no descriptions, got %d", len(descs))
	}
	if contextDir != dir {
		t.Fatalf("expected context directory %s, got %s", dir, contextDir)
	}
}

func TestProjectLoadMissingProject(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "gone.csproj")
	_, _, err := NewProjectLoader(zaptest.NewLogger(t)).Load("", missing)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	t.Parallel()

	logger := zaptest.NewLogger(t)

	if _, err := ForPath("app.yaml", logger); err != nil {
		t.Fatalf("expected manifest loader for .yaml: %v", err)
	}
	if _, err := ForPath("svc.CSPROJ", logger); err != nil {
		t.Fatalf("expected project loader regardless of case: %v", err)
	}
	if _, err := ForPath("all.sln", logger); err != nil {
		t.Fatalf("expected solution loader for .sln: %v", err)
	}
	if _, err := ForPath("readme.md", logger); !errors.Is(err, model.ErrParse) {
		t.Fatalf("expected ErrParse for unsupported extension, got %v", err)
	}
}
