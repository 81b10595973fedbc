package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/topo/internal/application"
	"github.com/eugenenazirov/topo/internal/config"
	"github.com/eugenenazirov/topo/internal/envinject"
)

const csharpProjectType = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeSolutionFixture lays out a two-project solution where each project
// carries its own launch settings.
func writeSolutionFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "web", "web.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "web", "Properties", "launchSettings.json"), `{
		"profiles": {
			"web": {
				"applicationUrl": "http://localhost:5000",
				"environmentVariables": {"ASPNETCORE_ENVIRONMENT": "Development"}
			}
		}
	}`)
	writeFile(t, filepath.Join(dir, "orders", "orders.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "orders", "Properties", "launchSettings.json"), `{
		"profiles": {
			"orders": {
				"applicationUrl": "https://localhost:5001",
				"replicas": 2
			}
		}
	}`)

	solutionPath := filepath.Join(dir, "shop.sln")
	writeFile(t, solutionPath, fmt.Sprintf(`Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio Version 17
Project("%[1]s") = "web", "web\web.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
Project("%[1]s") = "orders", "orders\orders.csproj", "{22222222-2222-2222-2222-222222222222}"
EndProject
Global
EndGlobal
`, csharpProjectType))

	return solutionPath
}

func TestSolutionResolutionFlow(t *testing.T) {
	solutionPath := writeSolutionFixture(t)

	cfg := config.Config{Source: solutionPath, Format: config.FormatYAML}
	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("resolve solution: %v", err)
	}

	topology := app.Topology()
	if len(topology.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(topology.Services))
	}
	if topology.ContextDirectory != filepath.Dir(solutionPath) {
		t.Fatalf("unexpected context directory %q", topology.ContextDirectory)
	}

	web, ok := topology.Services["web"]
	if !ok {
		t.Fatalf("web service missing from topology")
	}
	if web.Replicas != 1 {
		t.Fatalf("expected web to default to 1 replica, got %d", web.Replicas)
	}
	if web.Description.Configuration["ASPNETCORE_ENVIRONMENT"] != "Development" {
		t.Fatalf("expected web enriched from its own profile, got %v", web.Description.Configuration)
	}

	orders, ok := topology.Services["orders"]
	if !ok {
		t.Fatalf("orders service missing from topology")
	}
	if orders.Replicas != 2 || len(orders.Instances) != 2 {
		t.Fatalf("expected 2 orders replicas with instances, got %+v", orders)
	}

	// Every service sees every binding in the topology, itself included.
	env := make(map[string]string)
	if err := envinject.Inject(topology, "web", func(key, value string) {
		env[key] = value
	}); err != nil {
		t.Fatalf("inject: %v", err)
	}

	expectations := map[string]string{
		"ASPNETCORE_ENVIRONMENT":    "Development",
		"SERVICE__WEB__HOST":        "localhost",
		"SERVICE__WEB__PORT":        "5000",
		"SERVICE__WEB__PROTOCOL":    "http",
		"WEB_SERVICE_PORT":          "5000",
		"SERVICE__ORDERS__HOST":     "localhost",
		"SERVICE__ORDERS__PORT":     "5001",
		"SERVICE__ORDERS__PROTOCOL": "https",
		"ORDERS_SERVICE_HOST":       "localhost",
	}
	for key, want := range expectations {
		if env[key] != want {
			t.Fatalf("expected %s=%s, got %q", key, want, env[key])
		}
	}
}

func TestStandaloneProjectWithoutLaunchSettings(t *testing.T) {
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "lonely.csproj")
	writeFile(t, projectPath, "<Project/>")

	cfg := config.Config{Source: projectPath, Format: config.FormatYAML}
	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("resolve project: %v", err)
	}

	if got := len(app.Topology().Services); got != 0 {
		t.Fatalf("expected empty topology, got %d services", got)
	}
}
