package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/topo/internal/application"
	"github.com/eugenenazirov/topo/internal/config"
	"github.com/eugenenazirov/topo/internal/logging"
)

func main() {
	kingpinApp := kingpin.New("topo", "Resolves a multi-service application topology from a manifest, project, or solution file")
	baseDir := kingpinApp.Flag("base-dir", "Directory a relative source path resolves against").String()
	format := kingpinApp.Flag("format", "Output format for show (yaml or json)").String()
	verbose := kingpinApp.Flag("verbose", "Enable debug logging").Short('v').Bool()

	showCmd := kingpinApp.Command("show", "Print the resolved topology")
	showSource := showCmd.Arg("source", "Manifest, project, or solution file").Required().String()

	envCmd := kingpinApp.Command("env", "Print the derived environment for one service")
	envSource := envCmd.Arg("source", "Manifest, project, or solution file").Required().String()
	envService := envCmd.Arg("service", "Target service name").Required().String()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{}
	switch command {
	case showCmd.FullCommand():
		overrides.Source = *showSource
	case envCmd.FullCommand():
		overrides.Source = *envSource
	}
	if *baseDir != "" {
		overrides.BaseDir = baseDir
	}
	if *format != "" {
		overrides.Format = format
	}
	if *verbose {
		overrides.Verbose = verbose
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to resolve topology", zap.Error(err))
	}

	service := ""
	if command == envCmd.FullCommand() {
		service = *envService
	}
	if err := run(service, cfg, app, os.Stdout); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

// run writes either the derived environment for service (when set) or the
// rendered topology to out.
func run(service string, cfg config.Config, app *application.App, out io.Writer) error {
	if service != "" {
		lines, err := app.EnvFor(service)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	rendered, err := app.Render(cfg.Format)
	if err != nil {
		return err
	}
	_, err = out.Write(rendered)
	return err
}
