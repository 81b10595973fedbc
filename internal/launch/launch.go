package launch

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/topo/internal/model"
)

// settingsFile is the conventional location of a project's local launch
// configuration, relative to the project file's directory.
var settingsFile = filepath.Join("Properties", "launchSettings.json")

// settings represents the launch-configuration document shape.
type settings struct {
	Profiles map[string]profile `json:"profiles"`
}

// profile holds the subset of a launch profile this tool consumes.
type profile struct {
	ApplicationURL       string            `json:"applicationUrl"`
	EnvironmentVariables map[string]string `json:"environmentVariables"`
	Replicas             *int              `json:"replicas"`
}

// SettingsPath returns the conventional launch-configuration path for a
// project file.
func SettingsPath(projectPath string) string {
	return filepath.Join(filepath.Dir(projectPath), settingsFile)
}

// Merge enriches desc with values discovered in the launch configuration
// beside projectPath. Authored values always win: each profile field is
// applied only when the description does not already carry one. A missing
// configuration file or a missing matching profile is a silent no-op.
//
// The returned flag reports whether a launch-configuration file exists at
// all, so callers can apply source-specific policy for projects without one.
func Merge(desc *model.ServiceDescription, projectPath string, logger *zap.Logger) (bool, error) {
	path := SettingsPath(projectPath)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read launch settings %s: %w", path, err)
	}

	var doc settings
	if err := json.Unmarshal(data, &doc); err != nil {
		return true, fmt.Errorf("%w: launch settings %s: %v", model.ErrParse, path, err)
	}

	prof, ok := matchProfile(doc, projectPath)
	if !ok {
		logger.Debug("no matching launch profile",
			zap.String("project", projectPath))
		return true, nil
	}

	if len(desc.Bindings) == 0 && prof.ApplicationURL != "" {
		bindings, err := parseApplicationURL(prof.ApplicationURL)
		if err != nil {
			return true, fmt.Errorf("%w: %s: %v", model.ErrConfig, path, err)
		}
		desc.Bindings = bindings
		logger.Debug("inherited bindings from launch profile",
			zap.String("service", desc.Name), zap.Int("bindings", len(bindings)))
	}

	if len(desc.Configuration) == 0 && len(prof.EnvironmentVariables) > 0 {
		desc.Configuration = make(map[string]string, len(prof.EnvironmentVariables))
		for key, value := range prof.EnvironmentVariables {
			desc.Configuration[key] = value
		}
		logger.Debug("inherited environment variables from launch profile",
			zap.String("service", desc.Name), zap.Int("variables", len(desc.Configuration)))
	}

	if desc.Replicas == nil && prof.Replicas != nil {
		replicas := *prof.Replicas
		desc.Replicas = &replicas
		logger.Debug("inherited replicas from launch profile",
			zap.String("service", desc.Name), zap.Int("replicas", replicas))
	}

	return true, nil
}

// matchProfile finds the profile keyed by the project's base file name,
// ignoring case to match the identifier rules for service names.
func matchProfile(doc settings, projectPath string) (profile, bool) {
	base := filepath.Base(projectPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for key, prof := range doc.Profiles {
		if strings.EqualFold(key, base) {
			return prof, true
		}
	}
	return profile{}, false
}

// parseApplicationURL splits a semicolon-separated applicationUrl value into
// one binding per URL, carrying only the scheme and port.
func parseApplicationURL(raw string) ([]model.Binding, error) {
	parts := strings.Split(raw, ";")
	bindings := make([]model.Binding, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		parsed, err := url.Parse(part)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("malformed applicationUrl entry %q", part)
		}

		binding := model.Binding{Protocol: parsed.Scheme}
		if rawPort := parsed.Port(); rawPort != "" {
			port, err := strconv.Atoi(rawPort)
			if err != nil {
				return nil, fmt.Errorf("malformed port in applicationUrl entry %q", part)
			}
			binding.Port = &port
		}
		bindings = append(bindings, binding)
	}

	return bindings, nil
}
