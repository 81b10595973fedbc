package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/topo/internal/model"
)

const solutionHeader = "Microsoft Visual Studio Solution File"

// msbuildProjectTypes are the solution project-type GUIDs recognized as
// standard build-tool-format projects (C#, SDK-style C#, F#). Members of any
// other type, such as solution folders, are skipped.
var msbuildProjectTypes = map[string]struct{}{
	"{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}": {},
	"{9A19103F-16F7-4668-BE54-9A1E7A4F7556}": {},
	"{F2A71F9B-5D33-465A-A702-920D77279786}": {},
}

// projectExtensions is the allow-list of member project-file extensions.
var projectExtensions = map[string]struct{}{
	".csproj": {},
	".fsproj": {},
}

// solutionMember is one Project record parsed out of a solution file.
type solutionMember struct {
	typeGUID string
	name     string
	path     string
}

// SolutionLoader enumerates a multi-project solution file and delegates each
// eligible member to the single-project loader.
type SolutionLoader struct {
	logger   *zap.Logger
	projects *ProjectLoader
}

// NewSolutionLoader creates a solution loader.
func NewSolutionLoader(logger *zap.Logger) *SolutionLoader {
	return &SolutionLoader{
		logger:   logger,
		projects: NewProjectLoader(logger),
	}
}

// Load parses the solution at path and collects the descriptions of every
// eligible member project, preserving solution file order. Members of
// unsupported types or extensions are skipped silently; members whose
// single-project load yields nothing are discarded.
func (l *SolutionLoader) Load(baseDir, path string) ([]model.ServiceDescription, string, error) {
	abs, contextDir, err := resolveSource(baseDir, path)
	if err != nil {
		return nil, "", err
	}

	members, err := parseSolution(abs)
	if err != nil {
		return nil, "", err
	}

	var descriptions []model.ServiceDescription
	for _, member := range members {
		if !eligible(member) {
			l.logger.Debug("skipping solution member",
				zap.String("member", member.name), zap.String("type", member.typeGUID))
			continue
		}

		// Solution files store member paths with Windows separators.
		relPath := filepath.FromSlash(strings.ReplaceAll(member.path, `\`, "/"))
		memberPath := filepath.Join(contextDir, relPath)
		descs, _, err := l.projects.Load(contextDir, memberPath)
		if err != nil {
			return nil, "", err
		}
		descriptions = append(descriptions, descs...)
	}

	l.logger.Debug("loaded solution",
		zap.String("path", abs),
		zap.Int("members", len(members)),
		zap.Int("services", len(descriptions)))

	return descriptions, contextDir, nil
}

func eligible(member solutionMember) bool {
	if _, ok := msbuildProjectTypes[strings.ToUpper(member.typeGUID)]; !ok {
		return false
	}
	_, ok := projectExtensions[strings.ToLower(filepath.Ext(member.path))]
	return ok
}

// parseSolution scans the line-oriented solution format for Project records:
//
//	Project("{type-guid}") = "name", "relative\path", "{project-guid}"
func parseSolution(path string) ([]solutionMember, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open solution %s: %w", path, err)
	}
	defer file.Close()

	var members []solutionMember
	sawHeader := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.Contains(line, solutionHeader) {
			sawHeader = true
			continue
		}
		if !strings.HasPrefix(line, "Project(") {
			continue
		}

		member, err := parseProjectLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: solution %s: %v", model.ErrParse, path, err)
		}
		members = append(members, member)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read solution %s: %w", path, err)
	}

	if !sawHeader {
		return nil, fmt.Errorf("%w: solution %s: missing solution header", model.ErrParse, path)
	}

	return members, nil
}

func parseProjectLine(line string) (solutionMember, error) {
	lhs, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return solutionMember{}, fmt.Errorf("malformed project record %q", line)
	}

	typeGUID, err := unquote(strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(lhs, "Project(")), ")"))
	if err != nil {
		return solutionMember{}, fmt.Errorf("malformed project type in %q", line)
	}

	fields := strings.Split(rhs, ",")
	if len(fields) < 2 {
		return solutionMember{}, fmt.Errorf("malformed project record %q", line)
	}

	name, err := unquote(fields[0])
	if err != nil {
		return solutionMember{}, fmt.Errorf("malformed project name in %q", line)
	}
	memberPath, err := unquote(fields[1])
	if err != nil {
		return solutionMember{}, fmt.Errorf("malformed project path in %q", line)
	}

	return solutionMember{typeGUID: typeGUID, name: name, path: memberPath}, nil
}

func unquote(field string) (string, error) {
	field = strings.TrimSpace(field)
	if len(field) < 2 || !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
		return "", fmt.Errorf("expected quoted field, got %q", field)
	}
	return field[1 : len(field)-1], nil
}
