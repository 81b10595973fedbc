package model

import "errors"

var (
	// ErrParse is returned when a manifest, solution, or launch-configuration
	// file cannot be parsed or a record does not match the expected shape.
	ErrParse = errors.New("source file could not be parsed")
	// ErrNotFound is returned when a referenced manifest, project, solution,
	// or service does not exist.
	ErrNotFound = errors.New("referenced path does not exist")
	// ErrConfig is returned when a launch configuration carries a malformed
	// applicationUrl entry.
	ErrConfig = errors.New("launch configuration is malformed")
)
