// Package source loads service descriptions from one of three inputs: a
// declarative YAML manifest, a single build-project file, or a multi-project
// solution file. All loaders implement the Loader interface and report the
// context directory (the loaded file's directory) alongside the descriptions.
// Relative source paths resolve against the current working directory.
package source
