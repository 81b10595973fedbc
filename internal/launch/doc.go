// Package launch reads optional per-project launch-configuration files
// (Properties/launchSettings.json) and merges discovered URLs, environment
// variables, and replica counts into a service description. Merging never
// overwrites values the description already carries: each field is gated
// independently on "not already set", mirroring the precedence rules applied
// to runtime configuration elsewhere in the tool.
package launch
