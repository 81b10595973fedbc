// Package application wires configuration, source loading, and topology
// construction together, making the main package cleaner and more focused on
// CLI parsing and output.
package application
