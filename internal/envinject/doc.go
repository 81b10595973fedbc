// Package envinject derives the environment-variable contract that lets a
// service instance locate every other service's bindings without a registry.
// It is a pure function of the resolved Application and a target service
// name, with side effects only through the caller-supplied sink, so it is
// safe to invoke concurrently for different targets.
package envinject
