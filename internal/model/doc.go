// Package model defines the service topology data model: service
// descriptions as authored or inferred by the source loaders, bindings, and
// the resolved Application map built once per run. Construction finalizes
// replica counts and assigns per-replica instance identities; the Application
// is immutable after NewApplication returns.
package model
