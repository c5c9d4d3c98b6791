/*
Package ports defines the driven ports (interfaces) of the SpaceTask editor core.

These interfaces decouple the core logic from the host document model and from
storage, so the validation rules and the workspace can run against any backend.

# Key Interfaces

  - Graph: Read-only neighbour queries over the process flow graph.
  - DiagramStore: Persists and loads whole diagrams (memory, file, Redis).
  - DiagramLoader: Builds a diagram from an external source (e.g. a Loam directory).
  - Locker: Provides distributed locking for concurrent diagram edits.
*/
package ports
