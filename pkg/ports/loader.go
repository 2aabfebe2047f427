package ports

// SourceLoader defines how the parser retrieves deck sources.
// This allows the storage layer (file system, memory) to be decoupled from parsing.
type SourceLoader interface {
	// Load returns the raw content of the source at path.
	Load(path string) ([]byte, error)
}

// Watchable defines an interface for loaders that can report the files they served.
// This is used by watch mode to know which files to observe.
type Watchable interface {
	// Loaded returns every path served since the loader was created, in load order.
	Loaded() []string
}
