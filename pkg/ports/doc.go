/*
Package ports defines the driven ports (interfaces) of the slide engine.

These interfaces decouple the parser and the deck from concrete implementations, allowing
the engine to present any language for which an execution backend exists.

# Key Interfaces

  - SourceLoader: retrieves deck files (file system or memory).
  - CodeRunner: compiles fragments and executes them in an Environment.
  - Environment: the shared variable space of a deck session.
  - LineReader, KeyWaiter, History: the line-input collaborators of the console.
*/
package ports
