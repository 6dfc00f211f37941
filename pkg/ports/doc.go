/*
Package ports defines the driven ports (interfaces) of the runeport engine.

These interfaces decouple catalog compilation from where blueprint documents live,
so the engine works the same over a directory, Redis, or memory.

# Key Interfaces

  - DocumentStore: saves, loads, lists and deletes raw blueprint documents by name.
*/
package ports
