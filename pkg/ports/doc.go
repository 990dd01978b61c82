/*
Package ports defines the driven ports (interfaces) for the navigation binder.

These interfaces decouple the binder from the environment that owns the
document and performs navigation, so the same core runs against an in-memory
document in tests, a parsed HTML page behind an HTTP server, or any other host.

# Key Interfaces

  - Document: resolves a trigger identifier to zero or one Element.
  - Element: accepts activation listeners.
  - Navigator: asks the host to replace the current document with another path.
  - BindingLoader: supplies the static binding list (memory, file).
*/
package ports
