/*
Package domain contains the core domain models for the navigation binder.

It defines what a binding is, how initialization reacts to missing triggers,
and the events emitted while binding and navigating. This package is kept pure
and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Binding: the static association between a trigger element and a target path.
  - Policy: what initialization does when a trigger cannot be resolved.
  - Phase: the binder lifecycle (unbound, bound).
  - ActivationEvent / NavigationEvent / BindEvent: observability payloads.
*/
package domain
