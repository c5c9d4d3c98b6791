/*
Package domain contains the core domain models shared by every SpaceTask component.

It defines the process-diagram entities the editor works on and the typed extension
attributes stored on them. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: A task in the process graph carrying an ordered list of extension attributes.
  - Attribute: A `{kind, value}` pair. Recognized kinds are typed; unknown kinds are
    carried through untouched.
  - Role: movement, binding or unbinding, derived from a node's Type attribute.
  - Warning: An advisory message produced by the validation rules. Never blocking.
  - Diagram: The host document (participants, task nodes and flows) used by adapters.
*/
package domain
