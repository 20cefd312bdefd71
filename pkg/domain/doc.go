/*
Package domain contains the core types shared by every layer of mockcoach.

It defines the vocabulary of a chain (participants, callbacks, topologies and tracks),
the validation profiles that decide which participants are accepted, the lifecycle events
emitted while callbacks run, and the error taxonomy. This package is kept free of
execution logic.

# Key Entities

  - Callback: A zero-argument step bound to one participant.
  - Topology: Path (all participants distinct) or Loop (first and last are the same).
  - Track: The setup sequence, the assertion sequence, or the no-interaction predicate.
  - Profile: The closed set of participant categories a chain refuses.
  - LifecycleHooks: Optional observers of callbacks and continuation windows.
*/
package domain
