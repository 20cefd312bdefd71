/*
Package ports defines the driven ports (interfaces) of the mockcoach tooling.

The coach itself has no external dependencies. These interfaces only decouple the plan
server from where it keeps simulation results.

# Key Interfaces

  - ResultStore: Persists simulated plan results by ID (memory or Redis).
*/
package ports
