// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordSource: Lists the records of one content type
//   - CacheStore: Namespaced TTL cache with pattern invalidation
//   - Clock: Time source for TTL expiry and recency windows
//   - EventLogger: Structured per-domain event logging
//   - ConfigStore: Application configuration
//
// A CacheStore failure is never fatal; the core treats it as a miss.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
