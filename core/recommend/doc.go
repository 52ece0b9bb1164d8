// Package recommend wraps the managed recommendation dataset service and its
// companion parameter store.
//
// The service's resources (schemas, datasets, import jobs, event trackers,
// solutions, campaigns) are identified by name within a dataset group. This
// package provides:
//
//   - Registry: resolve-or-create semantics for named resources. Creation is
//     always preceded by a lookup; a racing "already exists" from the remote
//     side is repaired by resolving again, never treated as fatal.
//   - Waiter: status polling for dataset readiness with an explicit deadline
//     on every call site.
//   - Pointers: durable name -> ARN pointers in the parameter store, written
//     after creation and read by later incremental invocations.
//   - Lifecycle: event tracker, solution and campaign management, including
//     metric-guarded promotion of new solution versions.
//
// All remote calls go through narrow API interfaces over the AWS SDK v2
// clients so every component is mockable (see core/recommend/mocks).
package recommend
