// Package ingest contains the run-scoped building blocks of the incremental
// sync pipelines: duplicate suppression and paced batch dispatch.
//
// Both types live for exactly one synchronization run (one invocation or one
// page walk) and are discarded afterwards; nothing here persists state across
// invocations.
package ingest
