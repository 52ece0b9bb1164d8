// Package storage provides an abstraction layer for the staging object store.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the pipelines need: writing CSV dataset artifacts
// (<domain>-content-meta.csv, user-meta.csv, <domain>/interactions/...),
// listing behaviour-log objects, and reading them back. The abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// The Client interface makes storage interactions mockable for unit testing
// (see core/storage/mocks).
package storage
