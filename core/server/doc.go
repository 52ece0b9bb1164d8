// Package server holds configuration for the admin HTTP server that exposes
// the sync trigger endpoints. The server itself is assembled in cmd/start.go.
package server
