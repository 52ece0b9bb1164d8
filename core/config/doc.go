// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections:
//   - Server: admin HTTP server settings (port, API key)
//   - Database: MySQL connection details for the content/profile tables
//   - Storage: S3/MinIO staging bucket credentials
//   - CMS / Thron: upstream content source endpoints
//   - Recommend: dataset service naming, region, pacing and poll settings
//   - Log: logging level and format
//
// One Config is built per invocation and handed down by reference; nothing in
// this package caches state between invocations.
package config
