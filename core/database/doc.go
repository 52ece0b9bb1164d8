// Package database provides the MySQL connection used by the ingestion
// pipelines. The content cache table and the user profile table both live in
// this database; repositories for them are defined next to their features.
package database
