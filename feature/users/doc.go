// Package users imports onboarding preferences into the user datasets. The
// bulk path scans the profile table, stages one CSV and runs an idempotent
// import job per group; the incremental path folds profile change batches
// into streaming user writes against both groups.
package users
