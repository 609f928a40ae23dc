// Package ledger keeps a local SQLite history of pipeline runs.
//
// Each invocation of the pipeline becomes one row holding the request, the
// stage it last entered, and how it ended. The `talkclip history` command reads
// it back. The pipeline treats the ledger as best effort: a ledger error is
// logged and never fails a run.
//
// The schema is embedded and versioned; a version mismatch is reported with
// ErrSchemaMismatch and the database must be deleted to reset history.
package ledger
