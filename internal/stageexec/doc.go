// Package stageexec runs one pipeline stage with consistent logging, console
// banners, and ledger bookkeeping.
package stageexec
