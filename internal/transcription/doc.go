// Package transcription turns the talk audio into a plain text transcript
// with AWS Transcribe.
//
// The flow is upload, start, poll, fetch. Poller is a small state machine
// over the job status: QUEUED and IN_PROGRESS keep it waiting, COMPLETED ends
// it successfully, and every other state is a failure. The sleep between
// status reads is injectable so tests run instantly, and it honours context
// cancellation.
//
// Result documents in the configured bucket are read with GetObject, which
// works for private buckets; other URIs are fetched over plain HTTPS.
//
// Uploaded audio and job output are left in the bucket.
package transcription
