// Package services defines shared utilities consumed by the pipeline stages and
// their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and run correlation identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper so every failure carries
//     the stage and operation it came from and can be classified with
//     errors.Is or Kind.
//
// Subpackages hold the thin clients for YouTube, AWS, and the language model.
package services
