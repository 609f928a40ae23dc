// Package llm provides a small Anthropic Messages API client for generating
// talk summaries.
//
// # Request Shape
//
// Every call is a single user message holding the full prompt. The reply's
// first content block is returned when it is text; any other block type is
// treated as an empty answer rather than an error.
//
// # Configuration
//
// Requires api_key, and optionally base_url, model, max_tokens, and timeout.
// The model defaults to claude-3-opus-20240229 with a 1024 token limit.
//
// # Retry Behaviour
//
// Retries on 408, 429, and 5xx responses are delegated to the SDK (two by
// default, adjustable with WithMaxRetries). Context cancellation aborts the
// request immediately.
package llm
