// Package summarization asks the language model for a video description and
// a long-form article, then writes both to a Markdown file next to the
// transcript.
//
// An existing summary is kept as is; delete the .md file to regenerate it.
package summarization
