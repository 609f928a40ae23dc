// Package aws builds the S3 and Transcribe clients used by the transcription
// stage from talkclip configuration.
package aws
