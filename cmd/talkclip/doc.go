// Package main hosts the talkclip CLI entrypoint and command graph.
//
// The root command takes a YouTube URL, a "start,end" timestamp pair, and a
// talk title, then drives the download, trim, transcription, and summary
// stages through internal/pipeline. Subcommands report dependency health,
// list recent runs from the local ledger, and scaffold configuration.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// only surfaced here as commands and flags.
package main
