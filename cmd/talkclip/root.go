package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/pipeline"
)

const usageLine = "Usage: talkclip <youtube-url> <start,end> <title>"

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "talkclip <youtube-url> <start,end> <title>",
		Short: "Clip, transcribe, and summarize a talk from a YouTube video",
		Long: `talkclip downloads a YouTube video, cuts the talk between two timestamps,
transcribes its audio with AWS Transcribe, and writes a Markdown summary.

Timestamps are "start,end" where each side is SS, MM:SS, or HH:MM:SS.`,
		Example:       `  talkclip "https://www.youtube.com/watch?v=dQw4w9WgXcQ" "1:02:03,1:30:00" "Keynote"`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if cmd == cmd.Root() && len(args) < 3 {
				// Usage errors must not depend on a loadable config.
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := requestFromArgs(args)
			if err := req.Validate(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), usageLine)
				return err
			}
			return runPipeline(cmd, ctx, req)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func requestFromArgs(args []string) job.Request {
	var req job.Request
	if len(args) > 0 {
		req.URL = args[0]
	}
	if len(args) > 1 {
		req.Timestamps = args[1]
	}
	if len(args) > 2 {
		req.Title = args[2]
	}
	return req
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, req job.Request) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, logCloser, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCloser.Close()

	runner, closer, err := pipeline.NewFromConfig(signalCtx, cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closer.Close()

	if _, err := runner.Run(signalCtx, req); err != nil {
		if signalCtx.Err() != nil {
			return signalCtx.Err()
		}
		return err
	}
	return nil
}
