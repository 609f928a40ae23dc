package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"talkclip/internal/deps"
	"talkclip/internal/logging"
	"talkclip/internal/pipeline"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external binaries and service readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := []deps.Status{deps.CheckFFmpeg(cmd.Context(), cfg.Media.FFmpegBinary)}
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Version
				if !status.Available {
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, availability(status), detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Stages", colorize) {
				fmt.Fprintln(out, line)
			}
			runner, closer, err := pipeline.NewFromConfig(cmd.Context(), cfg, logging.NewNop(), out)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Pipeline", statusError, err.Error(), colorize))
			} else {
				defer closer.Close()
				for _, health := range runner.Health(cmd.Context()) {
					fmt.Fprintln(out, stageStatusLine(health, colorize))
				}
			}

			if missing := deps.Missing(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					fmt.Fprintln(cmd.ErrOrStderr(), dependencyStatusLine(status, shouldColorize(cmd.ErrOrStderr())))
					names = append(names, status.Name)
				}
				return fmt.Errorf("missing required dependencies: %s", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func availability(status deps.Status) string {
	switch {
	case status.Available:
		return "available"
	case status.Optional:
		return "optional, missing"
	default:
		return "missing"
	}
}
