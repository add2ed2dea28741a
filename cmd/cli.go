package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

func Init() *slog.LevelVar {
	level := &slog.LevelVar{}
	logger := slog.New(
		console.NewHandler(os.Stderr, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	slog.SetDefault(logger)
	cobra.EnableCommandSorting = false
	return level
}

type CLI struct {
	command *cobra.Command
}

// NewCLI create new CLI instance and set up application config.
func NewCLI() *CLI {
	level := Init()

	command := cobra.Command{
		Use:           "distancers",
		Short:         "Compute distances between vectors and cluster them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return err
			}
			if debug {
				level.Set(slog.LevelDebug)
			}
			return nil
		},
	}
	command.PersistentFlags().Bool("debug", false, "Enable debug mode")
	command.AddCommand(newComputeCommand(), newClusterCommand())
	return &CLI{&command}
}

func (cli *CLI) Execute() {
	if err := cli.command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
