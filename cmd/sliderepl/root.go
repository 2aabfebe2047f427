package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/sliderepl/internal/cli"
	"github.com/aretw0/sliderepl/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "sliderepl [script]",
	Short: "Present annotated scripts as live-coding slides",
	Long: `sliderepl turns a commented script into a slide deck that runs at an interactive prompt.
Without a script it lists the numbered chapters of the slides directory.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.Execute(opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Aborting:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("toml-config", "pyproject.toml", "name / path of pyproject.toml file")
	f.BoolP("short", "s", false, "Run the 'short' version of the slides (skip those with 'l' flag)")

	f = rootCmd.Flags()
	f.Bool("run-all", false, "Execute all slides without prompting and exit.")
	f.BoolP("presentation", "p", false, "Presentation mode")
	f.Bool("timer", false, "Show timer")
	f.String("color", "auto", "Control the use of color syntax highlighting: never, auto, light or dark")
	f.String("style", "", "Chroma style for code highlighting (default depends on the background)")
	f.BoolP("watch", "w", false, "Reload the deck when its files change")
	f.Bool("debug", false, "Log parser and deck decisions to stderr")
	f.String("log-file", "", "Also write logs to this file")
	f.String("history", "", "Persist the prompt history in this file")
}

// resolveOptions merges the project files with the flags the user set explicitly.
func resolveOptions(cmd *cobra.Command, args []string) (config.Options, error) {
	flags := map[string]any{}
	if len(args) > 0 {
		flags["script"] = args[0]
	}
	visit := func(f *pflag.Flag) {
		if f.Name == "toml-config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if f.Value.Type() == "bool" {
			flags[key] = f.Value.String() == "true"
			return
		}
		flags[key] = f.Value.String()
	}
	cmd.Flags().Visit(visit)

	project, _ := cmd.Flags().GetString("toml-config")
	return config.Resolve(project, flags)
}
