package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/sliderepl"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sliderepl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sliderepl version %s\n", strings.TrimSpace(sliderepl.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
