package cmd

import (
	"fmt"
	"os"

	"github.com/dispatchlab/crtbox/pkg/crtbox"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n",
			crtbox.Version, crtbox.Build)
		os.Exit(0)
	}
}
