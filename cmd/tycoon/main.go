package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	root := &cobra.Command{
		Use:          "tycoon",
		Short:        "Music career economy simulation",
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newSimulateCmd(),
		newQualityCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
