package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "showtracker",
		Short:         "TV show tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		// Config errors happen before a logger exists.
		fmt.Fprintf(os.Stderr, "showtracker: %v\n", err)
		os.Exit(1)
	}
}
