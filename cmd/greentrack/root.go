package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "greentrack",
		Short:         "GreenTrack India location enrichment and sustainability advisor",
		Long:          "GreenTrack resolves Indian locations and reports grid carbon intensity, renewable potential and carbon footprint, and answers sustainability questions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd(), newEnrichCmd(), newAdviseCmd())
	return cmd
}
