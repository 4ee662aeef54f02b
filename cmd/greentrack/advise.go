package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAdviseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "advise <question...>",
		Short:   "Ask the sustainability advisor a single question",
		Example: `  greentrack advise "How much can I save with LED lights?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire()
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()

			reply := c.responder.Respond(cmd.Context(), strings.Join(args, " "), nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n\n", reply.Source)
			fmt.Fprintln(out, reply.Content)
			return nil
		},
	}
}
