package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/greentrack/internal/enrich"
)

func newEnrichCmd() *cobra.Command {
	var kwh float64

	cmd := &cobra.Command{
		Use:     "enrich <location>",
		Short:   "Print carbon, renewable and footprint reports for a location as JSON",
		Example: "  greentrack enrich Jaipur --kwh 200",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire()
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()

			res, err := c.orchestrator.Enrich(cmd.Context(), strings.Join(args, " "), kwh)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().Float64Var(&kwh, "kwh", enrich.DefaultMonthlyKWh, "monthly electricity consumption in kWh")
	return cmd
}
