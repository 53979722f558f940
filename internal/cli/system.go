package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yigit/studentreg/internal/app/models/dto"
)

func newHealthCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API and database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().CheckHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Status", "MongoDB", "Uptime", "Timestamp"})
			table.Append([]string{h.Status, h.MongoDB, fmt.Sprintf("%.1fs", h.Uptime), h.Timestamp})
			table.Render()

			if h.Status == dto.HealthOK && h.MongoDB == dto.MongoConnected {
				color.New(color.FgGreen).Fprintln(out, "All systems operational")
			} else {
				color.New(color.FgRed).Fprintln(out, "Service degraded")
			}
			return nil
		},
	}
}

func newHelloCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Call the hello endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().GetHello(cmd.Context())
			if err != nil {
				return err
			}
			color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), h.Message)
			return nil
		},
	}
}
