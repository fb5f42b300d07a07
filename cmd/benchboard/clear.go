package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/okian/benchboard/internal/app"
)

func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return c.withService(ctx, func(svc *app.Service) error {
				if err := svc.Clear(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "scores cleared")
				return err
			})
		},
	}
}
