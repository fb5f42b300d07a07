package main

import (
	"io"

	"github.com/spf13/cobra"

	app "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/board"
	"github.com/okian/benchboard/internal/domain/filter"
)

func (c *cli) showCmd() *cobra.Command {
	var (
		q         board.Query
		filters   []string
		realNames bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the score board",
		Long: `Print the fastest run per player and command, fastest first.

Filters apply in the order given:
  benchboard show --filter language=go --filter unique=players --filter top=10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builder := filter.NewBuilder()
			for _, text := range filters {
				f, err := filter.ParseAssignment(text)
				if err != nil {
					return err
				}
				builder.Add(f)
			}

			ctx := cmd.Context()
			return c.withService(ctx, func(svc *app.Service) error {
				b, err := svc.Board(ctx, q)
				if err != nil {
					return err
				}
				collection := builder.Build()
				var out string
				if realNames {
					out = b.DisplayWithRealName(ctx, collection)
				} else {
					out = b.Display(collection)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), out)
				return err
			})
		},
	}

	f := cmd.Flags()
	f.BoolVar(&q.All, "all", false, "show every run instead of the best per player and command")
	f.IntVar(&q.Limit, "limit", 0, "maximum rows loaded from the store (0 for all)")
	f.StringArrayVar(&filters, "filter", nil, "filter as key=value; repeatable (top, bottom, player, binary, language, unique, sort)")
	f.BoolVar(&realNames, "real-names", false, "show real names instead of account names")
	return cmd
}
