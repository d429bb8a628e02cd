package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/sportradar-client/pkg/flatten"
	"github.com/Sternrassler/sportradar-client/pkg/soccer"
)

// tableNames lists the tables the table command can build, in help order.
var tableNames = []string{
	"competitions",
	"seasons",
	"season-competitors",
	"season-teams",
	"season-players",
	"player-info",
	"player-competitors",
	"player-roles",
}

func newTableCmd(a *app) *cobra.Command {
	var (
		season string
		player string
		output string
	)

	cmd := &cobra.Command{
		Use:   "table NAME",
		Short: "Print a Soccer Extended table as CSV or JSON",
		Long: `Build one of the flattened Soccer Extended tables:

  ` + strings.Join(tableNames, "\n  ") + `

season-* tables need --season, player-* tables need --player.`,
		Example: `  sportradar table seasons
  sportradar table season-players --season sr:season:77453 -o json
  sportradar table player-roles --player sr:player:1047`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: tableNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Product != soccer.Product {
				return fmt.Errorf("tables are built from %s, not --product %s", soccer.Product, a.cfg.Product)
			}

			write, err := tableWriter(output)
			if err != nil {
				return err
			}

			s, err := soccer.New(a.cfg.ClientConfig(), a.options()...)
			if err != nil {
				return err
			}

			table, err := buildTable(cmd.Context(), s, args[0], season, player)
			if err != nil {
				return err
			}

			a.logger.Info().
				Str("table", args[0]).
				Int("rows", table.Len()).
				Int("columns", len(table.Columns)).
				Msg("Table built")
			a.logQuota(s.Quota())

			return write(table, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&season, "season", "", "season URN, e.g. sr:season:77453")
	cmd.Flags().StringVar(&player, "player", "", "player URN, e.g. sr:player:1047")
	cmd.Flags().StringVarP(&output, "output", "o", "csv", "output format (csv or json)")

	return cmd
}

func tableWriter(format string) (func(*flatten.Table, io.Writer) error, error) {
	switch format {
	case "csv":
		return (*flatten.Table).WriteCSV, nil
	case "json":
		return (*flatten.Table).WriteJSON, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want csv or json)", format)
}

func buildTable(ctx context.Context, s *soccer.Soccer, name, season, player string) (*flatten.Table, error) {
	switch {
	case strings.HasPrefix(name, "season-") && season == "":
		return nil, fmt.Errorf("table %s needs --season", name)
	case strings.HasPrefix(name, "player-") && player == "":
		return nil, fmt.Errorf("table %s needs --player", name)
	}

	switch name {
	case "competitions":
		return s.CompetitionsTable(ctx)
	case "seasons":
		return s.SeasonsTable(ctx)
	case "season-competitors":
		return s.SeasonCompetitorsTable(ctx, season)
	case "season-teams":
		return s.SeasonTeamStatisticsTable(ctx, season)
	case "season-players":
		return s.SeasonPlayerStatisticsTable(ctx, season)
	case "player-info":
		return s.PlayerProfileInfoTable(ctx, player)
	case "player-competitors":
		return s.PlayerProfileCompetitorsTable(ctx, player)
	case "player-roles":
		return s.PlayerProfileRolesTable(ctx, player)
	}
	return nil, fmt.Errorf("unknown table %q (want one of %s)", name, strings.Join(tableNames, ", "))
}
