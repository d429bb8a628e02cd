package soccer

import (
	"context"
	"fmt"

	"github.com/Sternrassler/sportradar-client/pkg/flatten"
	"github.com/Sternrassler/sportradar-client/pkg/pagination"
)

const (
	teamsColumn   = "statistics.totals.competitors"
	playersColumn = "statistics.totals.competitors.players"
)

var teamStatisticsRules = flatten.Rules{
	flatten.Replace{Old: teamsColumn + ".", New: "competitor."},
	flatten.Remove("statistics."),
	flatten.Replace{Old: ".", New: "_"},
}

var playerStatisticsRules = flatten.Rules{
	flatten.Replace{Old: playersColumn + ".", New: "player."},
	flatten.Replace{Old: teamsColumn + ".", New: "competitor."},
	flatten.Remove("statistics."),
	flatten.Replace{Old: ".", New: "_"},
}

// CompetitionsTable returns one row per competition.
func (s *Soccer) CompetitionsTable(ctx context.Context) (*flatten.Table, error) {
	payload, err := s.Competitions(ctx)
	if err != nil {
		return nil, err
	}
	return flatten.FromPayload(payload, "competitions")
}

// SeasonsTable returns one row per season.
func (s *Soccer) SeasonsTable(ctx context.Context) (*flatten.Table, error) {
	payload, err := s.Seasons(ctx)
	if err != nil {
		return nil, err
	}
	return flatten.FromPayload(payload, "seasons")
}

// SeasonCompetitorsTable returns one row per team of the season, tagged
// with season_urn.
func (s *Soccer) SeasonCompetitorsTable(ctx context.Context, seasonURN string) (*flatten.Table, error) {
	payload, err := s.SeasonCompetitors(ctx, seasonURN)
	if err != nil {
		return nil, err
	}

	table, err := flatten.FromPayload(payload, "season_competitors")
	if err != nil {
		return nil, err
	}
	table.Assign("season_urn", seasonURN)
	return table, nil
}

// SeasonTeamStatisticsTable returns one row per team and sport event with
// the team's match totals. Columns are renamed to sport_event_id,
// competitor_id, competitor_<stat>.
func (s *Soccer) SeasonTeamStatisticsTable(ctx context.Context, seasonURN string) (*flatten.Table, error) {
	payload, err := s.SeasonSummaries(ctx, seasonURN)
	if err != nil {
		return nil, err
	}
	return TeamStatistics(payload)
}

// SeasonPlayerStatisticsTable returns one row per player and sport event,
// carrying the sport event and team identifiers.
func (s *Soccer) SeasonPlayerStatisticsTable(ctx context.Context, seasonURN string) (*flatten.Table, error) {
	payload, err := s.SeasonSummaries(ctx, seasonURN)
	if err != nil {
		return nil, err
	}
	return PlayerStatistics(payload)
}

// TeamStatistics builds the team statistics table from a season summaries
// payload.
func TeamStatistics(summaries pagination.Payload) (*flatten.Table, error) {
	table, err := flatten.FromPayload(summaries, "summaries")
	if err != nil {
		return nil, err
	}

	teams, err := flatten.Explode(table, teamsColumn, "sport_event.id")
	if err != nil {
		return nil, err
	}
	teams = teams.Drop(playersColumn)

	return teamStatisticsRules.Rename(teams)
}

// PlayerStatistics builds the player statistics table from a season
// summaries payload.
func PlayerStatistics(summaries pagination.Payload) (*flatten.Table, error) {
	table, err := flatten.FromPayload(summaries, "summaries")
	if err != nil {
		return nil, err
	}

	players, err := flatten.ExplodeLevels(table,
		flatten.Level{Column: teamsColumn, Keep: []string{"sport_event.id"}},
		flatten.Level{Column: playersColumn, Keep: []string{teamsColumn + ".id"}},
	)
	if err != nil {
		return nil, err
	}

	return playerStatisticsRules.Rename(players)
}

// PlayerProfileTables holds the three tables derived from one player profile.
type PlayerProfileTables struct {
	Info        *flatten.Table
	Competitors *flatten.Table
	Roles       *flatten.Table
}

// PlayerProfileTables fetches a profile once and builds all of its tables.
func (s *Soccer) PlayerProfileTables(ctx context.Context, playerURN string) (*PlayerProfileTables, error) {
	payload, err := s.PlayerProfile(ctx, playerURN)
	if err != nil {
		return nil, err
	}

	info, err := profileInfo(payload, playerURN)
	if err != nil {
		return nil, err
	}
	competitors, err := profileCompetitors(payload, playerURN)
	if err != nil {
		return nil, err
	}
	roles, err := profileRoles(payload, playerURN)
	if err != nil {
		return nil, err
	}

	return &PlayerProfileTables{Info: info, Competitors: competitors, Roles: roles}, nil
}

// PlayerProfileInfoTable returns the player's basic information as one row.
func (s *Soccer) PlayerProfileInfoTable(ctx context.Context, playerURN string) (*flatten.Table, error) {
	payload, err := s.PlayerProfile(ctx, playerURN)
	if err != nil {
		return nil, err
	}
	return profileInfo(payload, playerURN)
}

// PlayerProfileCompetitorsTable returns the teams the player is listed for.
func (s *Soccer) PlayerProfileCompetitorsTable(ctx context.Context, playerURN string) (*flatten.Table, error) {
	payload, err := s.PlayerProfile(ctx, playerURN)
	if err != nil {
		return nil, err
	}
	return profileCompetitors(payload, playerURN)
}

// PlayerProfileRolesTable returns the player's current and past roles, each
// role fully flattened.
func (s *Soccer) PlayerProfileRolesTable(ctx context.Context, playerURN string) (*flatten.Table, error) {
	payload, err := s.PlayerProfile(ctx, playerURN)
	if err != nil {
		return nil, err
	}
	return profileRoles(payload, playerURN)
}

func profileInfo(payload pagination.Payload, playerURN string) (*flatten.Table, error) {
	table, err := flatten.FromPayload(payload, "player")
	if err != nil {
		return nil, err
	}
	table.Assign("player_urn", playerURN)
	return table, nil
}

func profileCompetitors(payload pagination.Payload, playerURN string) (*flatten.Table, error) {
	table, err := flatten.FromPayload(payload, "competitors")
	if err != nil {
		return nil, err
	}
	table.Assign("player_urn", playerURN)
	return table, nil
}

func profileRoles(payload pagination.Payload, playerURN string) (*flatten.Table, error) {
	value, ok := payload["roles"]
	if !ok {
		return nil, &flatten.LookupError{Key: "roles"}
	}
	roles, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("roles is %T, not a list", value)
	}

	table, err := flatten.FlattenRecords(roles, flatten.DefaultSep)
	if err != nil {
		return nil, fmt.Errorf("roles: %w", err)
	}
	table.Assign("player_urn", playerURN)
	return table, nil
}
