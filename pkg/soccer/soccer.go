// Package soccer wraps the Soccer Extended product: raw endpoint payloads and
// the flat tables built from them.
package soccer

import (
	"context"
	"fmt"

	"github.com/Sternrassler/sportradar-client/pkg/client"
	"github.com/Sternrassler/sportradar-client/pkg/pagination"
	"github.com/Sternrassler/sportradar-client/pkg/quota"
	"github.com/Sternrassler/sportradar-client/pkg/sportradar"
)

// Product is the Soccer Extended URL segment.
const Product = "soccer-extended"

// Caller fetches a complete endpoint payload. *sportradar.API implements it.
type Caller interface {
	CallEndpoint(ctx context.Context, ep sportradar.Endpoint) (pagination.Payload, error)
}

// Soccer is a Soccer Extended client.
type Soccer struct {
	caller Caller
}

// New creates a Soccer Extended client. cfg.Product is set to Product.
func New(cfg client.Config, opts ...sportradar.Option) (*Soccer, error) {
	cfg.Product = Product

	api, err := sportradar.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithCaller(api), nil
}

// Quota returns the last plan quota seen by the caller. It is the zero State
// when the caller does not track the quota.
func (s *Soccer) Quota() quota.State {
	if q, ok := s.caller.(interface{ Quota() quota.State }); ok {
		return q.Quota()
	}
	return quota.State{}
}

// NewWithCaller creates a Soccer Extended client on top of an existing caller.
func NewWithCaller(caller Caller) *Soccer {
	return &Soccer{caller: caller}
}

// CompetitionsEndpoint lists all available competitions.
func CompetitionsEndpoint() sportradar.Endpoint {
	return sportradar.Endpoint{Path: "competitions", Key: "competitions"}
}

// SeasonsEndpoint lists historical seasons for all competitions.
func SeasonsEndpoint() sportradar.Endpoint {
	return sportradar.Endpoint{Path: "seasons", Key: "seasons"}
}

// SeasonSummariesEndpoint lists summaries for every sport event of a season,
// including match-level statistics.
func SeasonSummariesEndpoint(seasonURN string) sportradar.Endpoint {
	return sportradar.Endpoint{Path: fmt.Sprintf("seasons/%s/summaries", seasonURN), Key: "summaries"}
}

// SeasonCompetitorsEndpoint lists the teams taking part in a season.
func SeasonCompetitorsEndpoint(seasonURN string) sportradar.Endpoint {
	return sportradar.Endpoint{Path: fmt.Sprintf("seasons/%s/competitors", seasonURN), Key: "season_competitors"}
}

// PlayerProfileEndpoint returns a player's information and team history.
// The endpoint is not paginated.
func PlayerProfileEndpoint(playerURN string) sportradar.Endpoint {
	return sportradar.Endpoint{Path: fmt.Sprintf("players/%s/profile", playerURN)}
}

// Competitions returns all available competitions.
func (s *Soccer) Competitions(ctx context.Context) (pagination.Payload, error) {
	return s.caller.CallEndpoint(ctx, CompetitionsEndpoint())
}

// Seasons returns historical season information for all competitions.
func (s *Soccer) Seasons(ctx context.Context) (pagination.Payload, error) {
	return s.caller.CallEndpoint(ctx, SeasonsEndpoint())
}

// SeasonSummaries returns the summaries of all sport events in a season.
func (s *Soccer) SeasonSummaries(ctx context.Context, seasonURN string) (pagination.Payload, error) {
	if seasonURN == "" {
		return nil, fmt.Errorf("season urn is required")
	}
	return s.caller.CallEndpoint(ctx, SeasonSummariesEndpoint(seasonURN))
}

// SeasonCompetitors returns the teams participating in a season.
func (s *Soccer) SeasonCompetitors(ctx context.Context, seasonURN string) (pagination.Payload, error) {
	if seasonURN == "" {
		return nil, fmt.Errorf("season urn is required")
	}
	return s.caller.CallEndpoint(ctx, SeasonCompetitorsEndpoint(seasonURN))
}

// PlayerProfile returns a player's profile.
func (s *Soccer) PlayerProfile(ctx context.Context, playerURN string) (pagination.Payload, error) {
	if playerURN == "" {
		return nil, fmt.Errorf("player urn is required")
	}
	return s.caller.CallEndpoint(ctx, PlayerProfileEndpoint(playerURN))
}
