// Package store provides access to the simulation database: game and team
// listings, the EAV variable pivot every analyzer consumes, and the
// facilitation guide cache.
package store

import (
	"context"
	"time"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// Store defines the persistence interface for the dashboard.
//
// Variables, VariablesAllPeriods and Decisions pivot sparse EAV rows into
// per-team snapshots. Missing (team, code) pairs are simply absent from the
// snapshot map; callers read them as zero via TeamSnapshot.Value.
type Store interface {
	// Games
	Games(ctx context.Context) ([]model.Game, error)
	GameDetails(ctx context.Context, groupID int) (*model.Game, error)
	Teams(ctx context.Context, groupID int) ([]model.Team, error)

	// EAV pivots
	Variables(ctx context.Context, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error)
	VariablesAllPeriods(ctx context.Context, groupID, maxPeriod int, codes []string) (map[int]map[int]*model.TeamSnapshot, error)
	Decisions(ctx context.Context, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error)

	// Declared strategy weights (not period-scoped: one declaration per game)
	StrategyWeights(ctx context.Context, groupID int) (map[int]*model.TeamWeights, error)

	// Facilitation guide cache
	GetGuide(ctx context.Context, groupID, period int, maxAge time.Duration) (*model.Guide, error)
	SaveGuide(ctx context.Context, guide *model.Guide) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
