package store

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML shape for seeding a demo SQLite store. It replaces the
// old hardcoded mock mode: a whole classroom scenario lives in one file.
type Fixture struct {
	Games []FixtureGame `yaml:"games"`
}

// FixtureGame seeds one game with its teams and raw data.
type FixtureGame struct {
	ID              int             `yaml:"id"`
	Code            string          `yaml:"code"`
	LastPeriod      int             `yaml:"last_period"`
	SimulationID    int             `yaml:"simulation_id"`
	SimulationName  string          `yaml:"simulation_name"`
	Professor       string          `yaml:"professor"`
	Teams           []FixtureTeam   `yaml:"teams"`
	Variables       []FixtureValue  `yaml:"variables"`
	Decisions       []FixtureValue  `yaml:"decisions"`
	StrategyWeights []FixtureWeight `yaml:"strategy_weights"`
}

// FixtureTeam seeds one team.
type FixtureTeam struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
}

// FixtureValue seeds one EAV row (variable or decision).
type FixtureValue struct {
	Team   int     `yaml:"team"`
	Period int     `yaml:"period"`
	Code   string  `yaml:"code"`
	Value  float64 `yaml:"value"`
}

// FixtureWeight seeds one declared strategy weight.
type FixtureWeight struct {
	Team   int    `yaml:"team"`
	Item   string `yaml:"item"`
	Code   string `yaml:"code"`
	Weight int    `yaml:"weight"`
}

// LoadFixture reads a YAML fixture file and seeds the store with it.
// Existing rows with the same keys are replaced, so reloading a fixture is
// idempotent.
func (s *SQLiteStore) LoadFixture(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "fixture: read %s", path)
	}

	var fx Fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return eris.Wrapf(err, "fixture: parse %s", path)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "fixture: begin tx")
	}
	defer tx.Rollback()

	for _, game := range fx.Games {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO games (id, code, last_period, team_count, simulation_id, simulation_name, professor)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			game.ID, game.Code, game.LastPeriod, len(game.Teams), game.SimulationID, game.SimulationName, game.Professor,
		); err != nil {
			return eris.Wrapf(err, "fixture: seed game %d", game.ID)
		}

		for _, t := range game.Teams {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO teams (group_id, number, name) VALUES (?, ?, ?)`,
				game.ID, t.Number, t.Name,
			); err != nil {
				return eris.Wrapf(err, "fixture: seed team %d/%d", game.ID, t.Number)
			}
		}

		for _, v := range game.Variables {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO variables (group_id, period, team_number, code, value)
				 VALUES (?, ?, ?, ?, ?)`,
				game.ID, v.Period, v.Team, v.Code, v.Value,
			); err != nil {
				return eris.Wrapf(err, "fixture: seed variable %s", v.Code)
			}
		}

		for _, d := range game.Decisions {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO decisions (group_id, period, team_number, code, value)
				 VALUES (?, ?, ?, ?, ?)`,
				game.ID, d.Period, d.Team, d.Code, d.Value,
			); err != nil {
				return eris.Wrapf(err, "fixture: seed decision %s", d.Code)
			}
		}

		for _, w := range game.StrategyWeights {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO strategy_weights (group_id, team_number, item_name, variable_code, weight)
				 VALUES (?, ?, ?, ?, ?)`,
				game.ID, w.Team, w.Item, w.Code, w.Weight,
			); err != nil {
				return eris.Wrapf(err, "fixture: seed weight %s", w.Item)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "fixture: commit")
	}
	return nil
}
