package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It is the demo and
// classroom-prep backend: instead of the simulator's schema it keeps a
// simplified local copy (games, teams, EAV variables, decisions, weights)
// seeded from a YAML fixture.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sdb.Exec(pragma); err != nil {
			sdb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sdb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS games (
	id              INTEGER PRIMARY KEY,
	code            TEXT NOT NULL,
	last_period     INTEGER NOT NULL DEFAULT 0,
	team_count      INTEGER NOT NULL DEFAULT 0,
	simulation_id   INTEGER NOT NULL DEFAULT 0,
	simulation_name TEXT NOT NULL DEFAULT '',
	professor       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS teams (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	group_id INTEGER NOT NULL,
	number   INTEGER NOT NULL,
	name     TEXT NOT NULL,
	UNIQUE (group_id, number)
);

CREATE TABLE IF NOT EXISTS variables (
	group_id    INTEGER NOT NULL,
	period      INTEGER NOT NULL,
	team_number INTEGER NOT NULL,
	code        TEXT NOT NULL,
	value       REAL NOT NULL,
	PRIMARY KEY (group_id, period, team_number, code)
);

CREATE TABLE IF NOT EXISTS decisions (
	group_id    INTEGER NOT NULL,
	period      INTEGER NOT NULL,
	team_number INTEGER NOT NULL,
	code        TEXT NOT NULL,
	value       REAL NOT NULL,
	PRIMARY KEY (group_id, period, team_number, code)
);

CREATE TABLE IF NOT EXISTS strategy_weights (
	group_id      INTEGER NOT NULL,
	team_number   INTEGER NOT NULL,
	item_name     TEXT NOT NULL,
	variable_code TEXT NOT NULL DEFAULT '',
	weight        INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (group_id, team_number, item_name)
);

CREATE TABLE IF NOT EXISTS tutor_guides (
	id         TEXT PRIMARY KEY,
	group_id   INTEGER NOT NULL,
	period     INTEGER NOT NULL,
	content    TEXT NOT NULL,
	model      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_variables_lookup ON variables(group_id, period, code);
CREATE INDEX IF NOT EXISTS idx_guides_lookup ON tutor_guides(group_id, period, created_at DESC);
`

// Migrate creates the demo schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Games lists all seeded games.
func (s *SQLiteStore) Games(ctx context.Context) ([]model.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, last_period, team_count, simulation_id, simulation_name, professor
		 FROM games ORDER BY id DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list games")
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// GameDetails returns one game, or nil when it does not exist.
func (s *SQLiteStore) GameDetails(ctx context.Context, groupID int) (*model.Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, code, last_period, team_count, simulation_id, simulation_name, professor
		 FROM games WHERE id = ?`, groupID)
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(r rowScanner) (*model.Game, error) {
	var g model.Game
	var professor string
	if err := r.Scan(&g.ID, &g.Code, &g.LastProcessedPeriod, &g.TeamCount, &g.SimulationID, &g.SimulationName, &professor); err != nil {
		return nil, eris.Wrap(err, "sqlite: scan game")
	}
	g.Name = g.Code
	if professor != "" {
		g.Professors = []string{professor}
	}
	return &g, nil
}

// Teams lists the teams of a game ordered by team number.
func (s *SQLiteStore) Teams(ctx context.Context, groupID int) ([]model.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, number, group_id FROM teams WHERE group_id = ? ORDER BY number`, groupID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: teams for group %d", groupID)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Number, &t.GroupID); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan team")
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Variables pivots the requested EAV codes into one snapshot per team.
func (s *SQLiteStore) Variables(ctx context.Context, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error) {
	return s.pivot(ctx, "variables", groupID, period, codes)
}

// Decisions pivots the requested decision codes into one snapshot per team.
func (s *SQLiteStore) Decisions(ctx context.Context, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error) {
	return s.pivot(ctx, "decisions", groupID, period, codes)
}

func (s *SQLiteStore) pivot(ctx context.Context, table string, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error) {
	if len(codes) == 0 {
		return map[int]*model.TeamSnapshot{}, nil
	}

	query := `SELECT v.team_number, t.name, v.code, v.value
		FROM ` + table + ` v
		JOIN teams t ON t.group_id = v.group_id AND t.number = v.team_number
		WHERE v.group_id = ? AND v.period = ? AND v.code IN (` + placeholders(len(codes)) + `)
		ORDER BY v.team_number, v.code`

	args := make([]any, 0, len(codes)+2)
	args = append(args, groupID, period)
	for _, c := range codes {
		args = append(args, c)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: %s for group %d period %d", table, groupID, period)
	}
	defer rows.Close()

	snaps := make(map[int]*model.TeamSnapshot)
	for rows.Next() {
		var teamNumber int
		var teamName, code string
		var value float64
		if err := rows.Scan(&teamNumber, &teamName, &code, &value); err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s row", table)
		}
		snap, ok := snaps[teamNumber]
		if !ok {
			snap = &model.TeamSnapshot{
				TeamNumber: teamNumber,
				TeamName:   teamName,
				Variables:  make(map[string]float64),
			}
			snaps[teamNumber] = snap
		}
		snap.Variables[code] = value
	}
	return snaps, rows.Err()
}

// VariablesAllPeriods pivots the requested codes for every period 1..maxPeriod.
func (s *SQLiteStore) VariablesAllPeriods(ctx context.Context, groupID, maxPeriod int, codes []string) (map[int]map[int]*model.TeamSnapshot, error) {
	periods := make(map[int]map[int]*model.TeamSnapshot)
	if maxPeriod < 1 {
		return periods, nil
	}
	for p := 1; p <= maxPeriod; p++ {
		snaps, err := s.Variables(ctx, groupID, p, codes)
		if err != nil {
			return nil, err
		}
		if len(snaps) > 0 {
			periods[p] = snaps
		}
	}
	return periods, nil
}

// StrategyWeights returns each team's declared priority weights.
func (s *SQLiteStore) StrategyWeights(ctx context.Context, groupID int) (map[int]*model.TeamWeights, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT w.team_number, t.name, w.item_name, w.variable_code, w.weight
		 FROM strategy_weights w
		 JOIN teams t ON t.group_id = w.group_id AND t.number = w.team_number
		 WHERE w.group_id = ?
		 ORDER BY w.team_number, w.item_name`, groupID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: strategy weights for group %d", groupID)
	}
	defer rows.Close()

	weights := make(map[int]*model.TeamWeights)
	for rows.Next() {
		var teamNumber, weight int
		var teamName, itemName, variableCode string
		if err := rows.Scan(&teamNumber, &teamName, &itemName, &variableCode, &weight); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan strategy weight")
		}
		tw, ok := weights[teamNumber]
		if !ok {
			tw = &model.TeamWeights{TeamNumber: teamNumber, TeamName: teamName}
			weights[teamNumber] = tw
		}
		tw.Weights = append(tw.Weights, model.StrategyWeight{
			ItemName:     itemName,
			VariableCode: variableCode,
			Weight:       weight,
		})
	}
	return weights, rows.Err()
}

// GetGuide returns the freshest cached guide no older than maxAge, or nil.
func (s *SQLiteStore) GetGuide(ctx context.Context, groupID, period int, maxAge time.Duration) (*model.Guide, error) {
	cutoff := time.Now().Add(-maxAge)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, period, content, model, created_at
		 FROM tutor_guides
		 WHERE group_id = ? AND period = ? AND created_at > ?
		 ORDER BY created_at DESC LIMIT 1`, groupID, period, cutoff)

	var g model.Guide
	err := row.Scan(&g.ID, &g.GroupID, &g.Period, &g.Content, &g.Model, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get guide for group %d period %d", groupID, period)
	}
	return &g, nil
}

// SaveGuide stores a generated guide, assigning an ID when missing.
func (s *SQLiteStore) SaveGuide(ctx context.Context, guide *model.Guide) error {
	if guide.ID == "" {
		guide.ID = uuid.NewString()
	}
	if guide.CreatedAt.IsZero() {
		guide.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tutor_guides (id, group_id, period, content, model, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		guide.ID, guide.GroupID, guide.Period, guide.Content, guide.Model, guide.CreatedAt)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save guide for group %d period %d", guide.GroupID, guide.Period)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
