package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/db"
	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// PostgresStore implements Store against the simulation database using
// pgxpool. The simulator's tables (grupo_industrial, empresa,
// variavel_empresarial, ...) are read-only from our side; Migrate only
// creates the tutor_guides cache table.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(5)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const guidesMigration = `
CREATE TABLE IF NOT EXISTS tutor_guides (
	id         TEXT PRIMARY KEY,
	group_id   INTEGER NOT NULL,
	period     INTEGER NOT NULL,
	content    TEXT NOT NULL,
	model      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tutor_guides_group_period
	ON tutor_guides(group_id, period, created_at DESC);
`

// Migrate creates the guide cache table. The simulator schema is owned by the
// simulator and never touched.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, guidesMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate tutor_guides")
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

const gamesQuery = `
SELECT gi.id, gi.codigo, gi.ultimo_periodo_processado, gi.num_empresas,
       gi.jogo_id, j.nome AS jogo_nome, u.nome AS professor
FROM grupo_industrial gi
JOIN jogo j ON gi.jogo_id = j.id
LEFT JOIN arbitro a ON a.grupo_id = gi.id
LEFT JOIN usuario u ON a.usuario_id = u.id
WHERE gi.ultimo_periodo_processado > 0
  AND j.nome ILIKE '%hospit%'
ORDER BY gi.id DESC`

// Games lists processed hospital games, grouping professors per game.
func (s *PostgresStore) Games(ctx context.Context) ([]model.Game, error) {
	rows, err := s.pool.Query(ctx, gamesQuery)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list games")
	}
	defer rows.Close()

	var order []int
	byID := make(map[int]*model.Game)
	for rows.Next() {
		var g model.Game
		var professor *string
		if err := rows.Scan(&g.ID, &g.Code, &g.LastProcessedPeriod, &g.TeamCount, &g.SimulationID, &g.SimulationName, &professor); err != nil {
			return nil, eris.Wrap(err, "postgres: scan game")
		}
		g.Name = g.Code
		existing, ok := byID[g.ID]
		if !ok {
			existing = &g
			byID[g.ID] = existing
			order = append(order, g.ID)
		}
		if professor != nil && !contains(existing.Professors, *professor) {
			existing.Professors = append(existing.Professors, *professor)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list games")
	}

	games := make([]model.Game, 0, len(order))
	for _, id := range order {
		games = append(games, *byID[id])
	}
	return games, nil
}

const gameDetailsQuery = `
SELECT gi.id, gi.codigo, gi.ultimo_periodo_processado, gi.num_empresas,
       gi.jogo_id, j.nome AS jogo_nome,
       string_agg(DISTINCT u.nome, ', ') AS professor
FROM grupo_industrial gi
JOIN jogo j ON gi.jogo_id = j.id
LEFT JOIN arbitro a ON a.grupo_id = gi.id
LEFT JOIN usuario u ON a.usuario_id = u.id
WHERE gi.id = $1
GROUP BY gi.id, gi.codigo, gi.ultimo_periodo_processado, gi.num_empresas, gi.jogo_id, j.nome`

// GameDetails returns one game, or nil when it does not exist.
func (s *PostgresStore) GameDetails(ctx context.Context, groupID int) (*model.Game, error) {
	var g model.Game
	var professor *string
	err := s.pool.QueryRow(ctx, gameDetailsQuery, groupID).Scan(
		&g.ID, &g.Code, &g.LastProcessedPeriod, &g.TeamCount, &g.SimulationID, &g.SimulationName, &professor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: game %d", groupID)
	}
	g.Name = g.Code
	if professor != nil {
		g.Professors = []string{*professor}
	}
	return &g, nil
}

const teamsQuery = `
SELECT e.id, e.nome, e.numero, e.grupo_id
FROM empresa e
WHERE e.grupo_id = $1
ORDER BY e.numero`

// Teams lists the teams of a game ordered by team number.
func (s *PostgresStore) Teams(ctx context.Context, groupID int) ([]model.Team, error) {
	rows, err := s.pool.Query(ctx, teamsQuery, groupID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: teams for group %d", groupID)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Number, &t.GroupID); err != nil {
			return nil, eris.Wrap(err, "postgres: scan team")
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "postgres: teams for group %d", groupID)
	}
	return teams, nil
}

const variablesQuery = `
SELECT e.numero AS team_number, e.nome AS team_name, ve.codigo, ve.valor
FROM variavel_empresarial ve
JOIN empresa e ON ve.empresa_id = e.id
WHERE e.grupo_id = $1
  AND ve.periodo = $2
  AND ve.codigo = ANY($3)
ORDER BY e.numero, ve.codigo`

// Variables pivots the requested EAV codes into one snapshot per team.
func (s *PostgresStore) Variables(ctx context.Context, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error) {
	if len(codes) == 0 {
		return map[int]*model.TeamSnapshot{}, nil
	}

	rows, err := s.pool.Query(ctx, variablesQuery, groupID, period, codes)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: variables for group %d period %d", groupID, period)
	}
	defer rows.Close()

	snaps := make(map[int]*model.TeamSnapshot)
	for rows.Next() {
		var teamNumber int
		var teamName, code string
		var value float64
		if err := rows.Scan(&teamNumber, &teamName, &code, &value); err != nil {
			return nil, eris.Wrap(err, "postgres: scan variable")
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
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "postgres: variables for group %d period %d", groupID, period)
	}
	return snaps, nil
}

const variablesAllPeriodsQuery = `
SELECT ve.periodo, e.numero AS team_number, e.nome AS team_name, ve.codigo, ve.valor
FROM variavel_empresarial ve
JOIN empresa e ON ve.empresa_id = e.id
WHERE e.grupo_id = $1
  AND ve.periodo BETWEEN 1 AND $2
  AND ve.codigo = ANY($3)
ORDER BY ve.periodo, e.numero, ve.codigo`

// VariablesAllPeriods pivots the requested codes for every period 1..maxPeriod.
func (s *PostgresStore) VariablesAllPeriods(ctx context.Context, groupID, maxPeriod int, codes []string) (map[int]map[int]*model.TeamSnapshot, error) {
	if len(codes) == 0 || maxPeriod < 1 {
		return map[int]map[int]*model.TeamSnapshot{}, nil
	}

	rows, err := s.pool.Query(ctx, variablesAllPeriodsQuery, groupID, maxPeriod, codes)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: variables for group %d periods 1..%d", groupID, maxPeriod)
	}
	defer rows.Close()

	periods := make(map[int]map[int]*model.TeamSnapshot)
	for rows.Next() {
		var period, teamNumber int
		var teamName, code string
		var value float64
		if err := rows.Scan(&period, &teamNumber, &teamName, &code, &value); err != nil {
			return nil, eris.Wrap(err, "postgres: scan variable")
		}
		snaps, ok := periods[period]
		if !ok {
			snaps = make(map[int]*model.TeamSnapshot)
			periods[period] = snaps
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
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "postgres: variables for group %d periods 1..%d", groupID, maxPeriod)
	}
	return periods, nil
}

const decisionsQuery = `
SELECT e.numero AS team_number, e.nome AS team_name, id.codigo, id.valor
FROM item_decisao id
JOIN decisao d ON id.decisao_id = d.id
JOIN empresa e ON d.empresa_id = e.id
WHERE e.grupo_id = $1
  AND id.periodo = $2
  AND id.codigo = ANY($3)
ORDER BY e.numero, id.codigo`

// Decisions pivots the requested decision-item codes into one snapshot per
// team. Same shape as Variables but sourced from the decision table.
func (s *PostgresStore) Decisions(ctx context.Context, groupID, period int, codes []string) (map[int]*model.TeamSnapshot, error) {
	if len(codes) == 0 {
		return map[int]*model.TeamSnapshot{}, nil
	}

	rows, err := s.pool.Query(ctx, decisionsQuery, groupID, period, codes)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: decisions for group %d period %d", groupID, period)
	}
	defer rows.Close()

	snaps := make(map[int]*model.TeamSnapshot)
	for rows.Next() {
		var teamNumber int
		var teamName, code string
		var value float64
		if err := rows.Scan(&teamNumber, &teamName, &code, &value); err != nil {
			return nil, eris.Wrap(err, "postgres: scan decision")
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
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "postgres: decisions for group %d period %d", groupID, period)
	}
	return snaps, nil
}

const strategyWeightsQuery = `
SELECT e.numero AS team_number, e.nome AS team_name,
       ie.nome AS item_name, COALESCE(ie.codigo, '') AS variable_code, pe.peso
FROM peso_item_estrategia pe
JOIN estrategia es ON pe.estrategia_id = es.id
JOIN empresa e ON es.empresa_id = e.id
JOIN item_estrategia ie ON pe.item_estrategia_id = ie.id
WHERE e.grupo_id = $1
ORDER BY e.numero, pe.item_estrategia_id`

// StrategyWeights returns each team's declared priority weights.
func (s *PostgresStore) StrategyWeights(ctx context.Context, groupID int) (map[int]*model.TeamWeights, error) {
	rows, err := s.pool.Query(ctx, strategyWeightsQuery, groupID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: strategy weights for group %d", groupID)
	}
	defer rows.Close()

	weights := make(map[int]*model.TeamWeights)
	for rows.Next() {
		var teamNumber int
		var teamName, itemName, variableCode string
		var weight float64
		if err := rows.Scan(&teamNumber, &teamName, &itemName, &variableCode, &weight); err != nil {
			return nil, eris.Wrap(err, "postgres: scan strategy weight")
		}
		tw, ok := weights[teamNumber]
		if !ok {
			tw = &model.TeamWeights{TeamNumber: teamNumber, TeamName: teamName}
			weights[teamNumber] = tw
		}
		tw.Weights = append(tw.Weights, model.StrategyWeight{
			ItemName:     itemName,
			VariableCode: variableCode,
			Weight:       int(weight),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "postgres: strategy weights for group %d", groupID)
	}
	return weights, nil
}

const getGuideQuery = `
SELECT id, group_id, period, content, model, created_at
FROM tutor_guides
WHERE group_id = $1 AND period = $2 AND created_at > $3
ORDER BY created_at DESC
LIMIT 1`

// GetGuide returns the freshest cached guide no older than maxAge, or nil.
func (s *PostgresStore) GetGuide(ctx context.Context, groupID, period int, maxAge time.Duration) (*model.Guide, error) {
	cutoff := time.Now().Add(-maxAge)
	var g model.Guide
	err := s.pool.QueryRow(ctx, getGuideQuery, groupID, period, cutoff).Scan(
		&g.ID, &g.GroupID, &g.Period, &g.Content, &g.Model, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get guide for group %d period %d", groupID, period)
	}
	return &g, nil
}

const insertGuideQuery = `
INSERT INTO tutor_guides (id, group_id, period, content, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// SaveGuide stores a generated guide, assigning an ID when missing.
func (s *PostgresStore) SaveGuide(ctx context.Context, guide *model.Guide) error {
	if guide.ID == "" {
		guide.ID = uuid.NewString()
	}
	if guide.CreatedAt.IsZero() {
		guide.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, insertGuideQuery,
		guide.ID, guide.GroupID, guide.Period, guide.Content, guide.Model, guide.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save guide for group %d period %d", guide.GroupID, guide.Period)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
