package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

const demoFixture = `
games:
  - id: 42
    code: HOSP-2026
    last_period: 3
    simulation_id: 7
    simulation_name: Hospitalar
    professor: Ana Souza
    teams:
      - {number: 1, name: Santa Casa}
      - {number: 2, name: Vida Plena}
    variables:
      - {team: 1, period: 3, code: receitaLiquidaTotal, value: 9625}
      - {team: 1, period: 3, code: valor_acao, value: 12.5}
      - {team: 2, period: 3, code: receitaLiquidaTotal, value: 8100}
      - {team: 1, period: 2, code: valor_acao, value: 10}
    decisions:
      - {team: 1, period: 3, code: fdreceitapa, value: 120}
    strategy_weights:
      - {team: 1, item: Lucro, code: lucroLiquido, weight: 3}
      - {team: 1, item: Governança, code: governancaCorporativa, weight: 1}
`

func newFixtureStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := NewSQLite(filepath.Join(t.TempDir(), "demo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Migrate(ctx))

	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoFixture), 0o644))
	require.NoError(t, st.LoadFixture(ctx, path))
	return st
}

func TestSQLiteFixtureRoundTrip(t *testing.T) {
	st := newFixtureStore(t)
	ctx := context.Background()

	games, err := st.Games(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "HOSP-2026", games[0].Name)
	assert.Equal(t, 3, games[0].LastProcessedPeriod)
	assert.Equal(t, 2, games[0].TeamCount)
	assert.Equal(t, []string{"Ana Souza"}, games[0].Professors)

	game, err := st.GameDetails(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "Hospitalar", game.SimulationName)

	missing, err := st.GameDetails(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	teams, err := st.Teams(ctx, 42)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Santa Casa", teams[0].Name)
	assert.Equal(t, 2, teams[1].Number)
}

func TestSQLiteVariablesPivot(t *testing.T) {
	st := newFixtureStore(t)
	ctx := context.Background()

	snaps, err := st.Variables(ctx, 42, 3, []string{"receitaLiquidaTotal", "valor_acao"})
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "Santa Casa", snaps[1].TeamName)
	assert.Equal(t, 9625.0, snaps[1].Value("receitaLiquidaTotal"))
	assert.Equal(t, 12.5, snaps[1].Value("valor_acao"))
	assert.Equal(t, 0.0, snaps[2].Value("valor_acao"))

	empty, err := st.Variables(ctx, 42, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteDecisionsPivot(t *testing.T) {
	st := newFixtureStore(t)

	snaps, err := st.Decisions(context.Background(), 42, 3, []string{"fdreceitapa"})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 120.0, snaps[1].Value("fdreceitapa"))
}

func TestSQLiteVariablesAllPeriods(t *testing.T) {
	st := newFixtureStore(t)

	periods, err := st.VariablesAllPeriods(context.Background(), 42, 3, []string{"valor_acao"})
	require.NoError(t, err)
	require.Len(t, periods, 2) // period 1 has no data
	assert.Equal(t, 10.0, periods[2][1].Value("valor_acao"))
	assert.Equal(t, 12.5, periods[3][1].Value("valor_acao"))
}

func TestSQLiteStrategyWeights(t *testing.T) {
	st := newFixtureStore(t)

	weights, err := st.StrategyWeights(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, weights, 1)
	require.Len(t, weights[1].Weights, 2)
	assert.Equal(t, "Santa Casa", weights[1].TeamName)
}

func TestSQLiteGuideCache(t *testing.T) {
	st := newFixtureStore(t)
	ctx := context.Background()

	guide := &model.Guide{GroupID: 42, Period: 3, Content: "guia", Model: "claude-sonnet-4-5-20250929"}
	require.NoError(t, st.SaveGuide(ctx, guide))
	assert.NotEmpty(t, guide.ID)

	got, err := st.GetGuide(ctx, 42, 3, 24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, guide.ID, got.ID)
	assert.Equal(t, "guia", got.Content)

	stale, err := st.GetGuide(ctx, 42, 3, -time.Second)
	require.NoError(t, err)
	assert.Nil(t, stale)

	other, err := st.GetGuide(ctx, 42, 4, 24*time.Hour)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSQLiteFixtureReloadIdempotent(t *testing.T) {
	st := newFixtureStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoFixture), 0o644))
	require.NoError(t, st.LoadFixture(ctx, path))

	games, err := st.Games(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	teams, err := st.Teams(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}
