package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marispinelli3322/tutor-copilot/internal/facilitation"
	"github.com/marispinelli3322/tutor-copilot/internal/model"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
	"github.com/marispinelli3322/tutor-copilot/pkg/anthropic"
)

type stubStore struct {
	games     []model.Game
	game      *model.Game
	teams     []model.Team
	variables map[int]*model.TeamSnapshot
	guides    map[int]*model.Guide
}

func (s *stubStore) Games(context.Context) ([]model.Game, error)           { return s.games, nil }
func (s *stubStore) GameDetails(context.Context, int) (*model.Game, error) { return s.game, nil }
func (s *stubStore) Teams(context.Context, int) ([]model.Team, error)      { return s.teams, nil }

func (s *stubStore) Variables(context.Context, int, int, []string) (map[int]*model.TeamSnapshot, error) {
	return s.variables, nil
}

func (s *stubStore) VariablesAllPeriods(context.Context, int, int, []string) (map[int]map[int]*model.TeamSnapshot, error) {
	return map[int]map[int]*model.TeamSnapshot{1: s.variables}, nil
}

func (s *stubStore) Decisions(context.Context, int, int, []string) (map[int]*model.TeamSnapshot, error) {
	return s.variables, nil
}

func (s *stubStore) StrategyWeights(context.Context, int) (map[int]*model.TeamWeights, error) {
	return nil, nil
}

func (s *stubStore) GetGuide(_ context.Context, groupID, _ int, _ time.Duration) (*model.Guide, error) {
	return s.guides[groupID], nil
}

func (s *stubStore) SaveGuide(_ context.Context, g *model.Guide) error {
	if s.guides == nil {
		s.guides = make(map[int]*model.Guide)
	}
	s.guides[g.GroupID] = g
	return nil
}

func (s *stubStore) Migrate(context.Context) error { return nil }
func (s *stubStore) Close() error                  { return nil }

type fakeClient struct{}

func (fakeClient) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return &anthropic.MessageResponse{Content: []anthropic.ContentBlock{{Type: "text", Text: "guia"}}}, nil
}

func newTestServer(st *stubStore, withFacilitation bool) *httptest.Server {
	analyzer := report.New(st)
	var gen *facilitation.Generator
	if withFacilitation {
		gen = facilitation.New(st, analyzer, fakeClient{}, facilitation.Options{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 2000,
			CacheTTL:  time.Hour,
		})
	}
	return httptest.NewServer(New(st, analyzer, gen).Router())
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func post(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func defaultStore() *stubStore {
	return &stubStore{
		games: []model.Game{{ID: 10, Code: "HOSP-2026", LastProcessedPeriod: 3}},
		game:  &model.Game{ID: 10, Code: "HOSP-2026", SimulationName: "Jogo de Hospitais", LastProcessedPeriod: 3},
		teams: []model.Team{{ID: 1, Name: "Santa Casa", Number: 1, GroupID: 10}},
		variables: map[int]*model.TeamSnapshot{
			1: {TeamNumber: 1, TeamName: "Santa Casa", Variables: map[string]float64{
				"receitaLiquidaTotal":         9625,
				"resultadoOperacionalLiquido": 2180,
				"colocacaoRankingPeriodo":     1,
			}},
		},
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestGames(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/games")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var games []model.Game
	require.NoError(t, json.Unmarshal(body, &games))
	require.Len(t, games, 1)
	assert.Equal(t, "HOSP-2026", games[0].Code)
}

func TestGameDetails_NotFound(t *testing.T) {
	st := defaultStore()
	st.game = nil
	srv := newTestServer(st, false)
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/api/games/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGameDetails_BadID(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/games/abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "groupID must be a positive integer")
}

func TestReport_Benchmarking(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/games/10/reports/benchmarking?period=3")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []report.BenchmarkRow
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Santa Casa", rows[0].Team)
	assert.InDelta(t, 22.65, rows[0].OperatingMargin, 0.01)
}

func TestReport_UnknownModule(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/games/10/reports/nonsense?period=3")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "unknown report module")
}

func TestReport_MissingPeriod(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/games/10/reports/efficiency")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "period must be a positive integer")
}

func TestReport_AllModulesRespond(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	for _, module := range ModuleNames() {
		resp, _ := get(t, srv.URL+"/api/games/10/reports/"+module+"?period=3")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "module %s", module)
	}
}

func TestFacilitation(t *testing.T) {
	srv := newTestServer(defaultStore(), true)
	defer srv.Close()

	resp, body := post(t, srv.URL+"/api/games/10/facilitation?period=3")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var guide model.Guide
	require.NoError(t, json.Unmarshal(body, &guide))
	assert.Equal(t, "guia", guide.Content)
	assert.Equal(t, 3, guide.Period)
}

func TestFacilitation_NotConfigured(t *testing.T) {
	srv := newTestServer(defaultStore(), false)
	defer srv.Close()

	resp, body := post(t, srv.URL+"/api/games/10/facilitation?period=3")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "not configured")
}
