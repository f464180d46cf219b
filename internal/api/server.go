// Package api exposes the reports and facilitation guides over HTTP for the
// tutor dashboard frontend.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/marispinelli3322/tutor-copilot/internal/facilitation"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
	"github.com/marispinelli3322/tutor-copilot/internal/store"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	store     store.Store
	analyzer  *report.Analyzer
	generator *facilitation.Generator
}

// New creates a Server. generator may be nil when no Anthropic key is
// configured; the facilitation endpoint then returns 503.
func New(st store.Store, analyzer *report.Analyzer, generator *facilitation.Generator) *Server {
	return &Server{store: st, analyzer: analyzer, generator: generator}
}

// Router builds the chi handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", s.handleGames)
		r.Route("/{groupID}", func(r chi.Router) {
			r.Get("/", s.handleGameDetails)
			r.Get("/teams", s.handleTeams)
			r.Get("/reports/{module}", s.handleReport)
			r.Post("/facilitation", s.handleFacilitation)
		})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.Games(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleGameDetails(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathInt(w, r, "groupID")
	if !ok {
		return
	}

	game, err := s.store.GameDetails(r.Context(), groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if game == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathInt(w, r, "groupID")
	if !ok {
		return
	}

	teams, err := s.store.Teams(r.Context(), groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// reportModules dispatches a module name to its analyzer. The period
// parameter is the max period for timeseries and the report period for
// everything else.
var reportModules = map[string]func(*report.Analyzer, context.Context, int, int) (any, error){
	"efficiency": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Efficiency(ctx, g, p)
	},
	"profitability": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Profitability(ctx, g, p)
	},
	"benchmarking": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Benchmarking(ctx, g, p)
	},
	"timeseries": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Timeseries(ctx, g, p)
	},
	"financial-risk": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.FinancialRisk(ctx, g, p)
	},
	"governance": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Governance(ctx, g, p)
	},
	"strategy": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.StrategyAlignment(ctx, g, p)
	},
	"pricing": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Pricing(ctx, g, p)
	},
	"quality": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.Quality(ctx, g, p)
	},
	"lost-revenue": func(a *report.Analyzer, ctx context.Context, g, p int) (any, error) {
		return a.LostRevenue(ctx, g, p)
	},
}

// ModuleNames lists the valid report module identifiers, sorted.
func ModuleNames() []string {
	names := make([]string, 0, len(reportModules))
	for name := range reportModules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunModule executes one report module by name. period is the max period for
// the timeseries module and the report period for everything else.
func RunModule(ctx context.Context, analyzer *report.Analyzer, module string, groupID, period int) (any, error) {
	run, ok := reportModules[module]
	if !ok {
		return nil, eris.Errorf("unknown report module %q", module)
	}
	return run(analyzer, ctx, groupID, period)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathInt(w, r, "groupID")
	if !ok {
		return
	}
	period, ok := queryInt(w, r, "period")
	if !ok {
		return
	}

	module := chi.URLParam(r, "module")
	run, ok := reportModules[module]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown report module " + module})
		return
	}

	out, err := run(s.analyzer, r.Context(), groupID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFacilitation(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "facilitation is not configured"})
		return
	}

	groupID, ok := pathInt(w, r, "groupID")
	if !ok {
		return
	}
	period, ok := queryInt(w, r, "period")
	if !ok {
		return
	}
	refresh := r.URL.Query().Get("refresh") == "1"

	guide, err := s.generator.Generate(r.Context(), groupID, period, refresh)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, guide)
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": name + " must be a positive integer"})
		return 0, false
	}
	return v, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": name + " must be a positive integer"})
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
