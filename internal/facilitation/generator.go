// Package facilitation generates class discussion guides from a period's
// analytics using the Anthropic API, with a per-(game, period) cache so
// repeated dashboard visits don't re-bill the tutor.
package facilitation

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
	"github.com/marispinelli3322/tutor-copilot/internal/store"
	"github.com/marispinelli3322/tutor-copilot/pkg/anthropic"
)

// Options configures guide generation.
type Options struct {
	Model     string
	MaxTokens int64
	CacheTTL  time.Duration
	// RatePerMinute caps generation calls to the API. Zero disables limiting.
	RatePerMinute int
}

// Generator produces facilitation guides.
type Generator struct {
	store    store.Store
	analyzer *report.Analyzer
	client   anthropic.Client
	opts     Options
	limiter  *rate.Limiter
}

// New creates a Generator.
func New(st store.Store, analyzer *report.Analyzer, client anthropic.Client, opts Options) *Generator {
	var limiter *rate.Limiter
	if opts.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), 1)
	}
	return &Generator{
		store:    st,
		analyzer: analyzer,
		client:   client,
		opts:     opts,
		limiter:  limiter,
	}
}

// Generate returns the facilitation guide for (groupID, period), serving a
// cached guide younger than the TTL unless refresh is set.
func (g *Generator) Generate(ctx context.Context, groupID, period int, refresh bool) (*model.Guide, error) {
	if !refresh {
		cached, err := g.store.GetGuide(ctx, groupID, period, g.opts.CacheTTL)
		if err != nil {
			return nil, eris.Wrap(err, "facilitation: read guide cache")
		}
		if cached != nil {
			zap.L().Debug("facilitation guide cache hit",
				zap.Int("group_id", groupID),
				zap.Int("period", period),
			)
			return cached, nil
		}
	}

	data, err := g.fetchData(ctx, groupID, period)
	if err != nil {
		return nil, err
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "facilitation: rate limit wait")
		}
	}

	prompt := BuildPrompt(*data)
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.opts.Model,
		MaxTokens: g.opts.MaxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "facilitation: generate guide")
	}
	resp.Usage.LogCost(g.opts.Model, "facilitation")

	guide := &model.Guide{
		GroupID:   groupID,
		Period:    period,
		Content:   resp.Text(),
		Model:     g.opts.Model,
		CreatedAt: time.Now(),
	}
	if err := g.store.SaveGuide(ctx, guide); err != nil {
		return nil, eris.Wrap(err, "facilitation: save guide")
	}

	zap.L().Info("facilitation guide generated",
		zap.Int("group_id", groupID),
		zap.Int("period", period),
		zap.String("model", g.opts.Model),
		zap.Int("content_bytes", len(guide.Content)),
	)
	return guide, nil
}

// fetchData loads the game, teams and the three prompt analytics in parallel.
func (g *Generator) fetchData(ctx context.Context, groupID, period int) (*PromptData, error) {
	data := &PromptData{Period: period}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		game, err := g.store.GameDetails(ctx, groupID)
		if err != nil {
			return err
		}
		if game == nil {
			return eris.Errorf("facilitation: game %d not found", groupID)
		}
		data.Game = game
		return nil
	})
	eg.Go(func() error {
		teams, err := g.store.Teams(ctx, groupID)
		data.Teams = teams
		return err
	})
	eg.Go(func() error {
		eff, err := g.analyzer.Efficiency(ctx, groupID, period)
		data.Efficiency = eff
		return err
	})
	eg.Go(func() error {
		prof, err := g.analyzer.Profitability(ctx, groupID, period)
		data.Profitability = prof
		return err
	})
	eg.Go(func() error {
		bench, err := g.analyzer.Benchmarking(ctx, groupID, period)
		data.Benchmarking = bench
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, eris.Wrap(err, "facilitation: fetch analytics")
	}
	return data, nil
}
