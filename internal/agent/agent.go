// Package agent wires the full query pipeline: plan the search, fan out to
// both sources, persist the artifact, compose the recommendation.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tripagent/tripagent/internal/composer"
	"github.com/tripagent/tripagent/internal/ollama"
	"github.com/tripagent/tripagent/internal/pkg/config"
	"github.com/tripagent/tripagent/internal/pkg/export"
	"github.com/tripagent/tripagent/internal/pkg/models"
	"github.com/tripagent/tripagent/internal/planner"
	"github.com/tripagent/tripagent/internal/search"
	"github.com/tripagent/tripagent/internal/sources/eventbrite"
	"github.com/tripagent/tripagent/internal/sources/ticketmaster"
)

// Result is everything one query produced. Nothing is retained across
// queries except the overwritten artifact file.
type Result struct {
	Params         models.SearchParameters
	Results        models.SearchResultSet
	Recommendation string
}

type Agent struct {
	planner      *planner.Planner
	orchestrator *search.Orchestrator
	composer     *composer.Composer
	writer       *export.Writer
}

func New(cfg *config.Config) *Agent {
	chat := ollama.NewClient(&cfg.Ollama)
	writer := export.NewWriter(cfg.Output.File)

	return &Agent{
		planner: planner.New(chat, cfg.Ollama.PlannerModel),
		orchestrator: search.NewOrchestrator(
			ticketmaster.NewClient(&cfg.Ticketmaster),
			eventbrite.NewScraper(&cfg.Eventbrite),
			writer,
			cfg.Eventbrite.FetchDetails,
		),
		composer: composer.New(chat, cfg.Ollama.ComposerModel),
		writer:   writer,
	}
}

// HandleQuery runs one user query end to end. Planning failures abort the
// query; source failures degrade to partial results; only the composer call
// can fail after that point. A failed query never takes the process down.
func (a *Agent) HandleQuery(ctx context.Context, userQuery string) (*Result, error) {
	params, err := a.planner.Plan(ctx, userQuery)
	if err != nil {
		return nil, fmt.Errorf("unable to generate search parameters: %w", err)
	}

	results, err := a.orchestrator.Run(ctx, params)
	if err != nil {
		// The artifact is a convenience dump; losing it degrades, not aborts.
		slog.Warn("Failed to persist search results", "error", err)
	}

	content, err := a.writer.Read()
	if err != nil {
		content = export.Render(results)
	}

	recommendation, err := a.composer.Compose(ctx, userQuery, content)
	if err != nil {
		return nil, fmt.Errorf("unable to generate recommendations: %w", err)
	}

	return &Result{
		Params:         params,
		Results:        results,
		Recommendation: recommendation,
	}, nil
}
