// Package planner turns a free-text travel query into per-source search
// parameters by prompting the model and extracting the JSON object from its
// reply.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tripagent/tripagent/internal/ollama"
	"github.com/tripagent/tripagent/internal/pkg/models"
)

// systemPrompt describes the exact schema the model must reply with. The
// EventbriteScraper block is what gates the scraped source downstream.
const systemPrompt = `Analyze this user request for an event and return only a JSON dictionary with the following parameters:

{
    "Ticketmaster": {
        "city": "mentioned city",
        "countryCode": "country code (IT for Italy, FR for France, ES for Spain, etc.)",
        "locale": "*",
        "classificationName": "event type (Music, Sports, Arts, Theatre, etc.)",
        "sort": "date,asc"
    },
    "EventbriteScraper": {
        "state": "mentioned state or region, e.g. france, italy, spain",
        "city": "mentioned city, e.g. paris, rome, madrid",
        "category": "event type or keyword, e.g. theatre or music"
    }
}

If no event type is specified, do not include classificationName.
If no city is specified, do not include city.
The format must be strictly respected so the request can be analyzed correctly.`

// ChatClient is the slice of the chat client the planner needs.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []ollama.Message, stream bool) (string, error)
}

type Planner struct {
	chat  ChatClient
	model string
}

func New(chat ChatClient, model string) *Planner {
	return &Planner{chat: chat, model: model}
}

// Plan derives SearchParameters from a user query. Every failure mode (chat
// unreachable, no JSON in the reply, malformed JSON) is returned to the
// caller: the pipeline must stop and report rather than guess parameters.
func (p *Planner) Plan(ctx context.Context, userQuery string) (models.SearchParameters, error) {
	reply, err := p.chat.Chat(ctx, p.model, []ollama.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userQuery},
	}, false)
	if err != nil {
		return models.SearchParameters{}, fmt.Errorf("plan query: %w", err)
	}

	raw, err := ExtractJSON(reply)
	if err != nil {
		return models.SearchParameters{}, err
	}

	var params models.SearchParameters
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return models.SearchParameters{}, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}

	slog.Info("Search parameters generated",
		"city", params.Ticketmaster.City,
		"classification", params.Ticketmaster.ClassificationName,
		"eventbrite", params.Eventbrite.Complete())

	return params, nil
}
