// Package composer asks the model to turn merged search results into a
// ranked, user-facing recommendation.
package composer

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripagent/tripagent/internal/ollama"
)

const systemPersona = "You are a travel agent who generates a list of events to help plan a trip. " +
	"From a list of events, you must give the top 3 activities and the top 3 events that match the user's request."

// userTemplate is filled with the serialized result text and the original
// query. The format is requested through the prompt only; the reply is best
// effort text and is never validated programmatically.
const userTemplate = `Here is the retrieved information: {content}

Here is the user's request: {user_query}

I want you to respect the following format for the events:

1. Event: event name
   Date: event date
   Venue: event venue
   Description: excerpt of the event description
   Ticket link: link to the ticket office
   Price: event price

It is essential to propose the top 3 events per source that match the user's request, with different dates for each event and within the requested date window. Propose events on different dates based on the retrieved information.`

// ChatClient is the slice of the chat client the composer needs.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []ollama.Message, stream bool) (string, error)
}

type Composer struct {
	chat  ChatClient
	model string
}

func New(chat ChatClient, model string) *Composer {
	return &Composer{chat: chat, model: model}
}

// Compose builds the recommendation prompt from the artifact text and the
// original query and streams the model's answer.
func (c *Composer) Compose(ctx context.Context, userQuery, content string) (string, error) {
	userMessage := FillTemplate(userTemplate, content, userQuery)

	reply, err := c.chat.Chat(ctx, c.model, []ollama.Message{
		{Role: "system", Content: systemPersona},
		{Role: "user", Content: userMessage},
	}, true)
	if err != nil {
		return "", fmt.Errorf("compose recommendation: %w", err)
	}

	return reply, nil
}

// FillTemplate substitutes the {content} and {user_query} slots of a prompt
// template.
func FillTemplate(template, content, userQuery string) string {
	out := strings.ReplaceAll(template, "{content}", content)
	return strings.ReplaceAll(out, "{user_query}", userQuery)
}
