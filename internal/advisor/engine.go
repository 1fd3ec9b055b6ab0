// Package advisor drives one conversation with the product-advice
// assistant: name capture, history trimming, the upstream call and
// product auto-linking, with every turn persisted along the way.
package advisor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/glow-labs/glowbot/internal/conversation"
	"github.com/glow-labs/glowbot/internal/linkify"
)

// Completer is the upstream chat API as the engine sees it.
type Completer interface {
	Complete(ctx context.Context, turns []conversation.Turn) (string, error)
}

// Engine owns the conversation state for one user and runs each
// submission through the full pipeline. It is single-threaded by
// design: the caller sends one message at a time and waits.
type Engine struct {
	state    *conversation.State
	store    *conversation.Store
	llm      Completer
	products linkify.ProductTable
	logger   zerolog.Logger
}

// New creates an engine, rehydrating any persisted conversation.
func New(store *conversation.Store, llm Completer, products linkify.ProductTable, logger zerolog.Logger) *Engine {
	return &Engine{
		state:    store.Load(),
		store:    store,
		llm:      llm,
		products: products,
		logger:   logger,
	}
}

// State exposes the current conversation for display.
func (e *Engine) State() *conversation.State {
	return e.state
}

// Send runs one user message through the pipeline and returns the
// assistant's reply. Name-capture turns are answered locally without a
// model call. Upstream failures are converted into the canned retry
// message; the user never sees a raw error or partial output.
func (e *Engine) Send(ctx context.Context, text string) string {
	e.state.Append(conversation.Turn{Role: conversation.RoleUser, Content: text})

	decision := e.state.Interpret(text)
	if !decision.Forward {
		e.state.Append(conversation.Turn{Role: conversation.RoleAssistant, Content: decision.Reply})
		e.store.Save(e.state)
		return decision.Reply
	}
	e.store.Save(e.state)

	reply, err := e.llm.Complete(ctx, e.state.RecentForAPI(SystemPrompt))
	if err != nil {
		e.logger.Error().Err(err).Msg("upstream chat call failed")
		return RetryMessage
	}

	reply = linkify.AutoLink(reply, e.products)

	e.state.Append(conversation.Turn{Role: conversation.RoleAssistant, Content: reply})
	e.store.Save(e.state)
	return reply
}

// Reset clears the turn log and the captured name together and returns
// the fresh greeting, which always asks for a name again.
func (e *Engine) Reset() string {
	e.state.Reset()
	e.store.Save(e.state)
	return conversation.Greeting
}
