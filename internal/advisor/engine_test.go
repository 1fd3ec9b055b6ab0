package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/glow-labs/glowbot/internal/conversation"
	"github.com/glow-labs/glowbot/internal/linkify"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestEngine(t *testing.T, llm *fakeLLM) *Engine {
	t.Helper()
	store := conversation.NewStore(t.TempDir(), zerolog.Nop())
	return New(store, llm, linkify.ProductTable{
		"Revitalift Filler": "https://example.com/filler",
	}, zerolog.Nop())
}

func TestSendNameCaptureSkipsModelCall(t *testing.T) {
	llm := &fakeLLM{reply: "hello"}
	e := newTestEngine(t, llm)

	reply := e.Send(context.Background(), "My name is Ada")

	if llm.calls != 0 {
		t.Fatalf("name capture must not hit the model, got %d calls", llm.calls)
	}
	if !strings.Contains(reply, "Ada") {
		t.Errorf("expected acknowledgment with the name, got %q", reply)
	}
	if e.State().Name != "Ada" {
		t.Errorf("expected captured name, got %q", e.State().Name)
	}
}

func TestSendSkipPhraseSkipsModelCall(t *testing.T) {
	llm := &fakeLLM{reply: "hello"}
	e := newTestEngine(t, llm)

	e.Send(context.Background(), "no thanks")

	if llm.calls != 0 {
		t.Fatalf("skip phrase must not hit the model, got %d calls", llm.calls)
	}
	if e.State().Name != "" {
		t.Errorf("skip must not capture a name, got %q", e.State().Name)
	}
	if e.State().AwaitingName {
		t.Error("skip should end the awaiting-name state")
	}
}

func TestSendForwardsAndAutoLinks(t *testing.T) {
	llm := &fakeLLM{reply: "Try Revitalift Filler for that."}
	e := newTestEngine(t, llm)
	e.Send(context.Background(), "skip")

	reply := e.Send(context.Background(), "what helps with fine lines?")

	if llm.calls != 1 {
		t.Fatalf("expected one model call, got %d", llm.calls)
	}
	want := "Try [Revitalift Filler](https://example.com/filler) for that."
	if reply != want {
		t.Errorf("expected auto-linked reply\n got: %q\nwant: %q", reply, want)
	}

	turns := e.State().Turns
	if turns[len(turns)-1].Content != want {
		t.Error("auto-linked reply should be what gets stored")
	}
}

func TestSendUpstreamFailureYieldsRetryMessage(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}
	e := newTestEngine(t, llm)
	e.Send(context.Background(), "skip")
	before := len(e.State().Turns)

	reply := e.Send(context.Background(), "best spf?")

	if reply != RetryMessage {
		t.Errorf("expected canned retry message, got %q", reply)
	}
	// The failed reply is not recorded; only the user turn is.
	if got := len(e.State().Turns); got != before+1 {
		t.Errorf("expected %d turns after failure, got %d", before+1, got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	llm := &fakeLLM{reply: "hi"}
	e := newTestEngine(t, llm)
	e.Send(context.Background(), "Ada")
	e.Send(context.Background(), "hello there?")

	greeting := e.Reset()

	if greeting != conversation.Greeting {
		t.Errorf("reset should return the ask-for-name greeting")
	}
	if e.State().Name != "" {
		t.Errorf("expected name cleared, got %q", e.State().Name)
	}
	if len(e.State().Turns) != 1 {
		t.Errorf("expected only the greeting turn, got %d", len(e.State().Turns))
	}
}

func TestEnginePersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	store := conversation.NewStore(dir, zerolog.Nop())
	llm := &fakeLLM{reply: "hi"}

	e := New(store, llm, nil, zerolog.Nop())
	e.Send(context.Background(), "Ada")

	restarted := New(conversation.NewStore(dir, zerolog.Nop()), llm, nil, zerolog.Nop())
	if restarted.State().Name != "Ada" {
		t.Errorf("expected rehydrated name, got %q", restarted.State().Name)
	}
	if len(restarted.State().Turns) < 3 {
		t.Errorf("expected rehydrated turns, got %d", len(restarted.State().Turns))
	}
}
