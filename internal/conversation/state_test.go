package conversation

import (
	"fmt"
	"strings"
	"testing"
)

const testPrompt = "You are a product-advice assistant."

func TestNewStateSeedsGreeting(t *testing.T) {
	s := NewState()

	if len(s.Turns) != 1 {
		t.Fatalf("expected 1 seeded turn, got %d", len(s.Turns))
	}
	if s.Turns[0].Role != RoleAssistant {
		t.Errorf("expected assistant greeting, got role %q", s.Turns[0].Role)
	}
	if !s.AwaitingName {
		t.Error("fresh conversation should be awaiting a name")
	}
	if s.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestRecentForAPIStartsWithSystemPrompt(t *testing.T) {
	s := NewState()
	for i := 0; i < 5; i++ {
		s.Append(Turn{Role: RoleUser, Content: fmt.Sprintf("question %d", i)})
	}

	msgs := s.RecentForAPI(testPrompt)
	if msgs[0].Role != RoleSystem || msgs[0].Content != testPrompt {
		t.Fatalf("first message must be the fixed system prompt, got %+v", msgs[0])
	}
}

func TestRecentForAPITrimsToLimit(t *testing.T) {
	s := NewState()
	for i := 0; i < 40; i++ {
		s.Append(Turn{Role: RoleUser, Content: fmt.Sprintf("question %d", i)})
	}

	msgs := s.RecentForAPI(testPrompt)
	if len(msgs) != MaxHistoryMessages+1 {
		t.Fatalf("expected %d messages, got %d", MaxHistoryMessages+1, len(msgs))
	}

	// Oldest-first: the last outbound turn is the most recent one.
	if got := msgs[len(msgs)-1].Content; got != "question 39" {
		t.Errorf("expected most recent turn last, got %q", got)
	}

	// Trimming must not touch the stored log.
	if len(s.Turns) != 41 {
		t.Errorf("stored log was mutated: %d turns", len(s.Turns))
	}
}

func TestRecentForAPIIncludesNameSystemTurn(t *testing.T) {
	s := NewState()
	s.Name = "Ada"
	s.AwaitingName = false
	for i := 0; i < 40; i++ {
		s.Append(Turn{Role: RoleUser, Content: "q"})
	}

	msgs := s.RecentForAPI(testPrompt)
	if len(msgs) != MaxHistoryMessages+2 {
		t.Fatalf("expected %d messages, got %d", MaxHistoryMessages+2, len(msgs))
	}
	if msgs[1].Role != RoleSystem || !strings.Contains(msgs[1].Content, "Ada") {
		t.Errorf("second message should carry the captured name, got %+v", msgs[1])
	}
}

func TestInterpretCapturesDeclarativeName(t *testing.T) {
	s := NewState()

	d := s.Interpret("My name is Ada")
	if d.Forward {
		t.Error("name statement must not be forwarded to the model")
	}
	if s.Name != "Ada" {
		t.Errorf("expected captured name %q, got %q", "Ada", s.Name)
	}
	if s.AwaitingName {
		t.Error("expected transition out of awaiting-name")
	}
	if !strings.Contains(d.Reply, "Ada") {
		t.Errorf("expected acknowledgment naming the user, got %q", d.Reply)
	}
}

func TestInterpretSkipPhrase(t *testing.T) {
	for _, phrase := range []string{"skip", "no", "No Thanks", "no thank you"} {
		s := NewState()

		d := s.Interpret(phrase)
		if d.Forward {
			t.Errorf("%q must not be forwarded", phrase)
		}
		if s.Name != "" {
			t.Errorf("%q must not capture a name, got %q", phrase, s.Name)
		}
		if s.AwaitingName {
			t.Errorf("%q should end the awaiting-name state", phrase)
		}
	}
}

func TestInterpretShortMessageTakenVerbatim(t *testing.T) {
	s := NewState()

	d := s.Interpret("Ada Lovelace")
	if d.Forward {
		t.Error("short reply while awaiting a name must not be forwarded")
	}
	if s.Name != "Ada Lovelace" {
		t.Errorf("expected verbatim name, got %q", s.Name)
	}
}

func TestInterpretLongMessageForwardedWhileAwaiting(t *testing.T) {
	s := NewState()

	d := s.Interpret("what serum should I use for very dry skin in winter")
	if !d.Forward {
		t.Error("a longer first message should be forwarded as a real question")
	}
	if s.Name != "" {
		t.Errorf("no name should be captured, got %q", s.Name)
	}
	if s.AwaitingName {
		t.Error("awaiting-name should end either way")
	}
}

func TestInterpretNameUpdateInNormalState(t *testing.T) {
	s := NewState()
	s.Interpret("Ada")

	d := s.Interpret("I'm Grace")
	if d.Forward {
		t.Error("name update must not be forwarded")
	}
	if s.Name != "Grace" {
		t.Errorf("expected updated name, got %q", s.Name)
	}
}

func TestInterpretNormalMessageForwarded(t *testing.T) {
	s := NewState()
	s.Interpret("skip")

	d := s.Interpret("best spf for oily skin?")
	if !d.Forward {
		t.Error("regular messages must be forwarded")
	}
}

func TestInterpretTruncatesLongNames(t *testing.T) {
	s := NewState()

	long := strings.Repeat("a", 80)
	s.Interpret("my name is " + long)
	if len([]rune(s.Name)) != MaxNameLength {
		t.Errorf("expected name truncated to %d chars, got %d", MaxNameLength, len([]rune(s.Name)))
	}
}

func TestResetClearsTurnsAndName(t *testing.T) {
	s := NewState()
	s.Interpret("Ada")
	s.Append(Turn{Role: RoleUser, Content: "hello"})

	s.Reset()

	if len(s.Turns) != 1 {
		t.Fatalf("expected only the fresh greeting, got %d turns", len(s.Turns))
	}
	if s.Name != "" {
		t.Errorf("expected name cleared, got %q", s.Name)
	}
	if !s.AwaitingName {
		t.Error("post-reset conversation must ask for a name again")
	}
	if s.Turns[0].Content != Greeting {
		t.Error("post-reset greeting should be the ask-for-name greeting")
	}
}
