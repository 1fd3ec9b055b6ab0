package conversation

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

const (
	// MaxHistoryMessages bounds how many turns are sent upstream with
	// each request. Trimming only affects what is sent, not what is kept.
	MaxHistoryMessages = 12

	// MaxNameLength bounds the captured display name.
	MaxNameLength = 50
)

// Turn is one message in the conversation, tagged with its speaker role.
// Turns are append-only: never mutated after append except by Reset.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// State holds one conversation: the ordered turn log, the captured user
// display name and the name-capture flag. All mutation happens through
// its methods; there is no ambient global state.
type State struct {
	SessionID    string    `json:"session_id"`
	Turns        []Turn    `json:"turns"`
	Name         string    `json:"-"`
	AwaitingName bool      `json:"awaiting_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewState creates a fresh conversation seeded with the greeting that
// asks for the user's name.
func NewState() *State {
	now := time.Now()
	s := &State{
		SessionID:    uuid.New().String(),
		AwaitingName: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Append(Turn{Role: RoleAssistant, Content: Greeting})
	return s
}

// Append adds a turn to the end of the log.
func (s *State) Append(t Turn) {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	s.Turns = append(s.Turns, t)
	s.UpdatedAt = t.Timestamp
}

// RecentForAPI builds the outbound message list: the fixed system
// prompt, then the captured-name system turn if a name is known, then
// the last MaxHistoryMessages turns oldest-first. The stored log is not
// mutated.
func (s *State) RecentForAPI(systemPrompt string) []Turn {
	msgs := []Turn{{Role: RoleSystem, Content: systemPrompt}}
	if s.Name != "" {
		msgs = append(msgs, Turn{Role: RoleSystem, Content: "The user's name is " + s.Name + ". Address them by name when it feels natural."})
	}

	start := 0
	if len(s.Turns) > MaxHistoryMessages {
		start = len(s.Turns) - MaxHistoryMessages
	}
	return append(msgs, s.Turns[start:]...)
}

// Reset clears the turn log and the captured name together and re-seeds
// the greeting. The name is always gone after a reset, so the greeting
// always asks for it again.
func (s *State) Reset() {
	now := time.Now()
	s.SessionID = uuid.New().String()
	s.Turns = nil
	s.Name = ""
	s.AwaitingName = true
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Append(Turn{Role: RoleAssistant, Content: Greeting})
}

// Decision is the outcome of running a user message through the
// name-capture protocol. When Forward is false the message must not be
// sent upstream; Reply carries the canned assistant response instead.
type Decision struct {
	Forward bool
	Reply   string
}

var (
	skipPhrases = map[string]bool{
		"skip":         true,
		"no":           true,
		"no thanks":    true,
		"no thank you": true,
	}

	// Declarative name statements: "my name is X", "I am X", "I'm X".
	namePattern = regexp.MustCompile(`(?i)^\s*(?:my name is|i am|i'm)\s+(.+?)\s*[.!]*\s*$`)
)

// Interpret runs one user message through the name-capture state
// machine, updating the captured name and the awaiting flag as needed.
//
// While awaiting a name: a skip phrase moves to normal conversation
// without capturing; a declarative statement or any message of at most
// three words is taken as the name. In normal conversation a declarative
// statement re-captures the name at any time. Captured names are
// truncated to MaxNameLength and acknowledged locally; none of these
// turns ever reach the model.
func (s *State) Interpret(input string) Decision {
	trimmed := strings.TrimSpace(input)

	if s.AwaitingName {
		s.AwaitingName = false

		if skipPhrases[strings.ToLower(trimmed)] {
			return Decision{Reply: SkipAck}
		}
		if m := namePattern.FindStringSubmatch(trimmed); m != nil {
			s.Name = truncateName(m[1])
			return Decision{Reply: nameAck(s.Name)}
		}
		if len(strings.Fields(trimmed)) <= 3 {
			s.Name = truncateName(trimmed)
			return Decision{Reply: nameAck(s.Name)}
		}

		// Longer message: the user skipped the question and started the
		// actual conversation.
		return Decision{Forward: true}
	}

	if m := namePattern.FindStringSubmatch(trimmed); m != nil {
		s.Name = truncateName(m[1])
		return Decision{Reply: nameAck(s.Name)}
	}

	return Decision{Forward: true}
}

func truncateName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	return string(runes)
}
