package conversation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	conversationFile = "conversation.json"
	nameFile         = "name"
)

// Store persists conversation state as JSON files under a state
// directory: one file holding the serialized turn log and one holding
// the captured display name. Persistence is best-effort — read and
// write failures are logged and never surfaced to the caller, which
// continues with in-memory state only.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewStore creates a store rooted at dir, creating the directory if
// needed. A directory creation failure is logged; subsequent saves will
// keep failing quietly and the conversation stays in memory.
func NewStore(dir string, logger zerolog.Logger) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("could not create state directory")
	}
	return &Store{dir: dir, logger: logger}
}

// Load rehydrates the persisted conversation, or returns a fresh one
// when nothing usable is on disk. Corrupt files are treated as absent.
func (st *Store) Load() *State {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(st.dir, conversationFile))
	if err != nil {
		if !os.IsNotExist(err) {
			st.logger.Warn().Err(err).Msg("could not read persisted conversation")
		}
		return NewState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		st.logger.Warn().Err(err).Msg("persisted conversation is corrupt, starting fresh")
		return NewState()
	}
	if len(state.Turns) == 0 {
		return NewState()
	}

	if name, err := os.ReadFile(filepath.Join(st.dir, nameFile)); err == nil {
		state.Name = truncateName(strings.TrimSpace(string(name)))
	}

	return &state
}

// Save writes the full turn log and the captured name to disk.
// Failures are logged as warnings; the operation never fails the caller.
func (st *Store) Save(state *State) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		st.logger.Warn().Err(err).Msg("could not marshal conversation")
		return
	}
	if err := os.WriteFile(filepath.Join(st.dir, conversationFile), data, 0644); err != nil {
		st.logger.Warn().Err(err).Msg("could not persist conversation")
	}

	namePath := filepath.Join(st.dir, nameFile)
	if state.Name == "" {
		if err := os.Remove(namePath); err != nil && !os.IsNotExist(err) {
			st.logger.Warn().Err(err).Msg("could not clear persisted name")
		}
		return
	}
	if err := os.WriteFile(namePath, []byte(state.Name), 0644); err != nil {
		st.logger.Warn().Err(err).Msg("could not persist name")
	}
}
