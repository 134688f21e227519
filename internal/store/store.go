// Package store persists the deck state (sentences, revealed cards and
// timer fields) to a key/value backend. Loading never fails: a missing
// or unparsable key falls back to its empty default.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"flipdeck/internal/logging"

	"go.uber.org/zap"
)

// Store is a passive serialization sink for State.
type Store struct {
	kv  KV
	log *zap.Logger
}

// New wraps a KV backend.
func New(kv KV) *Store {
	return &Store{kv: kv, log: logging.Get(logging.CategoryStore)}
}

// Load returns the last saved state. Each key defaults independently.
func (s *Store) Load(ctx context.Context) State {
	st := Default()

	var sentences []string
	if s.decode(ctx, KeySentences, &sentences) && sentences != nil {
		st.Sentences = sentences
	}

	var revealed IndexSet
	if s.decode(ctx, KeyRevealed, &revealed) && revealed != nil {
		st.Revealed = revealed
	}

	var chosen *int
	if s.decode(ctx, KeyChosenTime, &chosen) && chosen != nil && *chosen > 0 {
		st.ChosenTime = chosen
	}

	var remaining *int
	if s.decode(ctx, KeyRemainingSeconds, &remaining) && remaining != nil && *remaining > 0 {
		st.RemainingSeconds = remaining
	}

	// Drop revealed indices that point past the sentence list.
	for i := range st.Revealed {
		if i < 0 || i >= len(st.Sentences) {
			delete(st.Revealed, i)
		}
	}

	return st
}

// decode reads key into dst and reports whether a usable value was found.
func (s *Store) decode(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("state read failed, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("state value unparsable, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save writes all four keys as one batch.
func (s *Store) Save(ctx context.Context, st State) error {
	sentences := st.Sentences
	if sentences == nil {
		sentences = []string{}
	}
	revealed := st.Revealed
	if revealed == nil {
		revealed = IndexSet{}
	}

	entries := make(map[string]string, 4)
	for key, v := range map[string]any{
		KeySentences:        sentences,
		KeyRevealed:         revealed,
		KeyChosenTime:       st.ChosenTime,
		KeyRemainingSeconds: st.RemainingSeconds,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = string(data)
	}

	if err := s.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.log.Debug("state saved",
		zap.Int("sentences", len(sentences)),
		zap.Int("revealed", revealed.Len()))
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
