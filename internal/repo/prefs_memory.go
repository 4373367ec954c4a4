package repo

import (
	"encoding/json"
	"sync"
)

// InMemoryPreferenceRepository keeps preferences in process memory. It
// stores the same JSON blobs as the persistent implementations so corrupt
// payloads exercise the same recovery path.
type InMemoryPreferenceRepository struct {
	mu      sync.Mutex
	entries map[int][]byte
}

func NewInMemoryPreferenceRepository() *InMemoryPreferenceRepository {
	return &InMemoryPreferenceRepository{entries: map[int][]byte{}}
}

func (r *InMemoryPreferenceRepository) Get(userID int) (Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.entries[userID]
	if !ok {
		return Preferences{}, ErrPreferencesNotFound
	}

	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		// Corrupt entry: discard it and report not-found so the caller
		// falls back to the default layout.
		delete(r.entries, userID)
		return Preferences{}, ErrPreferencesNotFound
	}
	return prefs, nil
}

func (r *InMemoryPreferenceRepository) Save(userID int, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[userID] = raw
	return nil
}

func (r *InMemoryPreferenceRepository) Reset(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
	return nil
}

// SetRaw stores an arbitrary payload for a user. Used by tests to simulate
// corrupt persisted state.
func (r *InMemoryPreferenceRepository) SetRaw(userID int, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[userID] = raw
}
