package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const historyFileName = "vote_history.json"

var (
	ErrInvalidRecord   = errors.New("invalid vote record")
	ErrAlreadyRecorded = errors.New("vote for this group already recorded")
	ErrPersist         = errors.New("failed to persist vote history")
)

// Record is one locally remembered vote.
type Record struct {
	GroupID string    `json:"group_id"`
	Score   int       `json:"score"`
	VotedAt time.Time `json:"voted_at"`
}

// History is the device's local memory of which groups it voted for. Reads
// degrade to an empty history when the backing file is missing or corrupt;
// writes report failure so the caller knows the vote may be re-promptable.
type History struct {
	dir string
	mu  sync.Mutex
}

func NewHistory(dir string) *History {
	return &History{dir: dir}
}

// HasVoted reports whether a vote for groupID is recorded locally.
func (h *History) HasVoted(groupID string) bool {
	for _, r := range h.Records() {
		if r.GroupID == groupID {
			return true
		}
	}
	return false
}

// RecordVote appends one vote. Recording the same group twice fails with
// ErrAlreadyRecorded. A persist failure is returned wrapped in ErrPersist;
// the history on disk is left as it was.
func (h *History) RecordVote(groupID string, score int) error {
	if groupID == "" || score < 1 || score > 5 {
		return ErrInvalidRecord
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	records := h.load()
	for _, r := range records {
		if r.GroupID == groupID {
			return ErrAlreadyRecorded
		}
	}
	records = append(records, Record{
		GroupID: groupID,
		Score:   score,
		VotedAt: time.Now(),
	})

	if err := h.save(records); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Records returns a copy of all valid stored records.
func (h *History) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// Count returns the number of recorded votes.
func (h *History) Count() int {
	return len(h.Records())
}

// Clear removes the stored history.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := os.Remove(h.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func (h *History) path() string {
	return filepath.Join(h.dir, historyFileName)
}

func (h *History) load() []Record {
	data, err := os.ReadFile(h.path())
	if err != nil {
		return []Record{}
	}

	var stored []Record
	if err := json.Unmarshal(data, &stored); err != nil {
		return []Record{}
	}

	records := make([]Record, 0, len(stored))
	for _, r := range stored {
		if r.GroupID == "" || r.Score < 1 || r.Score > 5 {
			continue
		}
		records = append(records, r)
	}
	return records
}

func (h *History) save(records []Record) error {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return os.WriteFile(h.path(), data, 0o644)
}
