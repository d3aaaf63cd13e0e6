package report

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// historyBucket holds run summaries keyed by run ID.
const historyBucket = "history"

// HistoryEntry is a single run recorded in the history store.
type HistoryEntry struct {
	RunID        string    `json:"run_id"`
	Timestamp    time.Time `json:"timestamp"`
	TotalChecks  int       `json:"total_checks"`
	PassedChecks int       `json:"passed_checks"`
	FailedChecks int       `json:"failed_checks"`
	PassRate     float64   `json:"pass_rate"`
	Elapsed      string    `json:"elapsed"`
}

// History is a bbolt-backed store of past run summaries. Keys
// are run IDs, which sort chronologically because they embed
// the generation timestamp.
type History struct {
	db *bolt.DB
}

// OpenHistory opens or creates the history store at the given
// path.
func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(
			[]byte(historyBucket),
		)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history bucket: %w", err)
	}

	return &History{db: db}, nil
}

// Append records one run summary in the store.
func (h *History) Append(s *Summary) error {
	entry := HistoryEntry{
		RunID:        s.ID,
		Timestamp:    s.GeneratedAt,
		TotalChecks:  s.TotalChecks,
		PassedChecks: s.PassedChecks,
		FailedChecks: s.FailedChecks,
		PassRate:     s.PassRate,
		Elapsed:      s.TotalElapsed.String(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	return h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(historyBucket))
		return b.Put([]byte(entry.RunID), data)
	})
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) ([]HistoryEntry, error) {
	var entries []HistoryEntry

	err := h.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(historyBucket)).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var entry HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf(
					"corrupt history entry %s: %w", k, err,
				)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Len returns the number of recorded runs.
func (h *History) Len() (int, error) {
	count := 0
	err := h.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(historyBucket)).Stats().KeyN
		return nil
	})
	return count, err
}

// Close releases the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}
