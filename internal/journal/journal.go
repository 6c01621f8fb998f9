// Package journal records cipher runs in a bbolt database so a later
// invocation can list past runs or recover the most recent ciphertext.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

type Config struct {
	// File is the database path. An empty value disables journalling.
	File string `yaml:"file"`
}

// An Entry describes one completed transform.
type Entry struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	Direction string    `json:"direction"`
	Method    string    `json:"method"`
	Shift     int       `json:"shift"`
	Output    string    `json:"output"`
}

type Journal struct {
	db *bbolt.DB
}

func Open(config Config) (*Journal, error) {
	if config.File == "" {
		return nil, fmt.Errorf("journal: file is required")
	}

	if dir := filepath.Dir(config.File); dir != "." {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("journal: create db dir: %w", err)
		}
	}

	db, err := bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("journal: open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketRuns, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: initialize bucket: %w", err)
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	err := j.db.Close()
	if err != nil {
		return fmt.Errorf("journal: close bbolt db: %w", err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func (j *Journal) Closer() io.Closer {
	return closerFunc(j.Close)
}

// Append records a run under a monotonically increasing key. The entry ID
// and time are filled in when unset.
func (j *Journal) Append(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("journal: marshal entry: %w", err)
	}

	return j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return fmt.Errorf("journal: runs bucket not found")
		}

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("journal: next sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, data)
	})
}

// Last returns the most recent entry with the given direction, or the most
// recent entry of all when direction is empty.
func (j *Journal) Last(direction string) (Entry, bool, error) {
	var (
		entry Entry
		found bool
	)

	err := j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return fmt.Errorf("journal: runs bucket not found")
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var e Entry
			err := json.Unmarshal(v, &e)
			if err != nil {
				return fmt.Errorf("journal: unmarshal entry %x: %w", k, err)
			}

			if direction != "" && e.Direction != direction {
				continue
			}

			entry, found = e, true
			return nil
		}
		return nil
	})

	return entry, found, err
}

// Entries returns every recorded run in insertion order.
func (j *Journal) Entries() ([]Entry, error) {
	var entries []Entry

	err := j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return fmt.Errorf("journal: runs bucket not found")
		}

		return b.ForEach(func(k, v []byte) error {
			var e Entry
			err := json.Unmarshal(v, &e)
			if err != nil {
				return fmt.Errorf("journal: unmarshal entry %x: %w", k, err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
