package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"go.etcd.io/bbolt"
)

const runsBucket = "runs"

// Bolt is a Journal backed by a bbolt database file.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the journal database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

// Record implements Journal.
func (b *Bolt) Record(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("journal record has no run ID")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", rec.ID, err)
	}

	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(rec.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store run %s: %w", rec.ID, err)
	}
	ctxlog.FromContext(ctx).Debug("Run recorded in journal.", "run_id", rec.ID)
	return nil
}

// Get returns the record with the given run ID.
func (b *Bolt) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return ErrNotFound
		}
		data := bucket.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return Record{}, fmt.Errorf("run %s: %w", id, err)
	}
	return rec, nil
}

// List implements Journal.
func (b *Bolt) List(ctx context.Context) ([]Record, error) {
	var records []Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartedAt.Equal(records[j].StartedAt) {
			return records[i].StartedAt.Before(records[j].StartedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// Close implements Journal.
func (b *Bolt) Close() error {
	return b.db.Close()
}
