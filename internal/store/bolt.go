package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketState = "state" // key: collection key -> JSON blob

// Bolt implements Store on top of BoltDB
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketState))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Load(key string) ([]byte, bool, error) {
	var (
		out   []byte
		found bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketState)).Get([]byte(key))
		if v == nil {
			return nil
		}

		// bbolt values are only valid for the life of the transaction
		out = append([]byte(nil), v...)
		found = true

		return nil
	})

	return out, found, err
}

func (b *Bolt) Save(key string, value []byte) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketState)).Put([]byte(key), value)
	})
}

func (b *Bolt) Delete(key string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketState)).Delete([]byte(key))
	})
}

func (b *Bolt) Keys() ([]string, error) {
	var out []string

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketState)).ForEach(func(k, _ []byte) error {
			out = append(out, string(k))

			return nil
		})
	})

	return out, err
}
