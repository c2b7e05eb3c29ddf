package docstore

import (
	"context"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"bankrag/internal/port"
)

var bucketDocuments = []byte("documents")

// BoltStore keeps knowledge-base documents in a BoltDB file, filled by
// the ingest command. Only raw document text is persisted; embeddings
// are recomputed on every index build.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Put stores or replaces a document under the given source name.
func (s *BoltStore) Put(ctx context.Context, source, text string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(source), []byte(text))
	})
}

func (s *BoltStore) Load(ctx context.Context, source string) (string, error) {
	var text string
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketDocuments).Get([]byte(source)); v != nil {
			text = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", port.ErrNotFound
	}
	return text, nil
}

func (s *BoltStore) Sources(ctx context.Context) ([]string, error) {
	var sources []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			sources = append(sources, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(sources)
	return sources, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
