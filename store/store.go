package store

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore is a KV backed by an embedded goleveldb database. It assumes
// a single process owns the database directory; goleveldb enforces that with
// a file lock.
type LevelDBStore struct {
	db *leveldb.DB
}

// Open creates or opens the database directory at path.
func Open(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open store at %q: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// OpenInMemory backs the store with volatile memory. Used by tests.
func OpenInMemory() (*LevelDBStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Close() error { return s.db.Close() }

func (s *LevelDBStore) Get(key string) ([]byte, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *LevelDBStore) Put(key string, value []byte) error {
	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. LevelDB itself treats a blind delete of an absent key
// as success, so existence is checked first to honor the ErrNotFound
// contract.
func (s *LevelDBStore) Delete(key string) error {
	exists, err := s.db.Has([]byte(key), nil)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if !exists {
		return ErrNotFound
	}
	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *LevelDBStore) Scan(prefix string, fn func(key string, value []byte) error) error {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	for iter.Next() {
		// Key and Value buffers are only valid until the next Next call.
		key := string(iter.Key())
		value := append([]byte(nil), iter.Value()...)
		if err := fn(key, value); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("scan %q: %w", prefix, err)
	}
	return nil
}

func (s *LevelDBStore) WriteBatch(b *Batch) error {
	wb := new(leveldb.Batch)
	for _, op := range b.ops {
		if op.delete {
			wb.Delete([]byte(op.key))
		} else {
			wb.Put([]byte(op.key), op.value)
		}
	}
	if err := s.db.Write(wb, nil); err != nil {
		return fmt.Errorf("write batch of %d ops: %w", b.Len(), err)
	}
	return nil
}
