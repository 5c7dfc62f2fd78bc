package registry

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const sourcesBucket = "sources"

// File is a content-hash registry persisted in a single bbolt file.
type File struct {
	db *bolt.DB
}

// OpenFile opens (or creates) a registry file.
func OpenFile(path string) (*File, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sourcesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize registry file %s: %w", path, err)
	}

	return &File{db: db}, nil
}

func (f *File) Close() error {
	return f.db.Close()
}

// Put stores source text and returns its content hash.
func (f *File) Put(source string) (string, error) {
	hash := HashOf(source)

	err := f.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sourcesBucket)).Put([]byte(hash), []byte(source))
	})
	if err != nil {
		return "", fmt.Errorf("failed to store source: %w", err)
	}
	return hash, nil
}

func (f *File) Resolve(hash string) (string, bool) {
	var source []byte

	f.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket([]byte(sourcesBucket)).Get([]byte(hash)); value != nil {
			source = append([]byte{}, value...)
		}
		return nil
	})

	if source == nil {
		return "", false
	}
	return string(source), true
}
