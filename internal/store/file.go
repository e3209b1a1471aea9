package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists every slot in a single JSON document on disk, the way
// a browser keeps its local storage: a map of slot name to string value.
type FileStore struct {
	path  string
	mu    sync.Mutex
	slots map[Key]string
}

// OpenFileStore loads the document at path. A missing file yields an empty
// store; the file is created on the first write.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, slots: make(map[Key]string)}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	f, err := os.Open(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	var raw map[Key]string
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return fmt.Errorf("decode store file: %w", err)
	}
	for k, v := range raw {
		if k.Valid() {
			fs.slots[k] = v
		}
	}
	return nil
}

// save writes the document to a temporary file and renames it into place.
// Caller holds mu.
func (fs *FileStore) save() error {
	dir := filepath.Dir(fs.path)
	tmp, err := os.CreateTemp(dir, ".tripwise-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fs.slots); err != nil {
		tmp.Close()
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (fs *FileStore) Read(_ context.Context, key Key) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.slots[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (fs *FileStore) Write(_ context.Context, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	prev, had := fs.slots[key]
	fs.slots[key] = string(value)
	if err := fs.save(); err != nil {
		if had {
			fs.slots[key] = prev
		} else {
			delete(fs.slots, key)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Remove(_ context.Context, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	prev, had := fs.slots[key]
	if !had {
		return nil
	}
	delete(fs.slots, key)
	if err := fs.save(); err != nil {
		fs.slots[key] = prev
		return err
	}
	return nil
}

// Path returns the location of the backing file.
func (fs *FileStore) Path() string {
	return fs.path
}
