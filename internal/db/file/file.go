// Package file stores counters in a single data file managed by
// github.com/c2FmZQ/storage, encrypted when a passphrase is configured.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"

	"github.com/AI2HU/gdc/internal/logger"
	"github.com/AI2HU/gdc/internal/models"
)

const (
	dataFile      = "counters.json"
	masterKeyFile = "master.key"

	// OptionPassphrase names the config option that enables encryption
	OptionPassphrase = "passphrase"
)

type counters struct {
	Values map[string]string `json:"values"`
}

// File implements the counter store on top of a data directory
type File struct {
	mu      sync.Mutex
	dir     string
	config  *models.Config
	storage *storage.Storage
}

// New creates a file store rooted at config.URI (default "data")
func New(config *models.Config) (*File, error) {
	dir := config.URI
	if dir == "" {
		dir = "data"
	}
	return &File{
		dir:    dir,
		config: config,
	}, nil
}

func (f *File) Name() string { return "file" }

// Connect prepares the data directory and the optional master key
func (f *File) Connect(ctx context.Context) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var masterKey crypto.MasterKey
	keyFile := filepath.Join(f.dir, masterKeyFile)
	if passphrase := f.config.Options[OptionPassphrase]; passphrase != "" {
		var err error
		masterKey, err = crypto.ReadMasterKey([]byte(passphrase), keyFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to read master key: %w", err)
			}
			logger.Info("Initializing new master encryption key in %s", f.dir)
			if masterKey, err = crypto.CreateMasterKey(); err != nil {
				return fmt.Errorf("failed to create master key: %w", err)
			}
			if err := masterKey.Save([]byte(passphrase), keyFile); err != nil {
				return fmt.Errorf("failed to save master key: %w", err)
			}
		}
	} else if _, err := os.Stat(keyFile); err == nil {
		return fmt.Errorf("%s exists but no passphrase is configured", keyFile)
	}

	f.mu.Lock()
	f.storage = storage.New(f.dir, masterKey)
	f.mu.Unlock()
	return nil
}

// Disconnect releases the storage handle
func (f *File) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	f.storage = nil
	f.mu.Unlock()
	return nil
}

// Ping checks the data file is readable
func (f *File) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.load()
	return err
}

// Get returns the value under key
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := c.Values[key]
	return v, ok, nil
}

// Set overwrites the value under key and rewrites the data file
func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.load()
	if err != nil {
		return err
	}
	c.Values[key] = value

	if err := f.storage.SaveDataFile(dataFile, c); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

// Keys lists keys starting with prefix
func (f *File) Keys(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.load()
	if err != nil {
		return nil, err
	}

	var keys []string
	for k := range c.Values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// load reads the data file; a missing file is an empty store. Callers hold f.mu.
func (f *File) load() (*counters, error) {
	if f.storage == nil {
		return nil, fmt.Errorf("not connected to storage")
	}

	c := &counters{}
	if err := f.storage.ReadDataFile(dataFile, c); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("ReadDataFile: %w", err)
		}
	}
	if c.Values == nil {
		c.Values = make(map[string]string)
	}
	return c, nil
}
