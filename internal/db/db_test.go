package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/AI2HU/gdc/internal/db/file"
	"github.com/AI2HU/gdc/internal/models"
)

func TestNewProviders(t *testing.T) {
	tests := []struct {
		config  models.Config
		name    string
		wantErr bool
	}{
		{models.Config{}, "memory", false},
		{models.Config{Provider: "MEMORY"}, "memory", false},
		{models.Config{Provider: "file", URI: "data"}, "file", false},
		{models.Config{Provider: "sqlite", URI: "views.db"}, "sqlite", false},
		{models.Config{Provider: "postgres", URI: "postgres://localhost/gdc"}, "postgres", false},
		{models.Config{Provider: "mongodb", URI: "mongodb://localhost:27017"}, "mongodb", false},
		{models.Config{Provider: "redis", URI: "localhost:6379"}, "redis", false},
		{models.Config{Provider: "sqlite"}, "", true},
		{models.Config{Provider: "cassandra"}, "", true},
	}

	for _, tt := range tests {
		config := tt.config
		store, err := New(&config)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", config.Provider)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", config.Provider, err)
		}
		if store.Name() != tt.name {
			t.Fatalf("expected provider %s, got %s", tt.name, store.Name())
		}
	}
}

func TestStoreContract(t *testing.T) {
	stores := map[string]*models.Config{
		"memory":         {Provider: "memory"},
		"file":           {Provider: "file", URI: filepath.Join(t.TempDir(), "data")},
		"file encrypted": {Provider: "file", URI: filepath.Join(t.TempDir(), "data"), Options: map[string]string{file.OptionPassphrase: "hunter2"}},
		"sqlite":         {Provider: "sqlite", URI: filepath.Join(t.TempDir(), "views.db")},
	}

	for name, config := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(ctx, config)
			if err != nil {
				t.Fatalf("failed to open: %v", err)
			}
			defer store.Disconnect(ctx)

			if err := store.Ping(ctx); err != nil {
				t.Fatalf("ping failed: %v", err)
			}

			if _, ok, err := store.Get(ctx, "gdc-views-1"); err != nil || ok {
				t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
			}

			for key, value := range map[string]string{
				"gdc-views-1":   "3",
				"gdc-views-10":  "7",
				"other-views-1": "1",
			} {
				if err := store.Set(ctx, key, value); err != nil {
					t.Fatalf("set %s: %v", key, err)
				}
			}
			if err := store.Set(ctx, "gdc-views-1", "4"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			value, ok, err := store.Get(ctx, "gdc-views-1")
			if err != nil || !ok || value != "4" {
				t.Fatalf("expected 4, got %q ok=%v err=%v", value, ok, err)
			}

			keys, err := store.Keys(ctx, "gdc-views-")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if want := []string{"gdc-views-1", "gdc-views-10"}; !reflect.DeepEqual(keys, want) {
				t.Fatalf("expected keys %v, got %v", want, keys)
			}
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	config := &models.Config{Provider: "file", URI: t.TempDir(), Options: map[string]string{file.OptionPassphrase: "pw"}}

	first, err := Open(ctx, config)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	if err := first.Set(ctx, "gdc-views-2", "11"); err != nil {
		t.Fatalf("set: %v", err)
	}
	first.Disconnect(ctx)

	second, err := Open(ctx, config)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	value, ok, err := second.Get(ctx, "gdc-views-2")
	if err != nil || !ok || value != "11" {
		t.Fatalf("expected persisted value 11, got %q ok=%v err=%v", value, ok, err)
	}

	// the key file exists, so opening without the passphrase must fail
	if _, err := Open(ctx, &models.Config{Provider: "file", URI: config.URI}); err == nil {
		t.Fatalf("expected error opening encrypted store without passphrase")
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	ctx := context.Background()
	config := &models.Config{Provider: "sqlite", URI: filepath.Join(t.TempDir(), "views.db")}

	for i := 0; i < 2; i++ {
		store, err := Open(ctx, config)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if v := store.(interface{ SchemaVersion() uint }).SchemaVersion(); v != 2 {
			t.Fatalf("expected schema version 2, got %d", v)
		}
		store.Disconnect(ctx)
	}
}
