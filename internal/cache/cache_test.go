package cache

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}

	stores := map[string]Store{"file": fileStore, "sqlite": sqliteStore}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	counts := map[string]int{"language": 7, "model": 3}

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := NewRecord("Category:Large_language_models", counts)

			if err := store.Save(ctx, "Category:Large_language_models", rec); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			got, err := store.Load(ctx, "Category:Large_language_models")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got.Category != "Large_language_models" {
				t.Errorf("Category = %q, want normalized name", got.Category)
			}
			if got.TotalWords != 10 {
				t.Errorf("TotalWords = %d, want 10", got.TotalWords)
			}
			if !reflect.DeepEqual(got.Counts, counts) {
				t.Errorf("Counts = %v, want %v", got.Counts, counts)
			}
		})
	}
}

func TestStoreLoadSharesKeyAcrossPrefixForms(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := NewRecord("Foo", map[string]int{"bar": 1})

			if err := store.Save(ctx, "Foo", rec); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if _, err := store.Load(ctx, "Category:Foo"); err != nil {
				t.Errorf("Load with prefixed name missed: %v", err)
			}
		})
	}
}

func TestStoreMiss(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Load(context.Background(), "Never_saved"); err != ErrNotFound {
				t.Errorf("Load() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, "Foo", NewRecord("Foo", map[string]int{"old": 1})); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if err := store.Save(ctx, "Foo", NewRecord("Foo", map[string]int{"new": 2})); err != nil {
				t.Fatalf("second Save() error: %v", err)
			}

			got, err := store.Load(ctx, "Foo")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			want := map[string]int{"new": 2}
			if !reflect.DeepEqual(got.Counts, want) {
				t.Errorf("Counts = %v, want %v (wholesale overwrite)", got.Counts, want)
			}
		})
	}
}

func TestFileStoreCorruptRecordIsMiss(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `{"category": "Foo", "counts": {"a"`},
		{"not json", "definitely not json"},
		{"counts missing", `{"category": "Foo", "created_at": 1, "total_words": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "category_Foo.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Load(context.Background(), "Foo"); err != ErrNotFound {
				t.Errorf("Load() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if err := store.Save(context.Background(), "Foo", NewRecord("Foo", map[string]int{"a": 1})); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "category_Foo.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("cache dir contains %v, want only category_Foo.json", names)
	}
}

func TestStorePing(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Ping(context.Background()); err != nil {
				t.Errorf("Ping() error: %v", err)
			}
		})
	}
}

func TestFileStorePingMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Error("Ping() must fail once the cache dir is gone")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default is file", Options{Dir: t.TempDir()}, false},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, false},
		{"sqlite", Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "c.db")}, false},
		{"redis without url", Options{Backend: BackendRedis}, true},
		{"unknown", Options{Backend: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				store.Close()
			}
		})
	}
}
