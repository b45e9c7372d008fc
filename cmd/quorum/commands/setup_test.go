// ABOUTME: Tests for CLI bootstrap helpers
// ABOUTME: Verifies database path resolution and index opening

package commands

import (
	"path/filepath"
	"testing"

	"github.com/quorumlabs/quorum/internal/config"
	"github.com/quorumlabs/quorum/internal/storage/sqlite"
)

func TestIndexDBPath(t *testing.T) {
	cfg := &config.Config{DataDir: filepath.Join("some", "dir")}
	want := filepath.Join("some", "dir", "quorum.db")
	if got := indexDBPath(cfg); got != want {
		t.Errorf("indexDBPath = %q, want %q", got, want)
	}

	cfg.DataDir = ""
	if got := indexDBPath(cfg); got != sqlite.DefaultDBPath() {
		t.Errorf("indexDBPath with empty DataDir = %q, want default %q", got, sqlite.DefaultDBPath())
	}
}

func TestOpenIndex_UsesConfiguredDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUORUM_DATA_DIR", dir)

	db, index, cfg, err := openIndex()
	if err != nil {
		t.Fatalf("openIndex() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if want := filepath.Join(dir, "quorum.db"); db.Path() != want {
		t.Errorf("db path = %q, want %q", db.Path(), want)
	}
	if index.Collection() != cfg.Collection {
		t.Errorf("collection = %q, want %q", index.Collection(), cfg.Collection)
	}
}
