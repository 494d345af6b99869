package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrationsTrackSchemaVersion(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "versions.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if v, err := SchemaVersion(db); err != nil || v != 0 {
		t.Fatalf("fresh db version = %d, %v", v, err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if v, _ := SchemaVersion(db); v != 1 {
		t.Fatalf("expected version 1 after up, got %d", v)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if v, _ := SchemaVersion(db); v != 0 {
		t.Fatalf("expected version 0 after down, got %d", v)
	}
	var n int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('record', 'archive')`).Scan(&n); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected tables dropped, found %d", n)
	}
}

func TestArchiveUsableAfterDownUp(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "down-up.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	for _, step := range []func(*sql.DB) error{MigrateUp, MigrateDown, MigrateUp} {
		if err := step(db); err != nil {
			t.Fatalf("migration step: %v", err)
		}
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.Insert(t.Context(), TableArchive, "a-1", `{"title":"kept"}`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.Select(t.Context(), TableArchive, "a-1")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.Data != `{"title":"kept"}` {
		t.Fatalf("unexpected data: %q", got.Data)
	}
}
