package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) SelectAll(ctx context.Context, table Table, filter ListFilter) ([]Entry, error) {
	if !table.IsValid() {
		return nil, unknownTable(table)
	}
	query := `SELECT id, data, created_at, updated_at FROM ` + string(table) + ` ORDER BY seq ASC`
	args := make([]any, 0, 2)
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Select(ctx context.Context, table Table, id string) (Entry, error) {
	if !table.IsValid() {
		return Entry{}, unknownTable(table)
	}
	row := r.db.QueryRowContext(ctx, `SELECT id, data, created_at, updated_at FROM `+string(table)+` WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, table Table, id, data string) error {
	if !table.IsValid() {
		return unknownTable(table)
	}
	now := mustTime(r.now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO `+string(table)+` (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		id, data, now, now,
	)
	return err
}

func (r *SQLiteRepository) Update(ctx context.Context, table Table, id, data string) error {
	if !table.IsValid() {
		return unknownTable(table)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE `+string(table)+`
		SET data = ?, updated_at = ?
		WHERE id = ?`,
		data, mustTime(r.now()), id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// Upsert keeps the existing position of an entry when it already exists.
func (r *SQLiteRepository) Upsert(ctx context.Context, table Table, id, data string) error {
	if !table.IsValid() {
		return unknownTable(table)
	}
	now := mustTime(r.now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO `+string(table)+` (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		id, data, now, now,
	)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, table Table, id string) error {
	if !table.IsValid() {
		return unknownTable(table)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+string(table)+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) Transfer(ctx context.Context, from, to Table, id string) error {
	if !from.IsValid() {
		return unknownTable(from)
	}
	if !to.IsValid() {
		return unknownTable(to)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT id, data, created_at, updated_at FROM `+string(from)+` WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+string(from)+` WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO `+string(to)+` (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Data, mustTime(entry.CreatedAt), mustTime(r.now()),
	); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var out Entry
	var created, updated string
	if err := s.Scan(&out.ID, &out.Data, &created, &updated); err != nil {
		return Entry{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Entry{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Entry{}, err
	}
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func unknownTable(t Table) error {
	return fmt.Errorf("%w: %q", ErrUnknownTable, string(t))
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
