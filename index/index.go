// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index implements the persistent prefix index. The index maps short
// upper case word prefixes to the refs of the dictionary lines holding words
// with that prefix.
package index

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

//go:embed migrations/*.sql
var migrations embed.FS

// builder builds queries with '?' placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// ErrNotFound indicates that the index does not exist.
var ErrNotFound = errors.New("index not found")

// Stats are counts of the rows in the index.
type Stats struct {
	// Prefixes is the number of distinct prefixes.
	Prefixes int64

	// Refs is the number of (prefix, ref) pairs.
	Refs int64
}

// Index is a read only prefix index.
type Index struct {
	db     *sql.DB
	lookup *sql.Stmt
}

// Open opens an existing index for reading.
func Open(ctx context.Context, path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening index: %w", err)
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening index: %w", err)
	}

	q, _, err := builder.
		Select("r.ref").
		From("deen_ref r").
		Join("deen_prefix p ON p.id = r.deen_prefix_id").
		Where("p.prefix = ?").
		ToSql()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building lookup: %w", err)
	}
	lookup, err := db.PrepareContext(ctx, q)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("preparing lookup: %w", err)
	}

	return &Index{
		db:     db,
		lookup: lookup,
	}, nil
}

// Lookup returns the refs recorded for the exact prefix. The result is empty
// if the prefix is not in the index.
func (idx *Index) Lookup(ctx context.Context, prefix string) ([]int64, error) {
	rows, err := idx.lookup.QueryContext(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", prefix, err)
	}
	defer rows.Close()

	var refs []int64
	for rows.Next() {
		var ref int64
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("looking up %q: %w", prefix, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("looking up %q: %w", prefix, err)
	}
	return refs, nil
}

// Stats returns the number of prefixes and refs in the index.
func (idx *Index) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	for _, c := range []struct {
		table string
		dst   *int64
	}{
		{"deen_prefix", &s.Prefixes},
		{"deen_ref", &s.Refs},
	} {
		q, _, err := builder.Select("COUNT(*)").From(c.table).ToSql()
		if err != nil {
			return s, fmt.Errorf("building count: %w", err)
		}
		if err := idx.db.QueryRowContext(ctx, q).Scan(c.dst); err != nil {
			return s, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return s, nil
}

// Close closes the index.
func (idx *Index) Close() error {
	return errors.Join(idx.lookup.Close(), idx.db.Close())
}

func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("opening index: %w", err)
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "mode=ro",
	}
	return u.String(), nil
}

// migrate brings the index schema up to date.
func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
