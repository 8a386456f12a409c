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

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// MaxBatchSize is the maximum number of prefixes that can be added for a
// single ref.
const MaxBatchSize = 1000

// ErrBatchTooLarge indicates that more than MaxBatchSize prefixes were added
// at once.
var ErrBatchTooLarge = errors.New("prefix batch too large")

// WriterOptions are options for a Writer.
type WriterOptions struct {
	// CommitEvery is the number of calls to Add grouped in one transaction.
	CommitEvery int
}

// DefaultWriterOptions is the default options for a Writer.
var DefaultWriterOptions = &WriterOptions{
	CommitEvery: 512,
}

// Writer adds refs to a new index. Statements are prepared once per batch
// size and reused until the current transaction is committed.
type Writer struct {
	db          *sql.DB
	commitEvery int

	tx      *sql.Tx
	pending int

	insertPrefix *sql.Stmt
	selects      map[int]*sql.Stmt
	inserts      map[int]*sql.Stmt
}

// Create creates the index at path and returns a Writer for it.
func Create(ctx context.Context, path string, opts *WriterOptions) (*Writer, error) {
	if opts == nil {
		opts = DefaultWriterOptions
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}
	// A single connection keeps every statement on the transaction's
	// connection.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating index: %w", err)
	}

	return &Writer{
		db:          db,
		commitEvery: max(opts.CommitEvery, 1),
		selects:     map[int]*sql.Stmt{},
		inserts:     map[int]*sql.Stmt{},
	}, nil
}

// Add records ref under each of the prefixes. Prefixes that are not yet in the
// index are created.
func (w *Writer) Add(ctx context.Context, ref int64, prefixes []string) error {
	if len(prefixes) == 0 {
		return nil
	}
	if len(prefixes) > MaxBatchSize {
		return fmt.Errorf("%w: %d prefixes", ErrBatchTooLarge, len(prefixes))
	}

	if w.tx == nil {
		tx, err := w.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		w.tx = tx
	}

	ids, err := w.prefixIDs(ctx, prefixes)
	if err != nil {
		return err
	}
	if err := w.insertRefs(ctx, ref, ids); err != nil {
		return err
	}

	w.pending++
	if w.pending >= w.commitEvery {
		return w.commit()
	}
	return nil
}

// Close commits any pending writes and closes the index.
func (w *Writer) Close() error {
	var err error
	if w.tx != nil {
		err = w.commit()
	}
	return errors.Join(err, w.db.Close())
}

// prefixIDs returns the id of each prefix, inserting the prefixes that are
// missing.
func (w *Writer) prefixIDs(ctx context.Context, prefixes []string) ([]int64, error) {
	stmt, err := w.prepare(ctx, w.selects, len(prefixes), func() squirrel.Sqlizer {
		return builder.
			Select("id", "prefix").
			From("deen_prefix").
			Where(squirrel.Eq{"prefix": prefixes})
	})
	if err != nil {
		return nil, err
	}

	args := make([]any, len(prefixes))
	for i, p := range prefixes {
		args[i] = p
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting prefixes: %w", err)
	}
	defer rows.Close()

	known := make(map[string]int64, len(prefixes))
	for rows.Next() {
		var id int64
		var p string
		if err := rows.Scan(&id, &p); err != nil {
			return nil, fmt.Errorf("selecting prefixes: %w", err)
		}
		known[p] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("selecting prefixes: %w", err)
	}

	ids := make([]int64, len(prefixes))
	for i, p := range prefixes {
		id, ok := known[p]
		if !ok {
			if id, err = w.insertPrefixID(ctx, p); err != nil {
				return nil, err
			}
			// Later duplicates in the batch reuse the new id.
			known[p] = id
		}
		ids[i] = id
	}
	return ids, nil
}

func (w *Writer) insertPrefixID(ctx context.Context, prefix string) (int64, error) {
	if w.insertPrefix == nil {
		q, _, err := builder.Insert("deen_prefix").Columns("prefix").Values(prefix).ToSql()
		if err != nil {
			return 0, fmt.Errorf("building prefix insert: %w", err)
		}
		if w.insertPrefix, err = w.tx.PrepareContext(ctx, q); err != nil {
			return 0, fmt.Errorf("preparing prefix insert: %w", err)
		}
	}

	res, err := w.insertPrefix.ExecContext(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("inserting prefix %q: %w", prefix, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting prefix %q: %w", prefix, err)
	}
	return id, nil
}

func (w *Writer) insertRefs(ctx context.Context, ref int64, ids []int64) error {
	// Duplicate prefixes share an id and must only be recorded once.
	var args []any
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, id, ref)
	}

	n := len(args) / 2
	stmt, err := w.prepare(ctx, w.inserts, n, func() squirrel.Sqlizer {
		q := builder.Insert("deen_ref").Columns("deen_prefix_id", "ref")
		for i := range n {
			q = q.Values(args[2*i], args[2*i+1])
		}
		return q
	})
	if err != nil {
		return err
	}

	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return fmt.Errorf("inserting refs for %d: %w", ref, err)
	}
	return nil
}

// prepare returns the cached statement for a batch of size n, preparing the
// query returned by build when there is none.
func (w *Writer) prepare(ctx context.Context, cache map[int]*sql.Stmt, n int, build func() squirrel.Sqlizer) (*sql.Stmt, error) {
	if stmt, ok := cache[n]; ok {
		return stmt, nil
	}

	q, _, err := build().ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	stmt, err := w.tx.PrepareContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("preparing query: %w", err)
	}
	cache[n] = stmt
	return stmt, nil
}

func (w *Writer) commit() error {
	var errs []error
	for _, cache := range []map[int]*sql.Stmt{w.selects, w.inserts} {
		for n, stmt := range cache {
			errs = append(errs, stmt.Close())
			delete(cache, n)
		}
	}
	if w.insertPrefix != nil {
		errs = append(errs, w.insertPrefix.Close())
		w.insertPrefix = nil
	}

	if err := w.tx.Commit(); err != nil {
		errs = append(errs, fmt.Errorf("committing: %w", err))
	}
	w.tx = nil
	w.pending = 0
	return errors.Join(errs...)
}
