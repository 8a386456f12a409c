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

package ding

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/ianlewis/go-ding/dict"
	"github.com/ianlewis/go-ding/entry"
	"github.com/ianlewis/go-ding/index"
	"github.com/ianlewis/go-ding/internal/logging"
	"github.com/ianlewis/go-ding/internal/refs"
	"github.com/ianlewis/go-ding/internal/utf8util"
	"github.com/ianlewis/go-ding/keyword"
)

var (
	// ErrNotInstalled indicates that no dictionary is installed in the root
	// directory.
	ErrNotInstalled = errors.New("dictionary not installed")

	// ErrNoKeywords indicates that a search was attempted without keywords.
	ErrNoKeywords = errors.New("no keywords")

	// ErrInvalidMaxResults indicates that the maximum number of results is
	// not positive.
	ErrInvalidMaxResults = errors.New("invalid maximum number of results")
)

// Options are options for Open.
type Options struct {
	// Logger receives log messages. Nothing is logged if nil.
	Logger *log.Logger
}

// Dictionary is an installed DING dictionary opened for searching.
type Dictionary struct {
	dict  *dict.Dict
	index *index.Index
	info  *Info
	log   *log.Logger
}

// Open opens the dictionary installed in root.
func Open(ctx context.Context, root string, opts *Options) (*Dictionary, error) {
	if opts == nil {
		opts = &Options{}
	}

	info, err := readManifest(ManifestPath(root))
	if err != nil {
		return nil, err
	}

	dt, err := dict.Open(DataPath(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}

	idx, err := index.Open(ctx, IndexPath(root))
	if err != nil {
		_ = dt.Close()
		if errors.Is(err, index.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotInstalled, err)
		}
		return nil, err //nolint:wrapcheck // already wrapped
	}

	return &Dictionary{
		dict:  dt,
		index: idx,
		info:  info,
		log:   logging.Or(opts.Logger),
	}, nil
}

// Close closes the dictionary's data file and index.
func (d *Dictionary) Close() error {
	return errors.Join(d.dict.Close(), d.index.Close())
}

// Info returns information about the installed dictionary.
func (d *Dictionary) Info() Info {
	return *d.info
}

// Stats returns statistics about the dictionary's index.
func (d *Dictionary) Stats(ctx context.Context) (index.Stats, error) {
	//nolint:wrapcheck // already wrapped
	return d.index.Stats(ctx)
}

// Result is the result of a search.
type Result struct {
	// Entries are the matching entries, best match first.
	Entries []*entry.Entry

	// TotalCount is the number of matching entries before Entries was
	// limited to the maximum number of results.
	TotalCount int
}

// EntryCount returns the number of entries in the result.
func (r *Result) EntryCount() int {
	return len(r.Entries)
}

// Search returns at most maxResults entries that contain every keyword in kw
// at the start of a word on the same side of the entry. Entries are ordered
// by distance and then by the number of German senses.
func (d *Dictionary) Search(ctx context.Context, kw *keyword.Set, maxResults int) (*Result, error) {
	if kw == nil || kw.Len() == 0 {
		return nil, ErrNoKeywords
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxResults, maxResults)
	}

	candidates, err := d.candidates(ctx, kw)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, ref := range candidates.Refs() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("searching: %w", err)
		}

		e, ok, err := d.readEntry(ref, kw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if _, err := e.Score(kw); err != nil {
			d.log.Warn("scoring entry", "ref", ref, "err", err)
			e.Distance = entry.MaxDistance
		}
		result.Entries = append(result.Entries, e)
	}

	slices.SortStableFunc(result.Entries, func(a, b *entry.Entry) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(len(a.German), len(b.German))
	})

	result.TotalCount = len(result.Entries)
	if len(result.Entries) > maxResults {
		clear(result.Entries[maxResults:])
		result.Entries = result.Entries[:maxResults]
	}

	d.log.Debug("search complete",
		"keywords", kw.String(),
		"candidates", candidates.Len(),
		"matches", result.TotalCount,
	)
	return result, nil
}

// Query parses query into keywords and searches for them. If nothing matches
// and the keywords contain ASCII spellings of umlauts or ß, the search is
// repeated with the letters substituted. Query returns the keywords that were
// last searched for.
func (d *Dictionary) Query(ctx context.Context, query string, maxResults int) (*Result, *keyword.Set, error) {
	kw := keyword.Parse(query)
	result, err := d.Search(ctx, kw, maxResults)
	if err != nil {
		return nil, kw, err
	}

	if result.TotalCount == 0 && kw.Adjust() {
		d.log.Debug("retrying with adjusted keywords", "keywords", kw.String())
		result, err = d.Search(ctx, kw, maxResults)
		if err != nil {
			return nil, kw, err
		}
	}
	return result, kw, nil
}

// candidates returns the refs of lines that hold a word starting with the
// indexed prefix of every keyword.
func (d *Dictionary) candidates(ctx context.Context, kw *keyword.Set) (*refs.Set, error) {
	var set *refs.Set
	for _, k := range kw.Keywords() {
		prefix, _, err := utf8util.Crop(k, IndexingDepth)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", k, err)
		}

		found, err := d.index.Lookup(ctx, prefix)
		if err != nil {
			return nil, err //nolint:wrapcheck // already wrapped
		}
		d.log.Debug("looked up prefix", "prefix", prefix, "refs", len(found))

		s := refs.NewSet(found)
		if set == nil {
			set = s
		} else {
			set.Intersect(s)
		}
		if set.Len() == 0 {
			break
		}
	}
	return set, nil
}

// readEntry reads and parses the line at ref. It returns false if the line
// is not an entry or does not contain every keyword on one side.
func (d *Dictionary) readEntry(ref int64, kw *keyword.Set) (*entry.Entry, bool, error) {
	line, err := d.dict.Line(ref)
	if err != nil {
		return nil, false, err //nolint:wrapcheck // already wrapped
	}
	if dict.IsComment(line) {
		return nil, false, nil
	}

	german, english, err := dict.Split(line)
	if err != nil {
		d.log.Warn("skipping malformed line", "ref", ref, "err", err)
		return nil, false, nil
	}
	if !kw.AllPresent(german) && !kw.AllPresent(english) {
		return nil, false, nil
	}

	e := entry.Parse(german, english)
	if len(e.German) == 0 || len(e.English) == 0 {
		return nil, false, nil
	}
	return e, true, nil
}
