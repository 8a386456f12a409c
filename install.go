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
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianlewis/go-ding/index"
	"github.com/ianlewis/go-ding/internal/logging"
	"github.com/ianlewis/go-ding/internal/tokenizer"
	"github.com/ianlewis/go-ding/internal/utf8util"
	"github.com/ianlewis/go-ding/keyword"
)

// copyBufferSize is the size of the buffer used to copy the source file.
const copyBufferSize = 4 * 1024

// ErrCancelled indicates that an install was stopped by its context.
var ErrCancelled = errors.New("install cancelled")

// State is the state of an install.
type State int

const (
	// StateIdle is the state before an install starts.
	StateIdle State = iota

	// StateStarting is reported when an install starts.
	StateStarting

	// StateIndexing is reported as the dictionary is indexed.
	StateIndexing

	// StateCompleted is reported when an install completes successfully.
	StateCompleted

	// StateError is reported when an install fails or is cancelled.
	StateError
)

// String implements [fmt.Stringer.String].
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateIndexing:
		return "indexing"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// InstallOptions are options for Install.
type InstallOptions struct {
	// Progress is called on each state change and whenever indexing
	// progresses by at least one percent. The fraction is between 0 and 1.
	// Progress is called on the installing goroutine.
	Progress func(State, float64)

	// Logger receives log messages. Nothing is logged if nil.
	Logger *log.Logger

	// CommitEvery is the number of lines indexed per transaction. Defaults
	// to index.DefaultWriterOptions.CommitEvery.
	CommitEvery int
}

// Install copies the dictionary at source into root and indexes it. Any
// dictionary previously installed in root is removed first.
//
// Install polls ctx between words. If ctx is done the install stops and the
// returned error wraps both ErrCancelled and ctx.Err(). When the install
// fails or is cancelled the data file is removed but the partial index is
// left in place.
func Install(ctx context.Context, root, source string, opts *InstallOptions) error {
	if opts == nil {
		opts = &InstallOptions{}
	}
	in := &installer{
		root:         root,
		source:       source,
		progress:     opts.Progress,
		log:          logging.Or(opts.Logger),
		commitEvery:  opts.CommitEvery,
		lastProgress: -1,
	}
	if in.commitEvery <= 0 {
		in.commitEvery = index.DefaultWriterOptions.CommitEvery
	}

	in.report(StateStarting, 0)
	in.log.Info("installing dictionary", "source", source, "root", root)

	info, err := in.run(ctx)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			in.log.Warn("install cancelled", "source", source)
		} else {
			in.log.Error("install failed", "source", source, "err", err)
		}
		err = errors.Join(err, removeIfExists(DataPath(root)), removeIfExists(ManifestPath(root)))
		in.report(StateError, 0)
		return err
	}

	in.log.Info("installed dictionary",
		"version", info.Version,
		"lines", info.Lines,
		"words", info.Words,
		"prefixes", info.Prefixes,
	)
	in.report(StateCompleted, 1)
	return nil
}

type installer struct {
	root        string
	source      string
	progress    func(State, float64)
	log         *log.Logger
	commitEvery int

	// lastProgress is the last indexing progress reported.
	lastProgress float64
}

func (in *installer) report(s State, fraction float64) {
	if in.progress != nil {
		in.progress(s, fraction)
	}
}

// reportIndexing reports indexing progress when it changes by a whole
// percent.
func (in *installer) reportIndexing(fraction float64) {
	if int(fraction*100) != int(in.lastProgress*100) {
		in.lastProgress = fraction
		in.report(StateIndexing, fraction)
	}
}

func (in *installer) run(ctx context.Context) (*Info, error) {
	if err := os.MkdirAll(in.root, 0o755); err != nil { //nolint:gosec // the dictionary is not secret.
		return nil, fmt.Errorf("creating %s: %w", in.root, err)
	}
	for _, path := range []string{IndexPath(in.root), DataPath(in.root), ManifestPath(in.root)} {
		if err := removeIfExists(path); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	size, err := in.copySource()
	if err != nil {
		return nil, err
	}
	in.log.Debug("copied dictionary", "bytes", size)

	info := &Info{
		Format: manifestFormat,
		Source: in.source,
		Size:   size,
	}
	if err := in.index(ctx, info); err != nil {
		return nil, err
	}

	info.InstalledAt = time.Now()
	if err := writeManifest(ManifestPath(in.root), info); err != nil {
		return nil, err
	}
	return info, nil
}

// copySource copies the source dictionary to the data file and returns the
// number of bytes written.
func (in *installer) copySource() (int64, error) {
	src, err := os.Open(in.source)
	if err != nil {
		return 0, fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	r, err := sourceReader(in.source, src)
	if err != nil {
		return 0, err
	}

	dst, err := os.Create(DataPath(in.root))
	if err != nil {
		return 0, fmt.Errorf("creating data file: %w", err)
	}

	n, err := io.CopyBuffer(dst, r, make([]byte, copyBufferSize))
	if err != nil {
		_ = dst.Close()
		return 0, fmt.Errorf("copying source: %w", err)
	}
	if err := dst.Close(); err != nil {
		return 0, fmt.Errorf("closing data file: %w", err)
	}
	return n, nil
}

// index builds the prefix index over the data file.
func (in *installer) index(ctx context.Context, info *Info) (err error) {
	w, err := index.Create(ctx, IndexPath(in.root), &index.WriterOptions{
		CommitEvery: in.commitEvery,
	})
	if err != nil {
		return err //nolint:wrapcheck // already wrapped
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing index: %w", cerr))
		}
	}()

	f, err := os.Open(DataPath(in.root))
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if header, err := br.ReadString('\n'); err == nil || errors.Is(err, io.EOF) {
		info.Version = parseVersion(header)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("reading data file: %w", err)
	}

	var ref int64
	var staged []string
	flush := func() error {
		if len(staged) == 0 {
			return nil
		}
		if err := w.Add(ctx, ref, staged); err != nil {
			return fmt.Errorf("indexing line at %d: %w", ref, err)
		}
		info.Prefixes += int64(len(staged))
		staged = staged[:0]
		return nil
	}

	s := tokenizer.NewScanner(f, info.Size, nil)
	for s.Scan() {
		word := s.Word()
		if word.Ref != ref || info.Words == 0 {
			if err := flush(); err != nil {
				return err
			}
			ref = word.Ref
			info.Lines++
			in.reportIndexing(s.Progress())
		}
		info.Words++

		if len(word.Text) < IndexingMin {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		upper := bytes.Clone(word.Text)
		utf8util.ToUpper(upper)
		if keyword.IsCommon(string(upper)) {
			continue
		}
		prefix, n, err := utf8util.Crop(string(upper), IndexingDepth)
		if err != nil {
			return fmt.Errorf("indexing line at %d: %w", ref, err)
		}
		if n < IndexingMin {
			continue
		}
		if i, found := slices.BinarySearch(staged, prefix); !found {
			staged = slices.Insert(staged, i, prefix)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("indexing data file: %w", err)
	}

	return flush()
}
