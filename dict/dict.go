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

// Package dict implements reading lines of a DING dictionary data file.
//
// Each line of the file holds one entry, the German side and the English side
// separated by "::". Blank lines and lines starting with '#' are comments.
// Lines are addressed by their ref, the byte offset of the line's first byte.
package dict

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// initialLineSize is the size of the buffer a line is first read into. The
// buffer doubles until the whole line fits.
const initialLineSize = 196

var (
	// ErrNoSeparator indicates that a line has no "::" separator.
	ErrNoSeparator = errors.New("missing '::' separator")

	errNegativeRef = errors.New("negative ref")
)

// Separator separates the German and English sides of a line.
var Separator = []byte("::")

// Dict is a DING dictionary data file.
type Dict struct {
	r io.ReaderAt
	c io.Closer
}

// New returns a new Dict reading from r.
func New(r io.ReaderAt) *Dict {
	return &Dict{r: r}
}

// Open opens the dictionary data file at path. The Dict must be closed with
// the Close method.
func Open(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	return &Dict{r: f, c: f}, nil
}

// Close closes the underlying file if the Dict was created with Open.
func (d *Dict) Close() error {
	if d.c == nil {
		return nil
	}
	if err := d.c.Close(); err != nil {
		return fmt.Errorf("closing dictionary: %w", err)
	}
	return nil
}

// Line returns the line starting at ref without its line feed.
func (d *Dict) Line(ref int64) ([]byte, error) {
	if ref < 0 {
		return nil, fmt.Errorf("%w: %d", errNegativeRef, ref)
	}

	buf := make([]byte, initialLineSize)
	var n int
	for {
		m, err := d.r.ReadAt(buf[n:], ref+int64(n))
		if i := bytes.IndexByte(buf[n:n+m], '\n'); i >= 0 {
			return buf[:n+i], nil
		}
		n += m
		if errors.Is(err, io.EOF) {
			// The last line need not end with a line feed.
			return buf[:n], nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading dictionary at %d: %w", ref, err)
		}
		if n == len(buf) {
			buf = append(buf, make([]byte, len(buf))...)
		}
	}
}

// IsComment returns true if the line is blank or starts with '#'.
func IsComment(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0 || line[0] == '#'
}

// Split splits a line into its German and English sides. Whitespace around
// the separator is removed.
func Split(line []byte) (string, string, error) {
	german, english, found := bytes.Cut(line, Separator)
	if !found {
		return "", "", ErrNoSeparator
	}
	return string(bytes.TrimSpace(german)), string(bytes.TrimSpace(english)), nil
}
