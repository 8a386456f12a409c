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
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-ding/dict"
)

// formatWindow is the number of bytes at the start of a file examined by
// CheckFormat.
const formatWindow = 4 * 1024

var (
	// ErrLooksCompressed indicates that the file appears to be gzip
	// compressed.
	ErrLooksCompressed = errors.New("file looks compressed")

	// ErrFormatIO indicates that the file could not be read.
	ErrFormatIO = errors.New("file could not be read")

	// ErrTooSmall indicates that the file is too small to be a dictionary.
	ErrTooSmall = errors.New("file too small")

	// ErrBadFormat indicates that the file is not a DING dictionary.
	ErrBadFormat = errors.New("not a DING dictionary")
)

// CheckFormat performs a quick check that the file at path looks like a DING
// dictionary. Only the first 4 KiB of the file are read. The first line that
// is not a comment must contain the "::" separator.
//
// Files compressed with dictzip are checked on their uncompressed contents.
// Files compressed with plain gzip are rejected.
func CheckFormat(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		return fmt.Errorf("%w: %s", ErrLooksCompressed, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormatIO, err)
	}
	defer f.Close()

	r, err := sourceReader(path, f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormatIO, err)
	}

	buf := make([]byte, formatWindow)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrFormatIO, err)
	}
	if n < formatWindow {
		return fmt.Errorf("%w: %d bytes", ErrTooSmall, n)
	}

	lines := bytes.Split(buf, []byte("\n"))
	// The last line may be cut off by the window.
	for _, line := range lines[:len(lines)-1] {
		if dict.IsComment(line) {
			continue
		}
		if bytes.Contains(line, dict.Separator) {
			return nil
		}
		return fmt.Errorf("%w: first entry has no %q separator", ErrBadFormat, dict.Separator)
	}
	return fmt.Errorf("%w: no entry found", ErrBadFormat)
}

// isDictZip returns true if the path names a dictzip compressed file.
func isDictZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".dz")
}

// sourceReader returns a reader for the uncompressed contents of the source
// dictionary f.
func sourceReader(path string, f *os.File) (io.Reader, error) {
	if !isDictZip(path) {
		return f, nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading dictzip header: %w", err)
	}
	return io.NewSectionReader(z, 0, math.MaxInt64), nil
}
