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

package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-ding/internal/utf8util"
)

const (
	// DefaultBufferSize is the initial size of the Scanner's read buffer.
	DefaultBufferSize = 10 * 1024

	// MaxTokenSize is the size the read buffer may grow to in order to hold
	// a single word.
	MaxTokenSize = 64 * 1024 * 1024
)

// ScannerOptions are options for a Scanner.
type ScannerOptions struct {
	// BufferSize is the initial size of the read buffer. The buffer doubles
	// whenever a word does not fit.
	BufferSize int
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	BufferSize: DefaultBufferSize,
}

// Word is a word read by a Scanner.
type Word struct {
	// Text is the word's bytes. It is only valid until the next call to Scan.
	Text []byte

	// Ref is the byte offset of the start of the line holding the word.
	Ref int64
}

// Scanner scans the words of a stream from start to end while keeping track
// of the line each word was found on.
type Scanner struct {
	r    *countingReader
	s    *bufio.Scanner
	size int64

	// offset is the number of bytes consumed by the split function.
	offset int64

	// lineStart is the offset just after the last newline consumed.
	lineStart int64

	// ref is the ref of the current word.
	ref int64
}

// NewScanner returns a new Scanner reading words from r. size is the total
// size of the stream and is only used to compute progress.
func NewScanner(r io.Reader, size int64, opts *ScannerOptions) *Scanner {
	if opts == nil {
		opts = DefaultScannerOptions
	}
	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	s := &Scanner{
		r:    &countingReader{r: r},
		size: size,
	}
	s.s = bufio.NewScanner(s.r)
	s.s.Buffer(make([]byte, 0, bufSize), max(bufSize, MaxTokenSize))
	s.s.Split(s.splitWords)
	return s
}

// Scan advances to the next word. It returns false when the end of the
// stream is reached or an error occurs. Callers can stop early by no longer
// calling Scan.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Word returns the most recent word read by Scan.
func (s *Scanner) Word() Word {
	return Word{
		Text: s.s.Bytes(),
		Ref:  s.ref,
	}
}

// Progress returns the fraction of the stream that has been read.
func (s *Scanner) Progress() float64 {
	if s.size <= 0 {
		return 1
	}
	return min(float64(s.r.n)/float64(s.size), 1)
}

// Err returns the first error encountered. Malformed UTF-8 is reported as an
// error wrapping utf8util.ErrBadSequence or utf8util.ErrIncompleteSequence.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// splitWords skips separators and returns the next word. Separators are
// consumed as soon as they are seen so that the buffer only ever needs to
// hold a single word.
func (s *Scanner) splitWords(data []byte, atEOF bool) (int, []byte, error) {
	lineStart := s.lineStart

	start := 0
	for start < len(data) && !IsWordByte(data[start]) {
		if data[start] == '\n' {
			lineStart = s.offset + int64(start) + 1
		}
		start++
	}
	if start == len(data) {
		return s.consume(start, lineStart, nil)
	}

	end := start
	for end < len(data) && IsWordByte(data[end]) {
		n, err := utf8util.SequenceLength(data[end:])
		if err != nil {
			if errors.Is(err, utf8util.ErrIncompleteSequence) && !atEOF {
				// The sequence continues in the next read.
				return s.consume(start, lineStart, nil)
			}
			return 0, nil, fmt.Errorf("%w at offset %d", err, s.offset+int64(end))
		}
		end += n
	}
	if end == len(data) && !atEOF {
		// Request more data. The word may continue.
		return s.consume(start, lineStart, nil)
	}

	s.ref = lineStart
	return s.consume(end, lineStart, data[start:end])
}

func (s *Scanner) consume(n int, lineStart int64, token []byte) (int, []byte, error) {
	s.offset += int64(n)
	s.lineStart = lineStart
	return n, token, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	//nolint:wrapcheck // error should not be wrapped
	return n, err
}
