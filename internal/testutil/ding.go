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

// Package testutil implements helpers for creating test dictionaries.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Header is the comment line written at the start of test dictionaries.
const Header = "# Version :: test 1.0 2025-01-01"

// MakeDINGOptions are options for MakeTempDING.
type MakeDINGOptions struct {
	// Ext is an optional file extension for the dictionary file. Defaults to
	// '.txt.dz' if DictZip is true. Otherwise '.txt'.
	Ext string

	// DictZip indicates that the file should be compressed with DictZip.
	DictZip bool

	// MinSize pads the dictionary with comment lines until it is at least
	// MinSize bytes long.
	MinSize int
}

// GetExt returns the file extension for the dictionary file.
func (o *MakeDINGOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		if o.DictZip {
			return ".txt.dz"
		}
	}
	return ".txt"
}

// MakeDING creates the contents of a DING dictionary file from entry lines.
// The header comment is always the first line.
func MakeDING(lines []string, minSize int) []byte {
	var b strings.Builder
	b.WriteString(Header + "\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	for b.Len() < minSize {
		b.WriteString("# padding to reach the minimum dictionary size\n")
	}
	return []byte(b.String())
}

// MakeTempDING writes a DING dictionary file to a temporary directory and
// returns its path.
func MakeTempDING(t *testing.T, lines []string, opts *MakeDINGOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeDINGOptions{}
	}

	path := filepath.Join(t.TempDir(), "de-en"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := MakeDING(lines, opts.MinSize)

	if opts.DictZip {
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(d); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	} else {
		if _, err := f.Write(d); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
