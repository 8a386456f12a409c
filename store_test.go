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
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestManifest(t *testing.T) {
	t.Parallel()

	path := ManifestPath(t.TempDir())
	want := &Info{
		Format:      manifestFormat,
		Version:     "1.9",
		Source:      "/tmp/de-en.txt",
		Size:        1234,
		Lines:       10,
		Words:       100,
		Prefixes:    50,
		InstalledAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := writeManifest(path, want); err != nil {
		t.Fatalf("writeManifest: %v", err)
	}

	got, err := readManifest(path)
	if err != nil {
		t.Fatalf("readManifest: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("readManifest (-want, +got):\n%s", diff)
	}
}

func TestManifest_Format(t *testing.T) {
	t.Parallel()

	path := ManifestPath(t.TempDir())
	if err := writeManifest(path, &Info{Format: manifestFormat + 1}); err != nil {
		t.Fatalf("writeManifest: %v", err)
	}
	if _, err := readManifest(path); !errors.Is(err, errManifestFormat) {
		t.Fatalf("readManifest: want %v, got %v", errManifestFormat, err)
	}
}

func TestManifest_Missing(t *testing.T) {
	t.Parallel()

	if _, err := readManifest(filepath.Join(t.TempDir(), ManifestFile)); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("readManifest: want %v, got %v", ErrNotInstalled, err)
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"# Version :: 1.9 2020-01-01\n": "1.9 2020-01-01",
		"# Version ::":                  "",
		"Haus {n} :: house\n":           "",
		"":                              "",
	}
	for line, want := range tests {
		if got := parseVersion(line); got != want {
			t.Errorf("parseVersion(%q): want %q, got %q", line, want, got)
		}
	}
}
