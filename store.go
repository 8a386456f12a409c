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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// IndexingDepth is the number of codepoints of a word that are indexed.
	IndexingDepth = 4

	// IndexingMin is the minimum length of an indexed word.
	IndexingMin = 3

	// DefaultResults is the default maximum number of search results.
	DefaultResults = 10
)

// Names of the files in a root directory.
const (
	DataFile     = "de-en.txt"
	IndexFile    = "deen.idx.sqlite3"
	ManifestFile = "deen.manifest"
)

// manifestFormat is the version of the manifest file format.
const manifestFormat = 1

// versionPrefix starts the header line holding the dictionary's version.
const versionPrefix = "# Version ::"

// errManifestFormat indicates a manifest written by an unsupported version.
var errManifestFormat = errors.New("unsupported manifest format")

// DataPath returns the path of the dictionary data file in root.
func DataPath(root string) string {
	return filepath.Join(root, DataFile)
}

// IndexPath returns the path of the prefix index in root.
func IndexPath(root string) string {
	return filepath.Join(root, IndexFile)
}

// ManifestPath returns the path of the install manifest in root.
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFile)
}

// Info describes an installed dictionary.
type Info struct {
	// Format is the manifest format version.
	Format int `msgpack:"format"`

	// Version is the dictionary's version from its header, if any.
	Version string `msgpack:"version"`

	// Source is the path the dictionary was installed from.
	Source string `msgpack:"source"`

	// Size is the size of the data file in bytes.
	Size int64 `msgpack:"size"`

	// Lines is the number of lines holding words.
	Lines int64 `msgpack:"lines"`

	// Words is the number of words read.
	Words int64 `msgpack:"words"`

	// Prefixes is the number of (prefix, ref) pairs written to the index.
	Prefixes int64 `msgpack:"prefixes"`

	// InstalledAt is when the install completed.
	InstalledAt time.Time `msgpack:"installed_at"`
}

func writeManifest(path string, info *Info) error {
	b, err := msgpack.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	// Write to a temporary file first so that a manifest is never partial.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil { //nolint:gosec // the manifest is not secret.
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func readManifest(path string) (*Info, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotInstalled, path)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var info Info
	if err := msgpack.Unmarshal(b, &info); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if info.Format != manifestFormat {
		return nil, fmt.Errorf("%w: %d", errManifestFormat, info.Format)
	}
	return &info, nil
}

// parseVersion returns the version from a dictionary's header line.
func parseVersion(line string) string {
	v, ok := strings.CutPrefix(line, versionPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// removeIfExists removes the file at path ignoring that it does not exist.
func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
