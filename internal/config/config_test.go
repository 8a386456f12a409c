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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// These tests modify the environment and so are not run in parallel.

// unsetenv unsets the environment variables for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoad_defaults(t *testing.T) {
	unsetenv(t, "DEEN_ROOT", "DEEN_RESULTS", "DEEN_TRACE", "DEEN_COMMIT_EVERY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Config{
		Results:     10,
		CommitEvery: 512,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
}

func TestLoad_env(t *testing.T) {
	t.Setenv("DEEN_ROOT", "/tmp/deen")
	t.Setenv("DEEN_RESULTS", "25")
	t.Setenv("DEEN_TRACE", "true")
	unsetenv(t, "DEEN_COMMIT_EVERY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Config{
		Root:        "/tmp/deen",
		Results:     25,
		Trace:       true,
		CommitEvery: 512,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
}

func TestLoad_file(t *testing.T) {
	unsetenv(t, "DEEN_ROOT", "DEEN_TRACE", "DEEN_COMMIT_EVERY")
	t.Setenv("DEEN_RESULTS", "3")

	path := filepath.Join(t.TempDir(), "config.toml")
	data := "root = \"/srv/deen\"\nresults = 50\ncommit_every = 64\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The environment overrides the file.
	want := &Config{
		Root:        "/srv/deen",
		Results:     3,
		CommitEvery: 64,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
}

func TestLoad_invalid(t *testing.T) {
	unsetenv(t, "DEEN_ROOT", "DEEN_TRACE", "DEEN_COMMIT_EVERY")
	t.Setenv("DEEN_RESULTS", "0")

	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("unexpected error, got: %v, want: %v", err, ErrInvalid)
	}
}

func TestLoad_missingFile(t *testing.T) {
	unsetenv(t, "DEEN_ROOT", "DEEN_RESULTS", "DEEN_TRACE", "DEEN_COMMIT_EVERY")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
