// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-ding"
	"github.com/ianlewis/go-ding/internal/testutil"
	"github.com/ianlewis/go-ding/keyword"
)

// These tests modify the environment and so are not run in parallel.

var testLines = []string{
	"Haus {n}; Gebäude {n} | Familie {f} :: house; building | family",
	"Hausaufgabe {f} :: homework",
	"König {m} :: king",
}

// setenv isolates the app from the user's configuration and locale.
func setenv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LANG", "en_US.UTF-8")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	for _, k := range []string{"DEEN_ROOT", "DEEN_RESULTS", "DEEN_TRACE", "DEEN_COMMIT_EVERY"} {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newDeenApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.RunContext(context.Background(), append([]string{"deen"}, args...))
	return stdout.String(), stderr.String(), err
}

func installTestDict(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	source := testutil.MakeTempDING(t, testLines, &testutil.MakeDINGOptions{
		MinSize: 4096,
	})
	_, stderr, err := runApp(t, "--root", root, "install", source)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if !strings.Contains(stderr, "done") {
		t.Errorf("install: want progress ending in done, got %q", stderr)
	}
	return root
}

func TestSearch(t *testing.T) {
	setenv(t)
	root := installTestDict(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "best match last",
			args: []string{"--root", root, "search", "haus"},
			want: "Hausaufgabe {f} :: homework\n" +
				"Haus {n}; Gebäude {n} | Familie {f} :: house; building | family\n" +
				"showing 2 of 2 - best match last\n",
		},
		{
			name: "limited",
			args: []string{"--root", root, "search", "-n", "1", "haus"},
			want: "Haus {n}; Gebäude {n} | Familie {f} :: house; building | family\n" +
				"showing 1 of 2 - best match last\n",
		},
		{
			name: "default action",
			args: []string{"--root", root, "king"},
			want: "König {m} :: king\n" +
				"showing 1 of 1 - best match last\n",
		},
		{
			name: "no match",
			args: []string{"--root", root, "search", "Flugzeug"},
			want: "no matches for \"FLUGZEUG\"\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _, err := runApp(t, tc.args...)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSearch_ResultsFromEnv(t *testing.T) {
	setenv(t)
	root := installTestDict(t)
	t.Setenv("DEEN_RESULTS", "1")

	got, _, err := runApp(t, "--root", root, "haus")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.HasSuffix(got, "showing 1 of 2 - best match last\n") {
		t.Errorf("search: got %q", got)
	}
}

func TestInfo(t *testing.T) {
	setenv(t)
	root := installTestDict(t)

	got, _, err := runApp(t, "--root", root, "info")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{root, testutil.Header[len("# Version :: "):], "Prefixes"} {
		if !strings.Contains(got, want) {
			t.Errorf("info: want %q in output %q", want, got)
		}
	}
}

func TestErrors(t *testing.T) {
	setenv(t)
	root := t.TempDir()

	tests := []struct {
		name string
		args []string
		err  error
		code int
	}{
		{
			name: "not installed",
			args: []string{"--root", root, "search", "haus"},
			err:  ding.ErrNotInstalled,
			code: ExitCodeUnknownError,
		},
		{
			name: "install without file",
			args: []string{"--root", root, "install"},
			err:  ErrFlagParse,
			code: ExitCodeFlagParseError,
		},
		{
			name: "search without terms",
			args: []string{"--root", root, "search"},
			err:  ErrFlagParse,
			code: ExitCodeFlagParseError,
		},
		{
			name: "unknown flag",
			args: []string{"--root", root, "search", "--bogus", "haus"},
			err:  ErrFlagParse,
			code: ExitCodeFlagParseError,
		},
		{
			name: "too small to install",
			args: []string{"--root", root, "install", testutil.MakeTempDING(t, testLines, nil)},
			err:  ding.ErrTooSmall,
			code: ExitCodeUnknownError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runApp(t, tc.args...)
			if !errors.Is(err, tc.err) {
				t.Fatalf("want %v, got %v", tc.err, err)
			}
			if got, want := exitCode(err), tc.code; got != want {
				t.Errorf("exitCode: want %d, got %d", want, got)
			}
		})
	}
}

func TestExitCode_Cancelled(t *testing.T) {
	t.Parallel()

	if got, want := exitCode(ding.ErrCancelled), ExitCodeCancelled; got != want {
		t.Errorf("exitCode: want %d, got %d", want, got)
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{
			name:  "single",
			text:  "Haus {n} :: house",
			query: "haus",
			want:  highlightStart + "Haus" + highlightEnd + " {n} :: house",
		},
		{
			name:  "umlaut",
			text:  "König {m} :: king",
			query: "könig king",
			want:  highlightStart + "König" + highlightEnd + " {m} :: " + highlightStart + "king" + highlightEnd,
		},
		{
			name:  "none",
			text:  "Haus {n} :: house",
			query: "baum",
			want:  "Haus {n} :: house",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, highlight(tc.text, keyword.Parse(tc.query))); diff != "" {
				t.Errorf("highlight (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_ASCII(t *testing.T) {
	t.Parallel()

	r := &renderer{ascii: true}
	if got, want := r.fold("Straße; König; Übung"), "Strasse; Koenig; UEbung"; got != want {
		t.Errorf("fold: want %q, got %q", want, got)
	}
}

func TestUTF8Locale(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"", true},
		{"C", false},
		{"POSIX", false},
		{"en_US.UTF-8", true},
		{"de_DE.utf8", true},
		{"de_DE.UTF-8@euro", true},
		{"de_DE.ISO-8859-1", false},
		{"de_DE", true},
	}

	for _, tc := range tests {
		t.Setenv("LC_ALL", "")
		t.Setenv("LC_CTYPE", "")
		t.Setenv("LANG", tc.lang)
		if got := utf8Locale(); got != tc.want {
			t.Errorf("utf8Locale() with LANG=%q: want %v, got %v", tc.lang, tc.want, got)
		}
	}
}
