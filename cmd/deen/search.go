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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-ding"
	"github.com/ianlewis/go-ding/entry"
	"github.com/ianlewis/go-ding/internal/folding"
	"github.com/ianlewis/go-ding/keyword"
)

const (
	highlightStart = "\x1b[1;31m"
	highlightEnd   = "\x1b[0m"
)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search the dictionary",
	ArgsUsage: "TERMS...",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "results",
			Usage:   "show at most `N` entries",
			Aliases: []string{"n"},
		},
	},
	OnUsageError: usageError,
	Action:       runSearch,
}

func runSearch(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: no search terms", ErrFlagParse)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	maxResults := cfg.Results
	if c.IsSet("results") {
		maxResults = c.Int("results")
	}

	d, err := ding.Open(c.Context, cfg.Root, &ding.Options{
		Logger: newLogger(c, cfg),
	})
	if err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return err
	}
	defer d.Close()

	result, kw, err := d.Query(c.Context, query, maxResults)
	if err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return err
	}

	r := &renderer{
		w:         c.App.Writer,
		highlight: isTerminal(c.App.Writer),
		ascii:     !utf8Locale(),
	}
	return r.render(result, kw)
}

// renderer prints search results.
type renderer struct {
	w io.Writer

	// highlight marks keywords with ANSI escape codes.
	highlight bool

	// ascii replaces umlauts and ß with ASCII digraphs.
	ascii bool
}

// render prints the entries of result with the best match last.
func (r *renderer) render(result *ding.Result, kw *keyword.Set) error {
	if result.TotalCount == 0 {
		_, err := fmt.Fprintf(r.w, "no matches for %q\n", r.fold(kw.String()))
		//nolint:wrapcheck // error should not be wrapped
		return err
	}

	for i := len(result.Entries) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(r.w, r.line(result.Entries[i], kw)); err != nil {
			//nolint:wrapcheck // error should not be wrapped
			return err
		}
	}

	_, err := fmt.Fprintf(r.w, "showing %d of %d - best match last\n", result.EntryCount(), result.TotalCount)
	//nolint:wrapcheck // error should not be wrapped
	return err
}

func (r *renderer) line(e *entry.Entry, kw *keyword.Set) string {
	s := e.String()
	if r.highlight {
		s = highlight(s, kw)
	}
	return r.fold(s)
}

func (r *renderer) fold(s string) string {
	if !r.ascii {
		return s
	}
	folded, _, err := transform.String(folding.ASCIIFolder{}, s)
	if err != nil {
		return s
	}
	return folded
}

// highlight wraps every keyword occurrence in s in ANSI escape codes.
func highlight(s string, kw *keyword.Set) string {
	var b strings.Builder
	from := 0
	for from < len(s) {
		offset, i := kw.FindFirst(s, from, len(s))
		if offset < 0 {
			break
		}
		end := offset + len(kw.Keyword(i))
		b.WriteString(s[from:offset])
		b.WriteString(highlightStart)
		b.WriteString(s[offset:end])
		b.WriteString(highlightEnd)
		from = end
	}
	b.WriteString(s[from:])
	return b.String()
}

func isTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// utf8Locale returns true unless the locale from the environment names a
// character set other than UTF-8. An unset locale is assumed to be UTF-8.
func utf8Locale() bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if v == "C" || v == "POSIX" {
			return false
		}
		_, charset, found := strings.Cut(v, ".")
		if !found {
			return true
		}
		charset, _, _ = strings.Cut(charset, "@")
		charset = strings.ToLower(strings.ReplaceAll(charset, "-", ""))
		return charset == "utf8"
	}
	return true
}
