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
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-ding"
)

var installCommand = &cli.Command{
	Name:         "install",
	Usage:        "install and index a DING dictionary",
	ArgsUsage:    "FILE",
	OnUsageError: usageError,
	Action:       runInstall,
}

type progress struct {
	state    ding.State
	fraction float64
}

func runInstall(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: install expects one FILE argument", ErrFlagParse)
	}
	source := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if err := ding.CheckFormat(source); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	g, ctx := errgroup.WithContext(c.Context)
	updates := make(chan progress)

	g.Go(func() error {
		defer close(updates)
		//nolint:wrapcheck // error should not be wrapped
		return ding.Install(ctx, cfg.Root, source, &ding.InstallOptions{
			Progress: func(s ding.State, f float64) {
				updates <- progress{s, f}
			},
			Logger:      newLogger(c, cfg),
			CommitEvery: cfg.CommitEvery,
		})
	})
	g.Go(func() error {
		for p := range updates {
			printProgress(c.App.ErrWriter, p)
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, ding.ErrCancelled) {
		fmt.Fprintln(c.App.ErrWriter, "cancelled")
	}
	//nolint:wrapcheck // error should not be wrapped
	return err
}

func printProgress(w io.Writer, p progress) {
	switch p.state {
	case ding.StateStarting:
		fmt.Fprintln(w, "installing...")
	case ding.StateIndexing:
		fmt.Fprintf(w, "\rindexing %3d%%", int(p.fraction*100))
	case ding.StateCompleted:
		fmt.Fprintln(w, "\rindexing 100%")
		fmt.Fprintln(w, "done")
	case ding.StateError:
		fmt.Fprintln(w)
	case ding.StateIdle:
	}
}
