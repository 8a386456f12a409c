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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-ding"
	"github.com/ianlewis/go-ding/internal/config"
	"github.com/ianlewis/go-ding/internal/logging"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeCancelled is the exit code when the command was interrupted.
	ExitCodeCancelled
)

// ErrDeen is a parent error for all command errors.
var ErrDeen = errors.New("deen")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrDeen)

var copyrightNames = []string{
	"2021 Google LLC",
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't want `deen --help haus` to look up a command.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ding.ErrCancelled):
		return ExitCodeCancelled
	default:
		return ExitCodeUnknownError
	}
}

func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

func newDeenApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search the DING German-English dictionary.",
		Description: strings.Join([]string{
			"DING dictionary utility written in Go.",
			"http://github.com/ianlewis/go-ding",
		}, "\n"),
		ArgsUsage: "[TERMS...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "install and search the dictionary in `DIR` (default: " + defaultRoot() + ")",
				Aliases: []string{"r"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE` (default: " + defaultConfigPath() + ")",
				Aliases: []string{"c"},
			},
			&cli.BoolFlag{
				Name:               "trace",
				Usage:              "print debug logs",
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError:    usageError,
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				check(cli.ShowAppHelp(c))
				return nil
			}
			if c.Bool("version") {
				return printVersion(c)
			}
			if c.NArg() > 0 {
				return runSearch(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			installCommand,
			searchCommand,
			infoCommand,
		},
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\n"), versionInfo.String())
	//nolint:wrapcheck // error should not be wrapped
	return err
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = defaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped
	}

	if c.IsSet("root") {
		cfg.Root = c.String("root")
	}
	if cfg.Root == "" {
		cfg.Root = defaultRoot()
	}
	if c.Bool("trace") {
		cfg.Trace = true
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg *config.Config) *log.Logger {
	return logging.New(c.App.ErrWriter, cfg.Trace)
}
