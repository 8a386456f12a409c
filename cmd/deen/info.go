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
	"time"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-ding"
)

var infoCommand = &cli.Command{
	Name:         "info",
	Usage:        "print information about the installed dictionary",
	OnUsageError: usageError,
	Action:       runInfo,
}

func runInfo(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	d, err := ding.Open(c.Context, cfg.Root, &ding.Options{
		Logger: newLogger(c, cfg),
	})
	if err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return err
	}
	defer d.Close()

	stats, err := d.Stats(c.Context)
	if err != nil {
		//nolint:wrapcheck // error should not be wrapped
		return err
	}
	info := d.Info()

	tbl := table.New("Property", "Value").WithWriter(c.App.Writer)
	tbl.AddRow("Root", cfg.Root)
	tbl.AddRow("Version", info.Version)
	tbl.AddRow("Source", info.Source)
	tbl.AddRow("Size", fmt.Sprintf("%d bytes", info.Size))
	tbl.AddRow("Lines", info.Lines)
	tbl.AddRow("Words", info.Words)
	tbl.AddRow("Prefixes", stats.Prefixes)
	tbl.AddRow("Refs", stats.Refs)
	tbl.AddRow("Installed", info.InstalledAt.Local().Format(time.DateTime))
	tbl.Print()

	return nil
}
