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

// Package logging creates the loggers used by deen.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is the prefix of every log line.
const Prefix = "deen"

// New returns a logger writing to w. Debug messages are only written when
// trace is true.
func New(w io.Writer, trace bool) *log.Logger {
	level := log.InfoLevel
	if trace {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: trace,
		TimeFormat:      time.TimeOnly,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{
		Level: log.FatalLevel,
	})
}

// Or returns l, or a discarding logger if l is nil.
func Or(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
