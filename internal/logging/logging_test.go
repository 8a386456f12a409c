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

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		trace     bool
		wantDebug bool
	}{
		{
			name:      "info",
			trace:     false,
			wantDebug: false,
		},
		{
			name:      "trace",
			trace:     true,
			wantDebug: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := New(&buf, test.trace)
			l.Debug("looking up prefix", "prefix", "HAUS")
			l.Info("search complete", "total", 1)

			out := buf.String()
			if got, want := strings.Contains(out, "looking up prefix"), test.wantDebug; got != want {
				t.Errorf("debug written, got: %v, want: %v\n%s", got, want, out)
			}
			if !strings.Contains(out, "search complete") {
				t.Errorf("info message missing:\n%s", out)
			}
			if !strings.Contains(out, Prefix) {
				t.Errorf("prefix missing:\n%s", out)
			}
		})
	}
}

func TestOr(t *testing.T) {
	t.Parallel()

	if Or(nil) == nil {
		t.Fatalf("Or(nil) returned nil")
	}
	l := New(&bytes.Buffer{}, false)
	if Or(l) != l {
		t.Errorf("Or did not return the given logger")
	}
}
