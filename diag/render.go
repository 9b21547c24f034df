// Copyright 2020-2025 Buf Technologies, Inc.
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

package diag

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Caret renders a single-line "^~~~" annotation under line, starting at the
// display column that corresponds to the byte offset col, for width bytes.
//
// Columns are measured in terminal cells via uniseg, not bytes or runes,
// because a caret under a line containing wide or combining characters must
// still land under the right glyph. This is grounded on the teacher's own
// practice of using uniseg for exactly this purpose when rendering
// diagnostics (experimental/report/width.go).
func Caret(line string, col, width int) string {
	if col > len(line) {
		col = len(line)
	}
	end := col + width
	if end > len(line) {
		end = len(line)
	}

	leadCells := uniseg.StringWidth(line[:col])
	markCells := uniseg.StringWidth(line[col:end])
	if markCells < 1 {
		markCells = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", leadCells))
	b.WriteByte('^')
	if markCells > 1 {
		b.WriteString(strings.Repeat("~", markCells-1))
	}
	return b.String()
}

// Render produces a plain-text, single-diagnostic rendering:
//
//	<file>:<line>:<col>: error: <message>
//	<source line>
//	   ^~~~
//
// This is intentionally minimal: full diagnostic formatting (colorized,
// multi-span, "note:" chaining) is out of scope per spec.md §1's
// "diagnostic formatting" non-goal. This exists only so the CLI driver has
// something reasonable to print.
func Render(d Diagnostic, sourceLine string) string {
	levelName := "error"
	if d.Level == Warning {
		levelName = "warning"
	}

	header := fmt.Sprintf("%s:%d:%d: %s: %s",
		d.Span.File, d.Span.StartLine, d.Span.StartCol, levelName, d.Message)

	if sourceLine == "" {
		return header
	}

	width := d.Span.EndByte - d.Span.StartByte
	if width <= 0 {
		width = 1
	}
	caret := Caret(sourceLine, d.Span.StartCol-1, width)
	return header + "\n" + sourceLine + "\n" + caret
}
