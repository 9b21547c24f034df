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

// Collector is a Sink that simply remembers every diagnostic it receives, in
// order. Used by tests that want to assert on the exact set of diagnostics a
// resolver run produced.
type Collector struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

var _ Sink = (*Collector)(nil)

func (c *Collector) Error(d Diagnostic) {
	c.Errors = append(c.Errors, d)
}

func (c *Collector) Warning(d Diagnostic) {
	c.Warnings = append(c.Warnings, d)
}
