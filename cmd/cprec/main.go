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

// Command cprec runs the resolver over one or more C source files and
// reports diagnostics. Multiple translation units on the command line are
// resolved concurrently, bounded by -j; each translation unit gets its own
// registry.Registry and runs single-threaded on its own goroutine, per
// spec.md §5's "no locking" invariant (registry.Registry panics if shared
// mutably across goroutines, so sharing one across TUs is not an option).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/cpre/cpre/config"
	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/registry"
	"github.com/cpre/cpre/resolver"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/sourceio"
	"github.com/cpre/cpre/token"
)

type includeDirFlag []string

func (d *includeDirFlag) String() string { return strings.Join(*d, ",") }
func (d *includeDirFlag) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cprec", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a cprec.yaml configuration file")
	parallelism := fs.Int("j", runtime.GOMAXPROCS(-1), "maximum number of translation units resolved concurrently")
	dump := fs.Bool("E", false, "print the resolved token sequence for each translation unit to stdout")
	var dirs includeDirFlag
	fs.Var(&dirs, "I", "additional include search directory, consulted before -config's include_dirs (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	sources := fs.Args()
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "cprec: no input files")
		return 2
	}

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cprec:", err)
			return 1
		}
		cfg = loaded
	}
	cfg.IncludeDirs = append(append([]string{}, []string(dirs)...), cfg.IncludeDirs...)

	results := resolveAll(sources, cfg, *parallelism)

	failed := false
	for _, res := range results {
		for _, line := range res.diagnostics {
			fmt.Fprintln(os.Stderr, line)
		}
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "cprec: %s: %v\n", res.path, res.err)
			failed = true
		}
		if res.failed {
			failed = true
		}
		if *dump && res.output != "" {
			fmt.Println(res.output)
		}
	}
	if failed {
		return 1
	}
	return 0
}

// tuResult is one translation unit's outcome, collected back on the main
// goroutine so all output ordering and exit-code decisions stay single
// threaded even though resolution itself ran concurrently.
type tuResult struct {
	path        string
	diagnostics []string
	err         error
	failed      bool
	output      string
}

func resolveAll(sources []string, cfg *config.Config, parallelism int) []tuResult {
	if parallelism < 1 {
		parallelism = 1
	}
	sem := semaphore.NewWeighted(int64(parallelism))
	ctx := context.Background()

	results := make([]tuResult, len(sources))
	var wg sync.WaitGroup
	for i, path := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = tuResult{path: path, err: err}
			continue
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = resolveOne(path, cfg)
		}(i, path)
	}
	wg.Wait()
	return results
}

// resolveOne resolves a single translation unit end to end: scan, seed
// config-supplied predefined macros, resolve, render any diagnostics, and
// (on -E) format the resolved token sequence. It owns its own Registry, per
// the single-goroutine-per-compilation rule above.
func resolveOne(path string, cfg *config.Config) tuResult {
	res := tuResult{path: path}

	fsys := sourceio.OSFileSystem{}
	src, err := fsys.Read(path)
	if err != nil {
		res.err = err
		return res
	}

	reg := registry.New()
	file := reg.NewFile(path, src, token.Source, nil)

	scanner := sourceio.CScanner{}
	tokens, err := scanner.Scan(src, file.ID, file.Table)
	if err != nil {
		res.err = err
		return res
	}
	file.Tokens = tokens

	if err := seedDefines(file, cfg.Defines); err != nil {
		res.err = err
		return res
	}

	sink := &orderedSink{}
	diags := diag.NewHandler(sink)

	r := resolver.New(reg, file, diags, fsys, scanner, cfg.IncludeDirs)
	buf, resolveErr := r.Resolve()

	files := fileIndex(reg)
	for _, d := range sink.entries {
		res.diagnostics = append(res.diagnostics, renderDiagnostic(d, files))
	}
	if resolveErr != nil && diags.ErrorCount() == 0 {
		// Every fatal resolver error is also reported to diags (see
		// resolver.Resolver.fatalf), so this only fires for a bug; surface it
		// rather than silently dropping it.
		res.err = resolveErr
	}
	if diags.ErrorCount() > 0 {
		res.failed = true
	}
	if buf != nil {
		res.output = formatResolved(buf)
	}
	return res
}

// seedDefines applies cfg's predefined macros (as if by `-D NAME=value`) to
// file's own defines table before resolution starts. registry.File has no
// fallback to Registry.Builtins() (resolver/macro.go's expandIdent looks
// only at r.file.LookupDefine), so predefines must land directly on every
// top-level translation unit rather than the shared builtin file.
func seedDefines(file *registry.File, defines []config.Define) error {
	for _, d := range defines {
		body, err := sourceio.ScanMacroValue(d.Value)
		if err != nil {
			return fmt.Errorf("predefined macro %q: %w", d.Name, err)
		}
		file.Define(d.Name, &token.Define{Name: d.Name, Body: body}, token.Nil)
	}
	return nil
}

// orderedSink buffers diagnostics in report order (unlike diag.Collector,
// which splits errors and warnings into separate slices); cprec wants to
// print them interleaved, in the order the resolver raised them.
type orderedSink struct {
	entries []diag.Diagnostic
}

func (s *orderedSink) Error(d diag.Diagnostic)   { s.entries = append(s.entries, d) }
func (s *orderedSink) Warning(d diag.Diagnostic) { s.entries = append(s.entries, d) }

var _ diag.Sink = (*orderedSink)(nil)

// fileIndex maps every FileID reg knows about (the top-level source plus
// any headers pulled in transitively via #include) back to its
// registry.File, so diagnostics can name a real path and quote the
// offending source line instead of a bare FileID.
func fileIndex(reg *registry.Registry) map[token.FileID]*registry.File {
	idx := map[token.FileID]*registry.File{token.BuiltinFile: reg.Builtins()}
	for _, f := range reg.Files() {
		idx[f.ID] = f
	}
	return idx
}

// renderDiagnostic formats d with diag.Render, quoting the offending source
// line when the file is known, and substitutes the FileID placeholder
// Render prints (e.g. "source#1") for the real path, so cprec's output
// names files the way a user expects without diag.Render itself needing to
// depend on registry for path lookups.
func renderDiagnostic(d diag.Diagnostic, files map[token.FileID]*registry.File) string {
	f, ok := files[d.Span.File]
	if !ok {
		return diag.Render(d, "")
	}

	var src string
	if lines := strings.Split(string(f.Bytes), "\n"); d.Span.StartLine >= 1 && d.Span.StartLine <= len(lines) {
		src = lines[d.Span.StartLine-1]
	}

	rendered := diag.Render(d, src)
	return strings.Replace(rendered, d.Span.File.String()+":", f.Path+":", 1)
}

// formatResolved renders buf the way `cc -E` would: each token's printable
// text, space-separated, skipping the trailing EOF/EOT sentinel.
func formatResolved(buf *rtoken.Buffer) string {
	var b strings.Builder
	for i := 0; i < buf.Count(); i++ {
		tok := buf.Get(i)
		if tok.Kind == token.EOF || tok.Kind == token.EOT {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Printable())
	}
	return b.String()
}
