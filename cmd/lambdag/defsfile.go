// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dagreduce/lambdag/defs"
	"github.com/dagreduce/lambdag/term"
)

// loadDefs reads a definitions file: one "name = term" binding per
// logical line, blank lines and lines starting with "#" ignored. This
// format is cmd/lambdag's own concern, not part of the definitions
// collaborator's contract, which only cares about the resulting
// defs.Defs.
func loadDefs(path string) (*defs.Defs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening defs file: %w", err)
	}
	defer f.Close()

	d := defs.New()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rhs, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("defs file line %d: expected \"name = term\", got %q", lineNo, line)
		}
		name = strings.TrimSpace(name)
		t, err := term.Parse(strings.TrimSpace(rhs))
		if err != nil {
			return nil, fmt.Errorf("defs file line %d: %w", lineNo, err)
		}
		d.Add(defs.Link(name), t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading defs file: %w", err)
	}
	return d, nil
}
