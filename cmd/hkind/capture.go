package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/heapkind/manifest"
	"github.com/chazu/heapkind/snapshot"
)

// parseStarts reads block start offsets separated by whitespace or commas.
// Offsets may be decimal or 0x-prefixed hex; '#' starts a comment line.
func parseStarts(data string) ([]int, error) {
	var starts []int
	for n, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			v, err := strconv.ParseInt(f, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid offset %q: %w", n+1, f, err)
			}
			starts = append(starts, int(v))
		}
	}
	return starts, nil
}

// captureArena snapshots the arena at arenaPath using the block starts listed
// in startsPath, and writes the result to the manifest's snapshot path.
func captureArena(m *manifest.Manifest, arenaPath, startsPath string) (*snapshot.Snapshot, string, error) {
	arena, err := os.ReadFile(arenaPath)
	if err != nil {
		return nil, "", fmt.Errorf("cannot read arena: %w", err)
	}
	data, err := os.ReadFile(startsPath)
	if err != nil {
		return nil, "", fmt.Errorf("cannot read block starts: %w", err)
	}
	starts, err := parseStarts(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", startsPath, err)
	}

	s, err := snapshot.Capture(arena, starts, m.Layout(), snapshot.Options{
		Target: m.Target.Name,
		Strict: m.Snapshot.Strict,
	})
	if err != nil {
		return nil, "", err
	}

	out := m.SnapshotPath()
	if err := snapshot.WriteFile(out, s); err != nil {
		return nil, "", err
	}
	return s, out, nil
}
