// Package process finds other running horizon processes. The bolt database
// is locked by the process that opened it, so the holder is looked up when
// opening fails.
package process

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/gops/goprocess"
)

// Instance is a running Go process.
type Instance struct {
	PID  int
	Exec string
	Path string
}

// Running returns the Go processes whose executable name or path contains
// name, ignoring case, ordered by pid. The current process is excluded.
func Running(name string) []Instance {
	self := os.Getpid()

	var out []Instance

	for _, p := range goprocess.FindAll() {
		if p.PID == self || !matches(p.Exec, p.Path, name) {
			continue
		}

		out = append(out, Instance{PID: p.PID, Exec: p.Exec, Path: p.Path})
	}

	slices.SortFunc(out, func(a, b Instance) int { return a.PID - b.PID })

	return out
}

func matches(exec, path, name string) bool {
	name = strings.ToLower(name)
	if name == "" {
		return false
	}

	return strings.Contains(strings.ToLower(exec), name) ||
		strings.Contains(strings.ToLower(filepath.Base(path)), name)
}
