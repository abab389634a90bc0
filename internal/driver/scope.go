// Package driver is the refactor pipeline callers never see directly:
// discover files, parse each with a cst.Parser, run every query.Fixer
// against it, re-serialize, diff, optionally prompt interactively, then
// write the result back atomically with a transaction log — the Go shape
// of bowler.tool.BowlerTool's run() plus the file-discovery and
// atomic-write machinery the teacher built as core.FileWalker and
// core.AtomicWriter.
package driver

import "runtime"

// Scope describes which files a Run should discover, generalizing
// core.FileScope to a single-language (pylite) walk instead of the
// teacher's multi-provider one.
type Scope struct {
	Path           string
	Include        []string
	Exclude        []string
	MaxDepth       int
	MaxFiles       int
	FollowSymlinks bool
}

// DefaultScope walks path for every ".py" file, following no symlinks and
// with no depth or count limit.
func DefaultScope(path string) Scope {
	return Scope{
		Path:    path,
		Include: []string{"**/*.py"},
		Exclude: []string{"**/.git/**", "**/__pycache__/**"},
	}
}

func defaultWorkerCount() int {
	n := runtime.NumCPU() * 2
	if n < 2 {
		return 2
	}
	return n
}
