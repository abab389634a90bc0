package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// WalkResult is one discovered candidate file — core.WalkResult trimmed to
// drop the multi-language Language field this module doesn't need.
type WalkResult struct {
	Path  string
	Info  fs.FileInfo
	Error error
}

// Walker performs a parallel, glob-filtered directory traversal —
// core.FileWalker generalized to a single include/exclude glob set instead
// of per-provider language detection.
type Walker struct {
	workers    int
	bufferSize int
}

// NewWalker returns a Walker sized for I/O-bound work, 2x CPU cores.
func NewWalker() *Walker {
	return &Walker{workers: defaultWorkerCount(), bufferSize: 1000}
}

// Walk discovers files under scope.Path matching scope.Include and not
// scope.Exclude, streaming results as they're found.
func (w *Walker) Walk(ctx context.Context, scope Scope) (<-chan WalkResult, error) {
	if err := w.validateScope(scope); err != nil {
		return nil, err
	}

	results := make(chan WalkResult, w.bufferSize)
	paths := make(chan string, w.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go w.worker(ctx, paths, results, &wg)
	}

	go func() {
		defer close(paths)
		processed := 0
		var visited map[string]struct{}
		if scope.FollowSymlinks {
			visited = make(map[string]struct{})
			if resolved, err := filepath.EvalSymlinks(scope.Path); err == nil {
				visited[resolved] = struct{}{}
			}
		}
		w.scanDirectory(ctx, scope.Path, scope, paths, 0, &processed, visited)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

func (w *Walker) worker(ctx context.Context, paths <-chan string, results chan<- WalkResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			info, err := os.Stat(path)
			select {
			case <-ctx.Done():
				return
			case results <- WalkResult{Path: path, Info: info, Error: err}:
			}
		}
	}
}

func (w *Walker) scanDirectory(
	ctx context.Context,
	dirPath string,
	scope Scope,
	paths chan<- string,
	depth int,
	processed *int,
	visited map[string]struct{},
) {
	if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}
	if scope.MaxDepth > 0 && depth > scope.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		if w.matchesAny(fullPath, scope.Exclude) {
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 && scope.FollowSymlinks {
			resolved, err := filepath.EvalSymlinks(fullPath)
			if err != nil || resolved == "" {
				continue
			}
			if info, err := os.Stat(resolved); err == nil && info.IsDir() {
				if visited != nil {
					if _, seen := visited[resolved]; seen {
						continue
					}
					visited[resolved] = struct{}{}
				}
				w.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
			}
			continue
		}

		if entry.IsDir() {
			w.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
			continue
		}

		if len(scope.Include) == 0 || w.matchesAny(fullPath, scope.Include) {
			if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
				return
			}
			select {
			case <-ctx.Done():
				return
			case paths <- fullPath:
				*processed++
			}
		}
	}
}

func (w *Walker) matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.PathMatch(pattern, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func (w *Walker) validateScope(scope Scope) error {
	if scope.Path == "" {
		return fmt.Errorf("driver: scope path is required")
	}
	info, err := os.Stat(scope.Path)
	if err != nil {
		return fmt.Errorf("driver: cannot access %s: %w", scope.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("driver: %s is not a directory", scope.Path)
	}
	return nil
}
