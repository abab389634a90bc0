package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/query"
	"github.com/oxhq/refract/internal/xerrors"
)

// Options configures a Run beyond what the Query itself carries.
type Options struct {
	AtomicConfig AtomicWriteConfig
	TxLogDir     string // default ".refract/transactions"
	Workers      int    // default 2x CPU cores; forced to 1 when Query.Interactive
	In           io.Reader
	Out          io.Writer
}

func (o Options) withDefaults() Options {
	if o.AtomicConfig == (AtomicWriteConfig{}) {
		o.AtomicConfig = DefaultAtomicConfig()
	}
	if o.TxLogDir == "" {
		o.TxLogDir = ".refract/transactions"
	}
	if o.Workers <= 0 {
		o.Workers = resolveWorkerCount(defaultWorkerCount())
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

// FileResult reports what happened to one discovered file.
type FileResult struct {
	FilePath   string
	MatchCount int
	Modified   bool
	Diff       string
	Error      string
}

// Result is the outcome of one Run across every discovered file —
// core.FileTransformResult narrowed to this module's single-language model.
type Result struct {
	FilesScanned  int
	FilesModified int
	TotalMatches  int
	Files         []FileResult
	TransactionID string
	Quit          bool
}

// Run discovers every file q.Paths names (directories are walked for
// ".py" files matching q.FilenameMatcher), runs q's compiled Fixers
// against each, and — when q.Write is set — writes accepted changes back
// atomically under a transaction log. With q.Write unset, Run only
// computes diffs: bowler.query.Query's distinction between .diff() (dry
// run) and .write()/.execute(interactive=True).
func Run(ctx context.Context, lang cst.ExprParser, q *query.Query, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	fixers, err := q.Compile()
	if err != nil {
		return nil, err
	}

	files, err := discoverFiles(q)
	if err != nil {
		return nil, err
	}

	atomicWriter := NewAtomicWriter(opts.AtomicConfig)
	defer atomicWriter.Cleanup()

	var (
		txManager *transactionManager
		tx        *transactionLog
		txActive  bool
	)
	if q.Write {
		txManager = newTransactionManager(opts.TxLogDir, atomicWriter)
		tx, err = txManager.begin(fmt.Sprintf("refactor %d file(s)", len(files)))
		if err != nil {
			return nil, err
		}
		txActive = true
		defer func() {
			if txActive {
				txManager.rollback()
			}
		}()
	}

	p := newPrompter(opts.In, opts.Out)

	result := &Result{FilesScanned: len(files)}

	runOne := func(path string) FileResult {
		detail, quit := processFile(ctx, lang, fixers, q, path, atomicWriter, txManager, tx, p)
		if quit {
			result.Quit = true
		}
		return detail
	}

	if q.Interactive || opts.Workers == 1 {
		for _, path := range files {
			if result.Quit {
				break
			}
			detail := runOne(path)
			result.Files = append(result.Files, detail)
			result.TotalMatches += detail.MatchCount
			if detail.Modified {
				result.FilesModified++
			}
		}
	} else {
		sem := make(chan struct{}, opts.Workers)
		resultsCh := make(chan FileResult, len(files))
		var wg sync.WaitGroup
		for _, path := range files {
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				resultsCh <- runOne(path)
			}(path)
		}
		go func() {
			wg.Wait()
			close(resultsCh)
		}()
		for detail := range resultsCh {
			result.Files = append(result.Files, detail)
			result.TotalMatches += detail.MatchCount
			if detail.Modified {
				result.FilesModified++
			}
		}
	}

	hasErrors := false
	for _, f := range result.Files {
		if f.Error != "" {
			hasErrors = true
			break
		}
	}

	if q.Write && txManager != nil {
		result.TransactionID = tx.ID
		if hasErrors || result.Quit {
			if err := txManager.rollback(); err != nil {
				return result, err
			}
		} else {
			if err := txManager.commit(); err != nil {
				return result, err
			}
			txActive = false
		}
	}

	return result, nil
}

// processFile parses one file, applies every fixer's matches in turn, and
// — if anything changed — validates, diffs, runs the processors, optionally
// reviews, and writes the result. The second return value reports whether the interactive
// reviewer asked to quit the whole run.
func processFile(
	ctx context.Context,
	lang cst.ExprParser,
	fixers []*query.Fixer,
	q *query.Query,
	path string,
	atomicWriter *AtomicWriter,
	txManager *transactionManager,
	tx *transactionLog,
	p *prompter,
) (FileResult, bool) {
	detail := FileResult{FilePath: path}

	select {
	case <-ctx.Done():
		detail.Error = ctx.Err().Error()
		return detail, false
	default:
	}

	content, err := os.ReadFile(path)
	if err != nil {
		detail.Error = fmt.Sprintf("reading file: %v", err)
		return detail, false
	}
	original := string(content)

	tree, err := lang.Parse(original)
	if err != nil {
		detail.Error = xerrors.NewParseFailure(path, err).Error()
		return detail, false
	}

	for _, fixer := range fixers {
		matches := fixer.Pattern.FindAll(tree.Root, false)
		for _, m := range matches {
			if !runFilters(fixer.Filters, m, path) {
				continue
			}
			detail.MatchCount++
			for _, cb := range fixer.Callbacks {
				if err := cb(m, path); err != nil {
					if _, ok := err.(*xerrors.RetryFile); ok {
						continue
					}
					detail.Error = err.Error()
					return detail, false
				}
			}
		}
	}

	if detail.MatchCount == 0 {
		return detail, false
	}

	rewritten := tree.String()
	if rewritten == original {
		return detail, false
	}

	if !lang.Valid(rewritten) {
		diffText, _ := unifiedDiff(path, original, rewritten)
		hunks := splitHunks(diffText)
		detail.Error = xerrors.NewBadTransform(path, hunks, nil).Error()
		return detail, false
	}

	diffText, err := unifiedDiff(path, original, rewritten)
	if err != nil {
		detail.Error = fmt.Sprintf("diffing: %v", err)
		return detail, false
	}
	detail.Diff = diffText
	hunks := splitHunks(diffText)

	for _, proc := range q.Processors {
		if !proc(path, hunks) {
			return detail, false
		}
	}

	accepted := hunks
	quit := false
	if q.Interactive {
		accepted, err = p.reviewHunks(path, hunks)
		if err != nil {
			if _, ok := err.(*xerrors.ErrQuit); ok {
				quit = true
			} else {
				detail.Error = err.Error()
				return detail, false
			}
		}
	}

	if len(accepted) == 0 {
		return detail, quit
	}

	finalText, err := applyAcceptedHunks(path, original, rewritten, accepted, hunks)
	if err != nil {
		detail.Error = err.Error()
		return detail, quit
	}
	if finalText == original {
		return detail, quit
	}

	if !q.Write {
		return detail, quit
	}
	detail.Modified = true

	if txManager != nil {
		if _, err := txManager.recordModify(path); err != nil {
			detail.Error = err.Error()
			detail.Modified = false
			return detail, quit
		}
	}

	writeErr := atomicWriter.WriteFile(path, finalText)
	if txManager != nil {
		txManager.complete(path, writeErr)
	}
	if writeErr != nil {
		detail.Error = fmt.Sprintf("writing file: %v", writeErr)
		detail.Modified = false
	}

	return detail, quit
}

func runFilters(filters []query.Filter, m pattern.Match, filename string) bool {
	for _, f := range filters {
		if !f(m, filename) {
			return false
		}
	}
	return true
}

func discoverFiles(q *query.Query) ([]string, error) {
	matcher := q.FilenameMatcher
	if matcher == nil {
		matcher = func(string) bool { return true }
	}

	var files []string
	for _, p := range q.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("driver: cannot access %s: %w", p, err)
		}
		if !info.IsDir() {
			if matcher(p) {
				files = append(files, p)
			}
			continue
		}

		walker := NewWalker()
		scope := DefaultScope(p)
		results, err := walker.Walk(context.Background(), scope)
		if err != nil {
			return nil, err
		}
		for r := range results {
			if r.Error != nil {
				continue
			}
			if matcher(r.Path) {
				files = append(files, r.Path)
			}
		}
	}
	return files, nil
}

func resolveWorkerCount(defaultWorkers int) int {
	value := os.Getenv("REFRACT_WORKERS")
	if value == "" {
		return defaultWorkers
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultWorkers
	}
	return n
}
