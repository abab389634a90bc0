// Package query is the fluent builder callers chain to describe a
// refactor: pick a selector, narrow it with filters, attach the rewrite
// callback(s), then Compile it for internal/driver.Run — the Go shape of bowler.query's
// Query class built on top of internal/selector, internal/pattern, and
// internal/callback.
package query

import (
	"fmt"
	"regexp"

	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/selector"
	"github.com/oxhq/refract/internal/xerrors"
)

// Filter decides whether a match should be acted on at all; returning
// false skips it without running any callback.
type Filter func(m pattern.Match, filename string) bool

// Callback performs (or declines to perform) the rewrite for one match. It
// mutates the matched subtree in place; a non-nil error aborts the file
// (except xerrors.RetryFile, which the driver ignores: it goes on with the
// next callback and does not requeue the file).
type Callback func(m pattern.Match, filename string) error

// Transform bundles one compiled selector with the filters and callbacks
// that run against every match it finds — bowler.types.Transform.
type Transform struct {
	PatternText string
	Compiled    *pattern.Pattern
	Filters     []Filter
	Callbacks   []Callback
}

// Fixer is one ready-to-run (pattern, filters, callbacks) triple the
// driver applies to a parsed file — the unit of work Query.compile()
// produces one of per Transform.
type Fixer struct {
	Pattern   *pattern.Pattern
	Filters   []Filter
	Callbacks []Callback
}

// ProcessorFunc runs once per file after its hunks are computed, and can
// veto writing them out by returning false — Query.process()'s callback.
type ProcessorFunc func(filename string, hunks []xerrors.Hunk) bool

// Query accumulates Transforms against a set of file paths. Builder
// methods return the Query itself for chaining; a method called with no
// prior selector, or an invalid selector/filter argument, records the
// first error it hits in err rather than panicking — Err and Compile
// surface it.
type Query struct {
	Paths           []string
	Transforms      []*Transform
	Processors      []ProcessorFunc
	FilenameMatcher func(string) bool
	Interactive     bool
	Write           bool
	Silent          bool
	InProcess       bool

	err error
}

// New starts a Query over the given file or directory paths.
func New(paths ...string) *Query {
	return &Query{
		Paths:           paths,
		FilenameMatcher: defaultFilenameMatcher,
	}
}

func defaultFilenameMatcher(name string) bool {
	return len(name) > 3 && name[len(name)-3:] == ".py"
}

// Err returns the first builder error recorded, or nil.
func (q *Query) Err() error { return q.err }

func (q *Query) fail(err error) *Query {
	if q.err == nil {
		q.err = err
	}
	return q
}

func (q *Query) addTransform(patternText string) *Query {
	if q.err != nil {
		return q
	}
	compiled, err := pattern.Compile(patternText)
	if err != nil {
		return q.fail(err)
	}
	q.Transforms = append(q.Transforms, &Transform{PatternText: patternText, Compiled: compiled})
	return q
}

func (q *Query) current() *Transform {
	if len(q.Transforms) == 0 {
		return nil
	}
	return q.Transforms[len(q.Transforms)-1]
}

// SelectRoot matches every node — select_root.
func (q *Query) SelectRoot() *Query { return q.addTransform(selector.Root()) }

// SelectModule matches an import of the given (possibly dotted) module —
// select_module.
func (q *Query) SelectModule(name string) *Query { return q.addTransform(selector.Module(name)) }

// SelectClass matches a class definition by name — select_class.
func (q *Query) SelectClass(name string) *Query { return q.addTransform(selector.Class(name)) }

// SelectSubclass matches a class definition that names baseName among its
// bases — select_subclass.
func (q *Query) SelectSubclass(baseName string) *Query {
	return q.addTransform(selector.Subclass(baseName))
}

// SelectAttribute matches a "self.<name>" access — select_attribute.
func (q *Query) SelectAttribute(name string) *Query {
	return q.addTransform(selector.Attribute(name))
}

// SelectMethod matches a function definition by name; pair with InClass to
// restrict it to one class the way bowler's select_method implicitly
// assumes a surrounding classdef — select_method.
func (q *Query) SelectMethod(name string) *Query { return q.addTransform(selector.Method(name)) }

// SelectFunction matches a function definition by name — select_function.
func (q *Query) SelectFunction(name string) *Query {
	return q.addTransform(selector.Function(name))
}

// SelectVar matches a "name = ..." assignment at any nesting depth —
// select_var.
func (q *Query) SelectVar(name string) *Query { return q.addTransform(selector.Var(name)) }

// SelectPattern compiles raw pattern-DSL text directly — select_pattern.
func (q *Query) SelectPattern(text string) *Query { return q.addTransform(selector.Pattern(text)) }

// IsFilename filters matches to files whose name matches include and not
// exclude (either may be empty to skip that half of the check) —
// Query.is_filename.
func (q *Query) IsFilename(include, exclude string) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("is_filename"))
	}
	var incRe, excRe *regexp.Regexp
	var err error
	if include != "" {
		if incRe, err = regexp.Compile(include); err != nil {
			return q.fail(err)
		}
	}
	if exclude != "" {
		if excRe, err = regexp.Compile(exclude); err != nil {
			return q.fail(err)
		}
	}
	t.Filters = append(t.Filters, func(_ pattern.Match, filename string) bool {
		if incRe != nil && !incRe.MatchString(filename) {
			return false
		}
		if excRe != nil && excRe.MatchString(filename) {
			return false
		}
		return true
	})
	return q
}

// IsCall filters matches down to call sites (function_call/class_call
// captures present) — Query.is_call.
func (q *Query) IsCall() *Query { return q.requireCapture("function_call", "class_call") }

// IsDef filters matches down to definitions (function_def/class_def
// captures present) — Query.is_def.
func (q *Query) IsDef() *Query { return q.requireCapture("function_def", "class_def") }

func (q *Query) requireCapture(names ...string) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("is_call/is_def"))
	}
	t.Filters = append(t.Filters, func(m pattern.Match, _ string) bool {
		for _, n := range names {
			if _, ok := m.Captures[n]; ok {
				return true
			}
		}
		return false
	})
	return q
}

// InClass restricts matches to ones lexically inside a classdef named
// className (and, if includeSubclasses, its subclasses too, which this
// port can't resolve without whole-program type information — see
// DESIGN.md) — Query.in_class.
func (q *Query) InClass(className string, includeSubclasses bool) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("in_class"))
	}
	t.Filters = append(t.Filters, func(m pattern.Match, _ string) bool {
		return enclosingClassName(m.Node) == className
	})
	return q
}

// Fixer attaches a raw callback to the most recently selected transform,
// without any of the named rewrite helpers; it records an error when no
// selector has been chosen yet — Query.fixer's escape hatch.
func (q *Query) Fixer(cb Callback) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("fixer"))
	}
	t.Callbacks = append(t.Callbacks, cb)
	return q
}

// Process registers a whole-file processor that runs after a file's hunks
// are computed — Query.process.
func (q *Query) Process(p ProcessorFunc) *Query {
	q.Processors = append(q.Processors, p)
	return q
}

// Compile validates the Query and returns one Fixer per Transform, in
// order — Query.compile (defaulting to select_root() when nothing was
// selected, matching bowler's behavior of treating an empty Query as "dump
// the whole tree").
func (q *Query) Compile() ([]*Fixer, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.Transforms) == 0 {
		q.SelectRoot()
		if q.err != nil {
			return nil, q.err
		}
	}
	fixers := make([]*Fixer, 0, len(q.Transforms))
	for _, t := range q.Transforms {
		fixers = append(fixers, &Fixer{Pattern: t.Compiled, Filters: t.Filters, Callbacks: t.Callbacks})
	}
	return fixers, nil
}

func noSelectorErr(method string) error {
	return fmt.Errorf("query: %s called with no selector chosen yet", method)
}
