package query

import (
	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/callback"
	"github.com/oxhq/refract/internal/pattern"
)

// Rename rewrites every occurrence of oldName the current selector's
// matches hold to newName — Query.rename, wired to callback.Rename.
func (q *Query) Rename(oldName, newName string) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("rename"))
	}
	t.Callbacks = append(t.Callbacks, func(m pattern.Match, filename string) error {
		return callback.Rename(oldName, newName, m)
	})
	return q
}

// AddArgument inserts a new parameter/argument into every matched
// funcdef/call — Query.add_argument.
func (q *Query) AddArgument(name string, value cst.Node, positional bool, after string, annotation cst.Node) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("add_argument"))
	}
	t.Callbacks = append(t.Callbacks, func(m pattern.Match, filename string) error {
		return callback.AddArgument(m, name, value, positional, after, annotation)
	})
	return q
}

// ModifyArgument edits an existing argument's name/annotation/default —
// Query.modify_argument.
func (q *Query) ModifyArgument(name, newName string, annotation, defaultValue cst.Node) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("modify_argument"))
	}
	t.Callbacks = append(t.Callbacks, func(m pattern.Match, filename string) error {
		return callback.ModifyArgument(m, name, newName, annotation, defaultValue)
	})
	return q
}

// RemoveArgument deletes an existing argument — Query.remove_argument.
func (q *Query) RemoveArgument(name string) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("remove_argument"))
	}
	t.Callbacks = append(t.Callbacks, func(m pattern.Match, filename string) error {
		return callback.RemoveArgument(m, name)
	})
	return q
}

// Encapsulate synthesizes a property getter/setter for the matched
// attribute and rewrites its accesses — Query.encapsulate. internalName
// defaults to "_"+attribute name when empty.
func (q *Query) Encapsulate(internalName string) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("encapsulate"))
	}
	t.Callbacks = append(t.Callbacks, callback.Encapsulate(internalName))
	return q
}

// Move always fails at run time with ErrUnimplemented — see
// internal/callback.Move's doc comment for why this isn't silently a
// no-op the way the original left it.
func (q *Query) Move(newModule, filename string) *Query {
	if q.err != nil {
		return q
	}
	t := q.current()
	if t == nil {
		return q.fail(noSelectorErr("move"))
	}
	t.Callbacks = append(t.Callbacks, callback.Move(newModule, filename))
	return q
}
