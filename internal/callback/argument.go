package callback

import (
	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/imr"
	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/xerrors"
)

// AddArgument inserts a new argument into the matched funcdef/call's
// parameter list. If after is non-empty the new argument is inserted
// immediately following the existing one of that name; otherwise it's
// appended last for definitions, or — for positional call-site arguments —
// inserted before the first keyword argument, matching
// Query.add_argument's positional-vs-keyword placement rule.
func AddArgument(m pattern.Match, name string, value cst.Node, positional bool, after string, annotation cst.Node) error {
	spec, err := imr.Build(m.Captures)
	if err != nil {
		return err
	}

	newArg := &imr.Argument{Name: name, Value: value, Annotation: annotation, Prefix: " "}

	idx := len(spec.Arguments)
	switch {
	case after != "":
		idx = len(spec.Arguments)
		for i, a := range spec.Arguments {
			if a.Name == after {
				idx = i + 1
				break
			}
		}
	case !spec.IsDef && positional:
		idx = 0
		for i, a := range spec.Arguments {
			if a.Value != nil && a.Name != "" {
				idx = i
				break
			}
			idx = i + 1
		}
	}

	spec.Arguments = insertArgument(spec.Arguments, idx, newArg)
	spec.Explode()
	return nil
}

func insertArgument(args []*imr.Argument, idx int, a *imr.Argument) []*imr.Argument {
	if idx < 0 {
		idx = 0
	}
	if idx > len(args) {
		idx = len(args)
	}
	out := make([]*imr.Argument, 0, len(args)+1)
	out = append(out, args[:idx]...)
	out = append(out, a)
	out = append(out, args[idx:]...)
	return out
}

// ModifyArgument edits fields of an existing, matching-by-name argument in
// place. Passing "" for newName, or nil for annotation/defaultValue, leaves
// that field unchanged — Query.modify_argument's SENTINEL-guarded update.
func ModifyArgument(m pattern.Match, name, newName string, annotation, defaultValue cst.Node) error {
	spec, err := imr.Build(m.Captures)
	if err != nil {
		return err
	}
	for _, a := range spec.Arguments {
		if a.Name != name {
			continue
		}
		if newName != "" {
			a.Name = newName
		}
		if annotation != nil {
			a.Annotation = annotation
		}
		if defaultValue != nil {
			a.Value = defaultValue
		}
		spec.Explode()
		return nil
	}
	return xerrors.NewIMRError("modify_argument: no argument named " + name)
}

// RemoveArgument deletes the named argument from the matched parameter
// list. Removing *args/**kwargs is rejected, matching Query.remove_argument
// forbidding it since callers can't generally prove it's unused.
func RemoveArgument(m pattern.Match, name string) error {
	spec, err := imr.Build(m.Captures)
	if err != nil {
		return err
	}
	out := make([]*imr.Argument, 0, len(spec.Arguments))
	found := false
	for _, a := range spec.Arguments {
		if a.Name == name && a.Star == "" {
			found = true
			continue
		}
		if a.Name == name && a.Star != "" {
			return xerrors.NewIMRError("remove_argument: refusing to remove " + a.Star + name)
		}
		out = append(out, a)
	}
	if !found {
		return xerrors.NewIMRError("remove_argument: no argument named " + name)
	}
	spec.Arguments = out
	spec.Explode()
	return nil
}
