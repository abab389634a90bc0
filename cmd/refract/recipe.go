package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/refract/internal/query"
)

// selectorOpts mirrors bowler.query.Query's select_* family as flags:
// exactly one should be set per invocation.
type selectorOpts struct {
	function  string
	method    string
	class     string
	subclass  string
	module    string
	attribute string
	variable  string
	pattern   string
	inClass   string
}

func addSelectorFlags(cmd *cobra.Command, o *selectorOpts) {
	cmd.Flags().StringVar(&o.function, "select-function", "", "select a function definition by name")
	cmd.Flags().StringVar(&o.method, "select-method", "", "select a method definition by name")
	cmd.Flags().StringVar(&o.class, "select-class", "", "select a class definition by name")
	cmd.Flags().StringVar(&o.subclass, "select-subclass", "", "select a class definition by base class name")
	cmd.Flags().StringVar(&o.module, "select-module", "", "select an import of the named module")
	cmd.Flags().StringVar(&o.attribute, "select-attribute", "", "select a self.<name> attribute access")
	cmd.Flags().StringVar(&o.variable, "select-var", "", "select a variable assignment")
	cmd.Flags().StringVar(&o.pattern, "select-pattern", "", "select raw pattern-DSL text")
	cmd.Flags().StringVar(&o.inClass, "in-class", "", "restrict the selection to one enclosing class")
}

// actionOpts mirrors the rewrite verbs internal/callback exposes.
type actionOpts struct {
	renameTo         string
	addArgument      string
	removeArgument   string
	encapsulate      bool
	encapsulateField string
	moveModule       string
}

func addActionFlags(cmd *cobra.Command, o *actionOpts) {
	cmd.Flags().StringVar(&o.renameTo, "rename-to", "", "rename the selected definition/attribute to this name")
	cmd.Flags().StringVar(&o.addArgument, "add-argument", "", "rejected with an error: adding an argument is only available through the Go API")
	cmd.Flags().StringVar(&o.removeArgument, "remove-argument", "", "name of an argument to remove from the selected definition")
	cmd.Flags().BoolVar(&o.encapsulate, "encapsulate", false, "synthesize a property getter/setter for the selected attribute")
	cmd.Flags().StringVar(&o.encapsulateField, "encapsulate-field", "", "internal field name to encapsulate behind (blank means _<name>)")
	cmd.Flags().StringVar(&o.moveModule, "move-to", "", "destination module for the selected definition (unimplemented upstream)")
}

// buildQuery translates selectorOpts/actionOpts/paths into a compiled
// query.Query, the CLI's analogue of bowler.main.do's eval(query_string).
func buildQuery(paths []string, sel *selectorOpts, act *actionOpts, write, interactive bool) (*query.Query, error) {
	q := query.New(paths...)
	q.Write = write
	q.Interactive = interactive

	switch {
	case sel.function != "":
		q.SelectFunction(sel.function)
	case sel.method != "":
		q.SelectMethod(sel.method)
	case sel.class != "":
		q.SelectClass(sel.class)
	case sel.subclass != "":
		q.SelectSubclass(sel.subclass)
	case sel.module != "":
		q.SelectModule(sel.module)
	case sel.attribute != "":
		q.SelectAttribute(sel.attribute)
	case sel.variable != "":
		q.SelectVar(sel.variable)
	case sel.pattern != "":
		q.SelectPattern(sel.pattern)
	default:
		q.SelectRoot()
	}

	if sel.inClass != "" {
		q.InClass(sel.inClass, false)
	}

	switch {
	case act.renameTo != "":
		oldName := selectorName(sel)
		if oldName == "" {
			return nil, fmt.Errorf("refract: --rename-to requires a --select-* flag naming what to rename")
		}
		q.Rename(oldName, act.renameTo)
	case act.addArgument != "":
		return nil, fmt.Errorf("refract: --add-argument is only available via the Go API (internal/query.AddArgument) — it needs a parsed default-value expression, not a flag string")
	case act.removeArgument != "":
		q.RemoveArgument(act.removeArgument)
	case act.encapsulate:
		q.Encapsulate(act.encapsulateField)
	case act.moveModule != "":
		q.Move(act.moveModule, "")
	}

	return q, q.Err()
}

func selectorName(sel *selectorOpts) string {
	switch {
	case sel.function != "":
		return sel.function
	case sel.method != "":
		return sel.method
	case sel.class != "":
		return sel.class
	case sel.attribute != "":
		return sel.attribute
	case sel.variable != "":
		return sel.variable
	default:
		return ""
	}
}
