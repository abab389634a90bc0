package callback

import (
	"strings"

	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/xerrors"
)

// Encapsulate returns a stateful callback implementing Query.encapsulate:
// every "self.<name>" access the matched selector finds is rewritten to
// "self.<internalName>", and the first time the callback runs it also
// synthesizes a @property getter and @name.setter setter into the
// enclosing class body. The returned closure's synthesized flag is the Go
// equivalent of bowler.helpers.Once — it must be a fresh closure per
// compiled Query so two different attributes don't share one gate.
func Encapsulate(internalName string) func(m pattern.Match, filename string) error {
	synthesized := false
	return func(m pattern.Match, filename string) error {
		attrNode, ok := m.Captures["attr_name"]
		if !ok {
			return xerrors.NewIMRError("encapsulate requires an attr_name capture (use SelectAttribute)")
		}
		attrLeaf, ok := attrNode.(*cst.Leaf)
		if !ok {
			return xerrors.NewIMRError("encapsulate: attr_name capture is not a NAME leaf")
		}
		oldName := attrLeaf.Value
		if strings.HasPrefix(oldName, "__") {
			return xerrors.NewIMRError("encapsulate: refusing to rewrite dunder-prefixed attribute " + oldName)
		}
		newName := internalName
		if newName == "" {
			newName = "_" + oldName
		}
		attrLeaf.Replace(cst.NewLeaf(cst.NAME, newName, attrLeaf.Prefix()))

		if synthesized {
			return nil
		}
		synthesized = true

		classdef := enclosingClassdef(m.Node)
		if classdef == nil {
			return xerrors.NewIMRError("encapsulate: self." + oldName + " access is not inside a class")
		}
		suite, ok := classdef.Children[len(classdef.Children)-1].(*cst.Branch)
		if !ok || suite.Kind != cst.Suite {
			return nil
		}

		suite.InsertChild(-1, buildGetter(oldName, newName))
		suite.InsertChild(-1, buildSetter(oldName, newName))
		return nil
	}
}

func enclosingClassdef(n cst.Node) *cst.Branch {
	for _, ancestor := range cst.WalkUp(n) {
		if b, ok := ancestor.(*cst.Branch); ok && b.Kind == cst.Classdef {
			return b
		}
	}
	return nil
}

// buildGetter synthesizes:
//
//	@property
//	def <name>(self):
//	    return self.<internal>
func buildGetter(name, internal string) *cst.Branch {
	decorators := cst.NewBranch(cst.Decorators,
		cst.NewBranch(cst.Decorator,
			cst.NewLeaf(cst.AT, "@", "\n    "),
			cst.NewLeaf(cst.NAME, "property", ""),
			cst.NewLeaf(cst.NEWLINE, "\n", ""),
		),
	)
	funcdef := cst.NewBranch(cst.Funcdef,
		cst.NewLeaf(cst.NAME, "def", "    "),
		cst.NewLeaf(cst.NAME, name, " "),
		cst.NewBranch(cst.Parameters,
			cst.NewLeaf(cst.LPAR, "(", ""),
			cst.NewLeaf(cst.NAME, "self", ""),
			cst.NewLeaf(cst.RPAR, ")", ""),
		),
		cst.NewLeaf(cst.COLON, ":", ""),
		cst.NewBranch(cst.Suite,
			cst.NewLeaf(cst.NEWLINE, "\n", ""),
			cst.NewLeaf(cst.INDENT, "        ", ""),
			cst.NewBranch(cst.SimpleStmt,
				cst.NewBranch(cst.ReturnStmt,
					cst.NewLeaf(cst.NAME, "return", ""),
					cst.NewBranch(cst.Power, cst.Name("self", " "), cst.NewBranch(cst.Trailer, cst.Dot(), cst.Name(internal, ""))),
				),
				cst.NewLeaf(cst.NEWLINE, "\n", ""),
			),
			cst.NewLeaf(cst.DEDENT, "", ""),
		),
	)
	return cst.NewBranch(cst.Decorated, decorators, funcdef)
}

// buildSetter synthesizes:
//
//	@<name>.setter
//	def <name>(self, value):
//	    self.<internal> = value
func buildSetter(name, internal string) *cst.Branch {
	decorators := cst.NewBranch(cst.Decorators,
		cst.NewBranch(cst.Decorator,
			cst.NewLeaf(cst.AT, "@", "\n    "),
			cst.NewBranch(cst.Power, cst.Name(name, ""), cst.NewBranch(cst.Trailer, cst.Dot(), cst.Name("setter", ""))),
			cst.NewLeaf(cst.NEWLINE, "\n", ""),
		),
	)
	funcdef := cst.NewBranch(cst.Funcdef,
		cst.NewLeaf(cst.NAME, "def", "    "),
		cst.NewLeaf(cst.NAME, name, " "),
		cst.NewBranch(cst.Parameters,
			cst.NewLeaf(cst.LPAR, "(", ""),
			cst.NewBranch(cst.Typedargslist,
				cst.NewLeaf(cst.NAME, "self", ""),
				cst.Comma(),
				cst.NewLeaf(cst.NAME, "value", " "),
			),
			cst.NewLeaf(cst.RPAR, ")", ""),
		),
		cst.NewLeaf(cst.COLON, ":", ""),
		cst.NewBranch(cst.Suite,
			cst.NewLeaf(cst.NEWLINE, "\n", ""),
			cst.NewLeaf(cst.INDENT, "        ", ""),
			cst.NewBranch(cst.SimpleStmt,
				cst.NewBranch(cst.ExprStmt,
					cst.NewBranch(cst.Power, cst.Name("self", ""), cst.NewBranch(cst.Trailer, cst.Dot(), cst.Name(internal, ""))),
					cst.NewLeaf(cst.EQUAL, "=", " "),
					cst.Name("value", " "),
				),
				cst.NewLeaf(cst.NEWLINE, "\n", ""),
			),
			cst.NewLeaf(cst.DEDENT, "", ""),
		),
	)
	return cst.NewBranch(cst.Decorated, decorators, funcdef)
}
