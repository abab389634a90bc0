package selector

// Root is select_root's template: matches every node, used for whole-tree
// dumps and as the Query default when no selector has been chosen yet.
func Root() string { return "any" }

// Module builds select_module's template: an 'import x' or 'from x import
// ...' statement naming the given (possibly dotted) module.
func Module(name string) string {
	dotted := DottedParts(name)
	return "(import_name< 'import' module_name=" + dotted +
		" > | import_from< 'from' module_name=" + dotted + " 'import' any* >)"
}

// Class builds select_class's template: a class definition with the given
// name, regardless of its bases.
func Class(name string) string {
	return "class_def=classdef< 'class' class_name=" + DottedParts(name) + " any* >"
}

// Subclass builds select_subclass's template: a class definition whose
// base list contains the given (possibly dotted) base class name.
func Subclass(name string) string {
	return "class_def=classdef< 'class' class_name=any '(' any* base_class=" + DottedParts(name) + " any* ')' any* >"
}

// Attribute builds select_attribute's template: a "self.<name>" access —
// the shape both rename and encapsulate operate on.
func Attribute(name string) string {
	return "power< 'self' trailer< '.' attr_name=" + DottedParts(name) + " > any* >"
}

// funcShape is the funcdef pattern shared by select_function and
// select_method; the two differ only in the filter the query builder
// attaches afterward (in_class for method, none for function), not in the
// tree shape they match.
func funcShape(name string) string {
	return "function_def=funcdef< 'def' function_name=" + DottedParts(name) +
		" function_parameters=parameters< any* > any* >"
}

// Function builds select_function's template.
func Function(name string) string { return funcShape(name) }

// Method builds select_method's template (see funcShape).
func Method(name string) string { return funcShape(name) }

// Var builds select_var's template: a "name = ..." assignment at any
// nesting depth.
func Var(name string) string {
	return "expr_stmt< var_name=" + DottedParts(name) + " '=' any* >"
}

// Pattern passes raw pattern-DSL text through unchanged — select_pattern's
// escape hatch for callers who already know exactly what tree shape they
// want to match.
func Pattern(text string) string { return text }
