package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oxhq/refract/cst"
)

func readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("refract: reading %s: %w", path, err)
	}
	return string(content), nil
}

// dumpNode prints a node and its descendants one per line, indented by
// depth — TypeRepr plus the literal value for leaves, matching the shape
// of fissix's node.py `__repr__` tree dump bowler's `print_tree` relies on.
func dumpNode(n cst.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *cst.Leaf:
		fmt.Printf("%s%s %s\n", indent, cst.TypeRepr(v.Kind), strconv.Quote(v.Value))
	case *cst.Branch:
		fmt.Printf("%s%s\n", indent, cst.TypeRepr(v.Kind))
		for _, c := range v.Children {
			dumpNode(c, depth+1)
		}
	}
}
