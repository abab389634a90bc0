// Package callback implements the query builder's named rewrite verbs —
// rename, add_argument, modify_argument, remove_argument, encapsulate, and
// move — each a Go port of the matching method body in bowler.query.Query.
package callback

import (
	"sort"
	"strings"

	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/pattern"
)

// Rename walks m's captures (in a fixed, sorted order so behavior is
// deterministic despite Go's randomized map iteration) looking for the
// one capture that holds oldName, and rewrites it to newName in place.
// It handles the three capture shapes the selector templates actually
// produce: a bare NAME leaf, a dotted_name node, and a power node (dotted
// attribute-access chain) — bowler.query.Query.rename.
func Rename(oldName, newName string, m pattern.Match) error {
	keys := sortedKeys(m.Captures)
	for _, k := range keys {
		v := m.Captures[k]
		switch n := v.(type) {
		case *cst.Leaf:
			if n.Kind == cst.NAME && n.Value == oldName {
				n.Replace(cst.NewLeaf(cst.NAME, newName, n.Prefix()))
				return nil
			}

		case *cst.Branch:
			switch n.Kind {
			case cst.DottedName:
				if renameDottedName(n, oldName, newName) {
					return nil
				}
			case cst.Power:
				if renamePower(n, oldName, newName) {
					return nil
				}
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]cst.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// renameDottedName replaces NAME leaves in a dotted_name<'a' '.' 'b'>
// node that hold oldParts[i] with newParts[i], stopping at the first
// position where the leaf's current value doesn't match oldParts (a sign
// this capture isn't the dotted name oldName actually names).
func renameDottedName(branch *cst.Branch, oldName, newName string) bool {
	oldParts := strings.Split(oldName, ".")
	newParts := strings.Split(newName, ".")
	if len(oldParts) != len(newParts) {
		return false
	}
	i := 0
	changed := false
	for _, child := range branch.Children {
		leaf, ok := child.(*cst.Leaf)
		if !ok || leaf.Kind != cst.NAME {
			continue
		}
		if i >= len(oldParts) || leaf.Value != oldParts[i] {
			break
		}
		if oldParts[i] != newParts[i] {
			leaf.Replace(cst.NewLeaf(cst.NAME, newParts[i], leaf.Prefix()))
			changed = true
		}
		i++
	}
	return changed && i == len(oldParts)
}

// renamePower does the same walk as renameDottedName but over a
// power<'a' trailer<'.' 'b'> trailer<'.' 'c'>> chain: the first child is
// the leading NAME, each subsequent trailer<'.' NAME> contributes one
// more part.
func renamePower(branch *cst.Branch, oldName, newName string) bool {
	oldParts := strings.Split(oldName, ".")
	newParts := strings.Split(newName, ".")
	if len(oldParts) != len(newParts) || len(branch.Children) == 0 {
		return false
	}

	leaves := make([]*cst.Leaf, 0, len(branch.Children))
	if first, ok := branch.Children[0].(*cst.Leaf); ok && first.Kind == cst.NAME {
		leaves = append(leaves, first)
	}
	for _, child := range branch.Children[1:] {
		trailer, ok := child.(*cst.Branch)
		if !ok || trailer.Kind != cst.Trailer || len(trailer.Children) != 2 {
			break
		}
		name, ok := trailer.Children[1].(*cst.Leaf)
		if !ok || name.Kind != cst.NAME {
			break
		}
		leaves = append(leaves, name)
	}

	if len(leaves) != len(oldParts) {
		return false
	}
	changed := false
	for i, leaf := range leaves {
		if leaf.Value != oldParts[i] {
			return changed
		}
		if oldParts[i] != newParts[i] {
			leaf.Replace(cst.NewLeaf(cst.NAME, newParts[i], leaf.Prefix()))
			changed = true
		}
	}
	return changed
}
