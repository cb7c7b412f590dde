package sig

import "sort"

// node is one trie position: a name fragment reached from its parent, paired
// with the modifier that governs the parameter slot immediately following
// that fragment. children are kept sorted by (name, modifier) so that an
// exact (name, modifier) lookup is a plain binary search (dispatch scans the
// children linearly) - the Go-idiomatic replacement for the original's
// "mutable through std::set" trick, which relied on a node's modifier being
// excluded from the set's ordering key so it could be patched in place.
type node[F any] struct {
	name     string
	modifier Modifier
	children []*node[F]
	leaf     *Definition[F]
}

// childAt finds or creates the child keyed by (name, modifier), preserving
// the sort order of n.children.
func (n *node[F]) childAt(name string, mod Modifier) *node[F] {
	i := sort.Search(len(n.children), func(i int) bool {
		c := n.children[i]
		if c.name != name {
			return c.name >= name
		}
		return c.modifier >= mod
	})
	if i < len(n.children) && n.children[i].name == name && n.children[i].modifier == mod {
		return n.children[i]
	}
	child := &node[F]{name: name, modifier: mod}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	return child
}
