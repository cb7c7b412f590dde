package sig

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/transcribble/tsexpr/lex"
	"github.com/dekarrin/transcribble/tsexpr/tserr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// Registry binds Callables of type F under structured signatures and
// dispatches parsed call argument lists back to the unique matching
// Definition, following original_source's functions.h/functions.cpp. A zero
// Registry is ready to use.
type Registry[F any] struct {
	prefixRoot node[F]
	infixRoot  node[F]
	bySig      map[string]*Definition[F]

	// Parent, when set, is consulted by Find when a local search comes up
	// empty and localOnly is false - mirroring a Scope's lexical fallback
	// to its ancestors for function lookup.
	Parent *Registry[F]
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{bySig: make(map[string]*Definition[F])}
}

func hasModifierSuffix(tok string) bool {
	return modifierOf(tok) != None
}

// Bind parses specStr as a structured function signature under opts and
// registers fn under it, returning the new Definition. specStr is tokenized
// with the same atom/list grammar as a call (so literal commas or quoted
// name fragments are legal tokens), mirroring the original's reuse of
// consume_list(signature_spec, false) to read a signature.
func (r *Registry[F]) Bind(specStr string, fn F, opts lex.Options) (*Definition[F], error) {
	if r.bySig == nil {
		r.bySig = make(map[string]*Definition[F])
	}
	rdr := lex.New(specStr, opts)
	listVal, err := rdr.ConsumeList(false)
	if err != nil {
		return nil, err
	}
	elems := listVal.Array()
	n := len(elems)
	if n == 0 {
		return nil, tserr.New("function signature must have at least one token", tserr.ErrSignatureRegistration)
	}

	for _, e := range elems {
		if e.Type() != value.String || e.String() == "" {
			return nil, tserr.New("function signature tokens must all be non-empty names", tserr.ErrSignatureRegistration)
		}
	}

	infix := n%2 == 1

	var sb strings.Builder
	if infix {
		sb.WriteString(elems[0].String())
	}
	for i := boolToInt(infix); i < n; i += 2 {
		name := elems[i]
		param := elems[i+1]
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name.String())
		sb.WriteByte(' ')
		sb.WriteString(param.String())
	}
	signature := sb.String()

	if n == 1 {
		// A single bare name fragment: a no-argument function, registered
		// only in the flat signature map with no trie node at all. Re-binding
		// the same canonical signature overwrites the callable in place and
		// hands back the existing Definition, preserving its ID.
		if existing, exists := r.bySig[signature]; exists {
			existing.Fn = fn
			return existing, nil
		}
		def := &Definition[F]{Signature: signature, Fn: fn, id: uuid.New()}
		r.bySig[signature] = def
		return def, nil
	}

	if infix && hasModifierSuffix(elems[0].String()) {
		return nil, tserr.New("first parameter of an infix signature cannot carry a modifier", tserr.ErrSignatureRegistration)
	}

	root := &r.prefixRoot
	if infix {
		root = &r.infixRoot
	}

	cur := root
	for i := boolToInt(infix); i < n; i += 2 {
		name := elems[i].String()
		mod := modifierOf(elems[i+1].String())
		cur = cur.childAt(name, mod)
	}

	if cur.leaf != nil {
		// Same canonical signature re-bound: overwrite the callable in place
		// rather than registering a second Definition, so the pointer/ID a
		// caller already holds for this signature stays valid.
		cur.leaf.Fn = fn
		cur.leaf.Signature = signature
		r.bySig[signature] = cur.leaf
		return cur.leaf, nil
	}
	def := &Definition[F]{Signature: signature, Fn: fn, id: uuid.New()}
	cur.leaf = def
	r.bySig[signature] = def
	return def, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Slot is one parameter position of a matched signature: which modifier
// governed it, and the indices into the call's argument list holding the
// Values that filled it (empty if it was a */? slot that the call omitted
// entirely).
type Slot struct {
	Modifier Modifier
	Values   []int
}

// Match pairs a Definition with the Slot breakdown the dispatcher used to
// reach it, so a caller can pack a Callable's argument list - grouping a
// repeated +/* slot into one value - without re-deriving the same
// ambiguity the trie walk already resolved.
type Match[F any] struct {
	Def   *Definition[F]
	Slots []Slot
}

// Find returns every Definition matching args: strings in name-fragment
// positions, arbitrary Values in parameter positions. When the local search
// is empty and localOnly is false, Parent (if set) is searched next.
func (r *Registry[F]) Find(args []value.Value, localOnly bool) []*Definition[F] {
	matches := r.FindMatches(args, localOnly)
	out := make([]*Definition[F], len(matches))
	for i, m := range matches {
		out[i] = m.Def
	}
	return out
}

// FindMatches is Find, but also returns each match's Slot breakdown.
func (r *Registry[F]) FindMatches(args []value.Value, localOnly bool) []Match[F] {
	local := r.findLocalMatches(args)
	if len(local) > 0 || localOnly || r.Parent == nil {
		return local
	}
	return r.Parent.FindMatches(args, false)
}

func (r *Registry[F]) findLocalMatches(args []value.Value) []Match[F] {
	found := make(map[*Definition[F]]Match[F])

	if len(args) == 1 {
		if args[0].Type() == value.String {
			if d, ok := r.bySig[args[0].String()]; ok {
				found[d] = Match[F]{Def: d}
			}
			name := args[0].String()
			for _, child := range r.prefixRoot.children {
				if child.name == name && (child.modifier == ZeroOrMore || child.modifier == Optional) && child.leaf != nil {
					found[child.leaf] = Match[F]{Def: child.leaf, Slots: []Slot{{Modifier: child.modifier}}}
				}
			}
		}
	} else if len(args)%2 == 1 {
		// The first operand is implicit - it is never compared against the
		// trie, since an infix signature's leading parameter carries no
		// name fragment of its own - but it still fills a real parameter
		// slot, so it must be seeded here or every infix Callable would be
		// handed one argument short.
		walk(&r.infixRoot, args, 1, []Slot{{Modifier: None, Values: []int{0}}}, found)
	} else {
		walk(&r.prefixRoot, args, 0, nil, found)
	}

	result := make([]Match[F], 0, len(found))
	for _, m := range found {
		result = append(result, m)
	}
	return result
}

type frame[F any] struct {
	argIdx int
	tree   *node[F]
	slots  []Slot
}

// walk runs the work-list trie search described in spec.md §4.3: at each
// subtree, every */? child is an immediate zero-argument candidate, and
// every child whose name equals the argument at argIdx is a candidate whose
// iterator advances past the matched name/value pair (consuming further
// repeats of the same name for + and * children). A candidate that lands
// exactly on a leaf at end-of-arguments is a match. Each frame carries the
// Slot breakdown accumulated on its path from the root.
func walk[F any](root *node[F], args []value.Value, startIdx int, slots []Slot, found map[*Definition[F]]Match[F]) {
	stack := []frame[F]{{argIdx: startIdx, tree: root, slots: slots}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var candidates []frame[F]

		for _, child := range cur.tree.children {
			if child.modifier == ZeroOrMore || child.modifier == Optional {
				newSlots := append(append([]Slot(nil), cur.slots...), Slot{Modifier: child.modifier})
				candidates = append(candidates, frame[F]{argIdx: cur.argIdx, tree: child, slots: newSlots})
			}
		}

		if cur.argIdx < len(args) && args[cur.argIdx].Type() == value.String {
			name := args[cur.argIdx].String()
			for _, child := range cur.tree.children {
				if child.name != name {
					continue
				}
				next := cur.argIdx + 2
				values := []int{cur.argIdx + 1}
				if child.modifier == OneOrMore || child.modifier == ZeroOrMore {
					for next < len(args) && args[next].Type() == value.String && args[next].String() == name {
						values = append(values, next+1)
						next += 2
					}
				}
				newSlots := append(append([]Slot(nil), cur.slots...), Slot{Modifier: child.modifier, Values: values})
				candidates = append(candidates, frame[F]{argIdx: next, tree: child, slots: newSlots})
			}
		}

		for _, c := range candidates {
			if c.argIdx == len(args) {
				if c.tree.leaf != nil {
					found[c.tree.leaf] = Match[F]{Def: c.tree.leaf, Slots: c.slots}
				}
				continue
			}
			stack = append(stack, c)
		}
	}
}

// Suggest returns the canonical signatures of every bound function that
// has name as any whitespace-delimited token of its signature (a name
// fragment or a parameter token such as "arg"), for "did you mean" style
// error messages when dispatch fails.
func (r *Registry[F]) Suggest(name string) []string {
	var out []string
	for sig, def := range r.bySig {
		for _, word := range strings.Fields(sig) {
			if word == name {
				out = append(out, def.Signature)
				break
			}
		}
	}
	return out
}
