// Package sig implements the structured-signature function registry
// described in spec.md §4.3: functions are bound under a mixed prefix/infix
// signature made of alternating name fragments and parameter slots, and
// dispatch walks a two-rooted trie to find the unique matching function for
// a parsed call's argument list.
//
// This package is grounded directly on
// original_source/translator/include/ghassanpl/translator/detail/functions.h
// and its matching .cpp, which the spec itself is an almost line-for-line
// description of.
//
// Registry is generic over the callable type F so that it has no dependency
// on the evaluator that actually invokes matched functions - the owning
// package (tsexpr) instantiates Registry[Callable] with its own Callable
// type, keeping the registry ignorant of how a call is executed.
package sig

// Modifier marks how many times a parameter slot may repeat.
type Modifier byte

const (
	// None means the slot must be filled exactly once.
	None Modifier = 0
	// Optional ('?') means the slot may be omitted.
	Optional Modifier = '?'
	// ZeroOrMore ('*') means the slot may repeat any number of times,
	// including zero.
	ZeroOrMore Modifier = '*'
	// OneOrMore ('+') means the slot must appear at least once and may
	// repeat.
	OneOrMore Modifier = '+'
)

func (m Modifier) String() string {
	switch m {
	case Optional:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	default:
		return ""
	}
}

func modifierOf(paramToken string) Modifier {
	if paramToken == "" {
		return None
	}
	switch paramToken[len(paramToken)-1] {
	case '?':
		return Optional
	case '*':
		return ZeroOrMore
	case '+':
		return OneOrMore
	default:
		return None
	}
}
