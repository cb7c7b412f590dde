package sig

import "github.com/google/uuid"

// Definition is a bound function: its canonical (whitespace-normalized)
// signature, the callable it dispatches to, and a stable identity that
// survives rebinding of the same canonical signature (including a spec
// string that differs only in whitespace); binding a different canonical
// signature creates a new Definition with a new identity. Registries never
// existed as a cross-process concept in the original, so nothing here is
// serialized; ID exists purely so a host embedding tsexpr can key caches or
// UI state (a "which function is this" breadcrumb) on something other than
// a signature string.
type Definition[F any] struct {
	Signature string
	Fn        F

	id uuid.UUID
}

// ID returns this Definition's stable identity.
func (d *Definition[F]) ID() uuid.UUID { return d.id }
