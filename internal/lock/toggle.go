package lock

// Op selects the direction of a registry update.
type Op int

const (
	// OpAcquire records the caller in the registry.
	OpAcquire Op = iota
	// OpRelease removes the caller from the registry.
	OpRelease
)

// String returns the operation name for log output.
func (op Op) String() string {
	if op == OpAcquire {
		return "acquire"
	}
	return "release"
}

// Set is an in-memory registry of identities.
type Set map[Identity]struct{}

// NewSet builds a Set from identities.
func NewSet(ids ...Identity) Set {
	set := make(Set, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Identities returns the set's members in unspecified order.
func (s Set) Identities() []Identity {
	ids := make([]Identity, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// Apply computes the registry after op for self, and whether the global
// sleep setting should flip. The counting is deliberately asymmetric:
// acquire counts before insertion ("did I take the count from zero?") and
// release counts after removal ("did I bring the count to zero?").
// Re-acquiring an identity already present is a no-op with no toggle.
func Apply(set Set, self Identity, op Op) (Set, bool) {
	next := make(Set, len(set)+1)
	for id := range set {
		next[id] = struct{}{}
	}

	if op == OpAcquire {
		if _, ok := next[self]; ok {
			return next, false
		}
		toggle := len(next) == 0
		next[self] = struct{}{}
		return next, toggle
	}

	delete(next, self)
	return next, len(next) == 0
}
