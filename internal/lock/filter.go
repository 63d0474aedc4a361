package lock

// ProbeFunc reports whether an identity still denotes the same running
// process. Implementations must resolve uncertainty (for example a
// permission error on the probe) toward true, so that a holder is never
// reclaimed while it may still be alive.
type ProbeFunc func(Identity) bool

// Filter returns the identities that still denote live instances, plus the
// stale entries it dropped. The caller's own identity is always kept,
// whatever the probe would say about it: the invariant that self is present
// exactly while the guard is held does not depend on probe behavior.
//
// Filtering is advisory cleanup. It only affects how promptly entries left
// behind by crashed processes are reclaimed.
func Filter(set Set, self Identity, probe ProbeFunc) (kept Set, dropped []Identity) {
	kept = make(Set, len(set))
	for id := range set {
		if id == self {
			kept[id] = struct{}{}
			continue
		}
		if probe == nil || probe(id) {
			kept[id] = struct{}{}
			continue
		}
		dropped = append(dropped, id)
	}
	return kept, dropped
}
