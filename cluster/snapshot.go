package cluster

// Snapshot is an immutable point-in-time view of cluster membership as
// reported by the state provider. Request handling never mutates or caches
// one; every request obtains a fresh snapshot reflecting the most recent
// gossip round known locally.
type Snapshot struct {
	// Members known to the provider, in no particular order.
	Members []Member
	// Leader as computed by the underlying protocol, nil when unknown.
	// The gateway copies it verbatim and never recomputes leadership.
	Leader *Address
	// SelfAddress is the canonical address of the local node.
	SelfAddress Address
	// SelfDataCenter is the primary datacenter tag of the local node.
	SelfDataCenter string
	// Unreachability maps an observer address to the set of peers its
	// failure detector currently considers unreachable.
	Unreachability map[Address][]Address
}

// FindMember resolves an address query (full or abbreviated form) against
// the snapshot. Malformed queries resolve to nothing.
func (s *Snapshot) FindMember(query string) (Member, bool) {
	for _, m := range s.Members {
		if m.Address().Matches(query) {
			return m, true
		}
	}

	return Member{}, false
}
