package cluster

import "sort"

// UnreachableGroup lists every observer that reported the given address as
// unreachable. It is the inverse of the snapshot's reachability relation.
type UnreachableGroup struct {
	Address    Address
	ObservedBy []Address
}

// View is the derived membership view served to operators.
type View struct {
	Self        Address
	Members     []Member
	Leader      *Address
	Oldest      *Address
	Unreachable []UnreachableGroup
}

// BuildView derives the membership view from a snapshot. It is a pure
// function: identical snapshots produce identical views, and it is safe to
// call concurrently.
func BuildView(snap Snapshot) View {
	members := make([]Member, len(snap.Members))
	copy(members, snap.Members)

	sort.Slice(members, func(i, j int) bool {
		return members[i].UniqueAddress.OlderThan(members[j].UniqueAddress)
	})

	// The oldest member is recomputed locally: the Up member with the
	// smallest generation id. Members in any other state do not count,
	// so a snapshot without Up members has no oldest.
	var oldest *Address
	for i := range members {
		if members[i].Status == StatusUp {
			addr := members[i].Address()
			oldest = &addr

			break
		}
	}

	return View{
		Self:        snap.SelfAddress,
		Members:     members,
		Leader:      snap.Leader,
		Oldest:      oldest,
		Unreachable: UnreachableGroups(snap),
	}
}

// UnreachableGroups inverts the observer→unreachable relation of the
// snapshot, producing one group per unreachable address. Groups and observer
// lists are sorted by address string so equal inputs yield equal output.
func UnreachableGroups(snap Snapshot) []UnreachableGroup {
	byUnreachable := make(map[Address][]Address)

	for observer, peers := range snap.Unreachability {
		for _, peer := range peers {
			byUnreachable[peer] = append(byUnreachable[peer], observer)
		}
	}

	groups := make([]UnreachableGroup, 0, len(byUnreachable))

	for addr, observers := range byUnreachable {
		sort.Slice(observers, func(i, j int) bool {
			return observers[i].String() < observers[j].String()
		})

		groups = append(groups, UnreachableGroup{
			Address:    addr,
			ObservedBy: observers,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Address.String() < groups[j].Address.String()
	})

	return groups
}
