package cluster

import (
	"clusterhttp/internal/generic"
	"clusterhttp/internal/set"
)

// DataCenterView partitions the membership by datacenter tag.
type DataCenterView struct {
	Self        string
	All         []string
	Unreachable []string
}

// BuildDataCenterView derives the datacenter view from a snapshot. All is
// the union of every member's tags. A datacenter counts as unreachable as
// soon as any member tagged with it appears on either side of the
// reachability relation, even if other members of the same datacenter are
// fine. Output slices are sorted.
func BuildDataCenterView(snap Snapshot) DataCenterView {
	all := make(set.Set[string])
	for _, m := range snap.Members {
		all = all.Union(m.DataCenters)
	}

	involved := make(set.Set[Address])
	for observer, peers := range snap.Unreachability {
		involved.Add(observer)

		for _, peer := range peers {
			involved.Add(peer)
		}
	}

	unreachable := make(set.Set[string])
	for _, m := range snap.Members {
		if involved.Has(m.Address()) {
			unreachable = unreachable.Union(m.DataCenters)
		}
	}

	allValues := all.Values()
	generic.SortSlice(allValues, false)

	unreachableValues := unreachable.Values()
	generic.SortSlice(unreachableValues, false)

	return DataCenterView{
		Self:        snap.SelfDataCenter,
		All:         allValues,
		Unreachable: unreachableValues,
	}
}
