package sharding

import (
	"context"

	"clusterhttp/internal/baseerror"
)

// ErrRegionNotFound reports a directory-level miss: the region name itself
// is unknown. Distinct from a known region with no shards, which is a valid
// (empty) result.
var ErrRegionNotFound = baseerror.New("shard region not found")

// Host is a single holder of shards within a region. A host may live in
// this process or behind the messaging runtime; the aggregator does not
// care, it only requires that the call respects the context deadline.
type Host interface {
	// ShardStats returns the number of entities per shard currently
	// hosted.
	ShardStats(ctx context.Context) (map[string]int64, error)
}

// Directory resolves a region name to the hosts that must be queried.
type Directory interface {
	// RegionHosts returns the hosts of the named region, or false when
	// the region is unknown. A known region may have zero hosts.
	RegionHosts(name string) ([]Host, bool)
}

// ShardStat is a per-shard entity count gathered from the hosts.
type ShardStat struct {
	ShardID     string
	EntityCount int64
}
