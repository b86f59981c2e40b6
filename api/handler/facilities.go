package handler

//go:generate mockgen -source=facilities.go -destination=mock/mocks.go -package=mock

import (
	"context"
	"time"

	"clusterhttp/cluster"
	"clusterhttp/sharding"
)

// Cluster provides the fresh membership snapshot every request starts from.
type Cluster interface {
	Snapshot() cluster.Snapshot
}

// Mutator resolves address queries and forwards membership mutations.
type Mutator interface {
	Join(ctx context.Context, query string) (cluster.Address, error)
	Apply(ctx context.Context, snap cluster.Snapshot, query, operation string) (cluster.Address, error)
}

// ShardRegions answers scatter-gather placement queries.
type ShardRegions interface {
	DescribeRegion(ctx context.Context, name string, timeout time.Duration) ([]sharding.ShardStat, error)
}
