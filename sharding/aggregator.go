package sharding

import (
	"context"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"clusterhttp/internal/generic"
)

// Aggregator answers region placement queries by scattering a stats request
// to every host of the region and gathering whatever replies arrive within
// the timeout.
type Aggregator struct {
	directory Directory
	logger    kitlog.Logger
}

func NewAggregator(directory Directory, logger kitlog.Logger) *Aggregator {
	return &Aggregator{
		directory: directory,
		logger:    logger,
	}
}

// DescribeRegion returns the per-shard entity counts of the named region,
// sorted by shard id. Hosts that do not reply within the timeout are
// omitted; a partial or even empty result is still a success. Only an
// unknown region name is an error.
func (a *Aggregator) DescribeRegion(ctx context.Context, name string, timeout time.Duration) ([]ShardStat, error) {
	hosts, ok := a.directory.RegionHosts(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, name)
	}

	gatherCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so that replies arriving after the timeout never block the
	// host goroutines.
	replies := make(chan map[string]int64, len(hosts))

	wg := sync.WaitGroup{}
	wg.Add(len(hosts))

	for _, host := range hosts {
		go func(host Host) {
			defer wg.Done()

			stats, err := host.ShardStats(gatherCtx)
			if err != nil {
				if gatherCtx.Err() == nil {
					level.Warn(a.logger).Log("msg", "shard host failed", "region", name, "err", err)
				}

				return
			}

			replies <- stats
		}(host)
	}

	go func() {
		wg.Wait()
		close(replies)
	}()

	counts := make(map[string]int64)

gather:
	for {
		select {
		case stats, ok := <-replies:
			if !ok {
				break gather // every host replied or failed
			}

			for id, n := range stats {
				// During a shard handoff two hosts may report the same
				// shard; the larger count wins so the aggregate does not
				// depend on arrival order.
				counts[id] = generic.Max(counts[id], n)
			}
		case <-gatherCtx.Done():
			break gather // late replies are dropped
		}
	}

	ids := generic.MapKeys(counts)
	generic.SortSlice(ids, false)

	stats := make([]ShardStat, len(ids))
	for i, id := range ids {
		stats[i] = ShardStat{ShardID: id, EntityCount: counts[id]}
	}

	return stats, nil
}
