package sharding

import (
	"context"
	"errors"
	"testing"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	stats map[string]int64
	err   error
	delay time.Duration
}

func (h *fakeHost) ShardStats(ctx context.Context) (map[string]int64, error) {
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if h.err != nil {
		return nil, h.err
	}

	return h.stats, nil
}

type fakeDirectory map[string][]Host

func (d fakeDirectory) RegionHosts(name string) ([]Host, bool) {
	hosts, ok := d[name]
	return hosts, ok
}

func newAggregator(dir Directory) *Aggregator {
	return NewAggregator(dir, kitlog.NewNopLogger())
}

func TestAggregator_UnknownRegion(t *testing.T) {
	agg := newAggregator(fakeDirectory{})

	for _, timeout := range []time.Duration{time.Nanosecond, time.Second} {
		_, err := agg.DescribeRegion(context.Background(), "nope", timeout)
		require.ErrorIs(t, err, ErrRegionNotFound)
	}
}

func TestAggregator_AllHostsReply(t *testing.T) {
	agg := newAggregator(fakeDirectory{
		"users": {
			&fakeHost{stats: map[string]int64{"s2": 2, "s3": 3}},
			&fakeHost{stats: map[string]int64{"s1": 1}},
		},
	})

	stats, err := agg.DescribeRegion(context.Background(), "users", time.Second)
	require.NoError(t, err)

	assert.Equal(t, []ShardStat{
		{ShardID: "s1", EntityCount: 1},
		{ShardID: "s2", EntityCount: 2},
		{ShardID: "s3", EntityCount: 3},
	}, stats)
}

func TestAggregator_SingleShard(t *testing.T) {
	agg := newAggregator(fakeDirectory{
		"users": {&fakeHost{stats: map[string]int64{"S1": 1}}},
	})

	stats, err := agg.DescribeRegion(context.Background(), "users", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []ShardStat{{ShardID: "S1", EntityCount: 1}}, stats)
}

func TestAggregator_SlowHostOmitted(t *testing.T) {
	agg := newAggregator(fakeDirectory{
		"users": {
			&fakeHost{stats: map[string]int64{"s1": 1}},
			&fakeHost{stats: map[string]int64{"s2": 2}, delay: time.Minute},
		},
	})

	start := time.Now()
	stats, err := agg.DescribeRegion(context.Background(), "users", 50*time.Millisecond)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, []ShardStat{{ShardID: "s1", EntityCount: 1}}, stats)
	assert.Less(t, elapsed, 10*time.Second, "must not wait for the slow host")
}

func TestAggregator_NoRepliesIsEmptySuccess(t *testing.T) {
	agg := newAggregator(fakeDirectory{
		"users": {
			&fakeHost{stats: map[string]int64{"s1": 1}, delay: time.Minute},
		},
	})

	stats, err := agg.DescribeRegion(context.Background(), "users", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestAggregator_NoHostsIsEmptySuccess(t *testing.T) {
	agg := newAggregator(fakeDirectory{"users": {}})

	stats, err := agg.DescribeRegion(context.Background(), "users", time.Second)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestAggregator_FailedHostOmitted(t *testing.T) {
	agg := newAggregator(fakeDirectory{
		"users": {
			&fakeHost{stats: map[string]int64{"s1": 1}},
			&fakeHost{err: errors.New("boom")},
		},
	})

	stats, err := agg.DescribeRegion(context.Background(), "users", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []ShardStat{{ShardID: "s1", EntityCount: 1}}, stats)
}

func TestAggregator_DuplicateShardKeepsLargerCount(t *testing.T) {
	agg := newAggregator(fakeDirectory{
		"users": {
			&fakeHost{stats: map[string]int64{"s1": 2}},
			&fakeHost{stats: map[string]int64{"s1": 5}},
		},
	})

	stats, err := agg.DescribeRegion(context.Background(), "users", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []ShardStat{{ShardID: "s1", EntityCount: 5}}, stats)
}
