package sharding

import (
	"context"
	"sync"
)

// Region is an in-process shard host: the shards of a region that live on
// this node. Entities are placed into shards by the extractor.
type Region struct {
	mut       sync.RWMutex
	name      string
	extractor Extractor
	entities  map[string]string // entity id -> shard id
}

func NewRegion(name string, numShards int) *Region {
	return &Region{
		name:      name,
		extractor: NewExtractor(numShards),
		entities:  make(map[string]string),
	}
}

func (r *Region) Name() string {
	return r.name
}

// StartEntity registers an entity and returns the shard it was placed in.
// Registering the same entity twice is a no-op.
func (r *Region) StartEntity(entityID string) string {
	shardID := r.extractor.ShardID(entityID)

	r.mut.Lock()
	r.entities[entityID] = shardID
	r.mut.Unlock()

	return shardID
}

func (r *Region) StopEntity(entityID string) {
	r.mut.Lock()
	delete(r.entities, entityID)
	r.mut.Unlock()
}

func (r *Region) ShardStats(ctx context.Context) (map[string]int64, error) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	stats := make(map[string]int64)
	for _, shardID := range r.entities {
		stats[shardID]++
	}

	return stats, nil
}

// LocalDirectory is a directory over in-process hosts, keyed by region name.
type LocalDirectory struct {
	mut     sync.RWMutex
	regions map[string][]Host
}

func NewLocalDirectory() *LocalDirectory {
	return &LocalDirectory{
		regions: make(map[string][]Host),
	}
}

// AddHost registers a host under the region name, creating the region on
// first use.
func (d *LocalDirectory) AddHost(region string, host Host) {
	d.mut.Lock()
	d.regions[region] = append(d.regions[region], host)
	d.mut.Unlock()
}

func (d *LocalDirectory) RegionHosts(name string) ([]Host, bool) {
	d.mut.RLock()
	defer d.mut.RUnlock()

	hosts, ok := d.regions[name]
	if !ok {
		return nil, false
	}

	out := make([]Host, len(hosts))
	copy(out, hosts)

	return out, true
}

var (
	_ Host      = (*Region)(nil)
	_ Directory = (*LocalDirectory)(nil)
)
