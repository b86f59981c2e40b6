package sharding

import (
	"fmt"

	"github.com/twmb/murmur3"
)

// Extractor assigns entities to shards by hashing their ids. The assignment
// is stable: the same entity id always lands in the same shard for a given
// shard count.
type Extractor struct {
	numShards uint32
}

func NewExtractor(numShards int) Extractor {
	if numShards <= 0 {
		panic("sharding: numShards must be positive")
	}

	return Extractor{numShards: uint32(numShards)}
}

func (e Extractor) ShardID(entityID string) string {
	return fmt.Sprintf("shard-%d", murmur3.StringSum32(entityID)%e.numShards)
}
