package cluster

import "clusterhttp/internal/set"

// UniqueAddress pairs a node address with the generation id assigned when
// the node joined. The id increases monotonically across joins, so a node
// that restarts under the same address gets a higher one.
type UniqueAddress struct {
	Address Address
	UID     int64
}

// OlderThan reports whether this incarnation joined before the other one.
func (ua UniqueAddress) OlderThan(other UniqueAddress) bool {
	return ua.UID < other.UID
}

type Member struct {
	UniqueAddress UniqueAddress
	Status        Status
	// Roles the node carries, may be empty.
	Roles set.Set[string]
	// DataCenters the node is tagged with. A node may carry zero or
	// multiple tags.
	DataCenters set.Set[string]
}

func (m *Member) Address() Address {
	return m.UniqueAddress.Address
}
