package model

// The json field names below form the wire contract and must not change.

type Member struct {
	Address      string   `json:"address"`
	GenerationID string   `json:"generationId"`
	Status       string   `json:"status"`
	Roles        []string `json:"roles"`
}

type UnreachableGroup struct {
	Address    string   `json:"address"`
	ObservedBy []string `json:"observedBy"`
}

type GetMembersResponse struct {
	SelfNode    string             `json:"selfNode"`
	Members     []Member           `json:"members"`
	Leader      string             `json:"leader,omitempty"`
	Oldest      string             `json:"oldest,omitempty"`
	Unreachable []UnreachableGroup `json:"unreachable"`
}

type ShardStat struct {
	ShardID     string `json:"shardId"`
	EntityCount int64  `json:"entityCount"`
}

type GetShardsResponse struct {
	Shards []ShardStat `json:"shards"`
}

type GetDataCentersResponse struct {
	SelfDataCenter         string   `json:"selfDataCenter"`
	AllDataCenters         []string `json:"allDataCenters"`
	UnreachableDataCenters []string `json:"unreachableDataCenters"`
}

type Message struct {
	Message string `json:"message"`
}
