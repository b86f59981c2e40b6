package main

import (
	"fmt"
	"strconv"
	"strings"
)

var opts struct {
	Node struct {
		System     string `long:"system" env:"SYSTEM" required:"true" description:"logical system name shared by the cluster"`
		Protocol   string `long:"protocol" env:"PROTOCOL" default:"tcp" description:"protocol tag of canonical addresses"`
		DataCenter string `long:"data-center" env:"DATA_CENTER" default:"default" description:"data center this node belongs to"`
		Roles      string `long:"roles" env:"ROLES" description:"comma-separated list of node roles"`
	} `group:"node" namespace:"node" env-namespace:"NODE"`

	Gossip struct {
		BindAddr      string `long:"bind-addr" env:"BIND_ADDR" default:"0.0.0.0:7946" description:"address to bind gossip transport"`
		AdvertiseAddr string `long:"advertise-addr" env:"ADVERTISE_ADDR" description:"address to advertise to other nodes"`
		JoinAddrs     string `long:"join-addrs" env:"JOIN_ADDRS" description:"comma-separated list of seed nodes to join"`
		ProbeTimeout  int    `long:"probe-timeout" env:"PROBE_TIMEOUT" default:"500" description:"failure detection timeout (ms)"`
		ProbeInterval int    `long:"probe-interval" env:"PROBE_INTERVAL" default:"1000" description:"failure detection interval (ms)"`
	} `group:"gossip" namespace:"gossip" env-namespace:"GOSSIP"`

	HTTP struct {
		BindAddr     string `long:"bind-addr" env:"BIND_ADDR" default:":8558" description:"address to bind management http server"`
		ShardTimeout int    `long:"shard-timeout" env:"SHARD_TIMEOUT" default:"5000" description:"default shard region query timeout (ms)"`
	} `group:"http" namespace:"http" env-namespace:"HTTP"`

	Shards struct {
		Regions string `long:"regions" env:"REGIONS" description:"comma-separated shard regions as name:num-shards"`
	} `group:"shards" namespace:"shards" env-namespace:"SHARDS"`

	Verbose bool `long:"verbose" env:"VERBOSE" description:"verbose mode"`
}

func parseList(value string) []string {
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}

	return res
}

type regionSpec struct {
	name      string
	numShards int
}

func parseRegionSpecs(value string) ([]regionSpec, error) {
	var specs []regionSpec

	for _, part := range parseList(value) {
		name, countStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid region spec %q, want name:num-shards", part)
		}

		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("invalid shard count in region spec %q", part)
		}

		specs = append(specs, regionSpec{name: name, numShards: count})
	}

	return specs, nil
}
