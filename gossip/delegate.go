package gossip

import (
	"encoding/json"

	"github.com/go-kit/log/level"
	"github.com/hashicorp/memberlist"

	"clusterhttp/cluster"
	"clusterhttp/internal/set"
)

var (
	_ memberlist.Delegate      = (*Provider)(nil)
	_ memberlist.EventDelegate = (*Provider)(nil)
)

// NodeMeta advertises this node's identity blob to peers.
func (p *Provider) NodeMeta(limit int) []byte {
	if len(p.meta) > limit {
		level.Error(p.logger).Log("msg", "node meta exceeds gossip limit", "size", len(p.meta), "limit", limit)
		return nil
	}

	return p.meta
}

// NotifyMsg handles control messages from peers. Both leave and down ask
// this node to detach itself from gossip; down is the operator-forced
// variant of the same thing at this layer.
func (p *Provider) NotifyMsg(b []byte) {
	var msg controlMsg
	if err := json.Unmarshal(b, &msg); err != nil {
		return
	}

	switch msg.Op {
	case cluster.OpLeave, cluster.OpDown:
		level.Info(p.logger).Log("msg", "asked to leave the cluster", "op", msg.Op)

		p.setStatus(p.self.Address, cluster.StatusLeaving)

		go func() {
			ml := p.memberlist()
			if ml == nil {
				return
			}

			if err := ml.Leave(p.leaveTimeout()); err != nil {
				level.Warn(p.logger).Log("msg", "failed to leave cluster", "err", err)
			}
		}()
	}
}

func (p *Provider) GetBroadcasts(overhead, limit int) [][]byte { return nil }

func (p *Provider) LocalState(join bool) []byte { return nil }

func (p *Provider) MergeRemoteState(buf []byte, join bool) {}

// NotifyJoin registers a node that became alive. Nodes without a decodable
// meta blob belong to a foreign system and are ignored.
func (p *Provider) NotifyJoin(n *memberlist.Node) {
	member, err := p.memberFromNode(n)
	if err != nil {
		level.Warn(p.logger).Log("msg", "ignoring node with bad meta", "node", n.Name, "err", err)
		return
	}

	p.mut.Lock()
	p.members[member.Address()] = member
	p.suspects.Remove(member.Address())
	p.mut.Unlock()

	level.Info(p.logger).Log("msg", "member up", "addr", member.Address())
}

// NotifyLeave records a node that left. A graceful leave removes the member
// from the view; a failure-detector verdict marks it down and unreachable
// as observed by the local node.
func (p *Provider) NotifyLeave(n *memberlist.Node) {
	p.mut.Lock()
	defer p.mut.Unlock()

	addr, ok := p.lookupByNode(n)
	if !ok {
		return
	}

	if n.State == memberlist.StateLeft {
		delete(p.members, addr)
		p.suspects.Remove(addr)

		level.Info(p.logger).Log("msg", "member left", "addr", addr)

		return
	}

	m := p.members[addr]
	m.Status = cluster.StatusDown
	p.members[addr] = m
	p.suspects.Add(addr)

	level.Info(p.logger).Log("msg", "member unreachable", "addr", addr)
}

// NotifyUpdate refreshes a node's metadata (roles, datacenters, uid).
func (p *Provider) NotifyUpdate(n *memberlist.Node) {
	member, err := p.memberFromNode(n)
	if err != nil {
		return
	}

	p.mut.Lock()
	defer p.mut.Unlock()

	if curr, ok := p.members[member.Address()]; ok {
		member.Status = curr.Status
	}

	p.members[member.Address()] = member
}

func (p *Provider) memberFromNode(n *memberlist.Node) (cluster.Member, error) {
	meta, err := decodeMeta(n.Meta)
	if err != nil {
		return cluster.Member{}, err
	}

	addr := cluster.Address{
		Protocol: p.conf.Protocol,
		System:   meta.System,
		Host:     n.Addr.String(),
		Port:     int(n.Port),
	}

	return cluster.Member{
		UniqueAddress: cluster.UniqueAddress{Address: addr, UID: meta.UID},
		Status:        cluster.StatusUp,
		Roles:         set.FromSlice(meta.Roles),
		DataCenters:   set.FromSlice(meta.DataCenters),
	}, nil
}

// lookupByNode resolves a memberlist node to a known member address by its
// transport endpoint. Must be called with the mutex held.
func (p *Provider) lookupByNode(n *memberlist.Node) (cluster.Address, bool) {
	host, port := n.Addr.String(), int(n.Port)

	for addr := range p.members {
		if addr.Host == host && addr.Port == port {
			return addr, true
		}
	}

	return cluster.Address{}, false
}
