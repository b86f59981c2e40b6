package gossip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	sockaddr "github.com/hashicorp/go-sockaddr"
	"github.com/hashicorp/memberlist"

	"clusterhttp/cluster"
	"clusterhttp/internal/generic"
	"clusterhttp/internal/multierror"
	"clusterhttp/internal/set"
)

const defaultLeaveTimeout = 5 * time.Second

type Config struct {
	// System is the logical system name shared by every node of the
	// cluster; it becomes part of the canonical address.
	System string
	// Protocol is the protocol tag of canonical addresses.
	Protocol string
	// DataCenter this node is tagged with.
	DataCenter string
	// Roles this node carries.
	Roles []string

	// BindAddr is the host:port the gossip transport binds to.
	BindAddr string
	// AdvertiseAddr is the host:port advertised to peers. Defaults to
	// BindAddr.
	AdvertiseAddr string

	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	LeaveTimeout  time.Duration

	Logger kitlog.Logger
}

// Provider implements the cluster state provider and the membership control
// interface on top of hashicorp/memberlist. It owns a mutex-guarded member
// map fed by memberlist events; snapshots are built fresh on every call and
// never shared mutable state.
type Provider struct {
	mut      sync.RWMutex
	conf     Config
	logger   kitlog.Logger
	self     cluster.UniqueAddress
	meta     []byte
	members  map[cluster.Address]cluster.Member
	suspects set.Set[cluster.Address]
	ml       *memberlist.Memberlist
}

func New(conf Config) (*Provider, error) {
	if conf.System == "" || conf.Protocol == "" {
		return nil, fmt.Errorf("gossip: system and protocol must be set")
	}

	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}

	advertise := conf.AdvertiseAddr
	if advertise == "" {
		advertise = conf.BindAddr
	}

	host, port, err := splitHostPort(advertise)
	if err != nil {
		return nil, err
	}

	self := cluster.UniqueAddress{
		Address: cluster.Address{
			Protocol: conf.Protocol,
			System:   conf.System,
			Host:     host,
			Port:     port,
		},
		// Wall-clock nanos give a generation id that increases across
		// restarts of the same address.
		UID: time.Now().UnixNano(),
	}

	meta, err := encodeMeta(nodeMeta{
		System:      conf.System,
		UID:         self.UID,
		Roles:       conf.Roles,
		DataCenters: []string{conf.DataCenter},
	})
	if err != nil {
		return nil, err
	}

	p := &Provider{
		conf:     conf,
		logger:   conf.Logger,
		self:     self,
		meta:     meta,
		members:  make(map[cluster.Address]cluster.Member, 1),
		suspects: set.New[cluster.Address](),
	}

	p.members[self.Address] = cluster.Member{
		UniqueAddress: self,
		Status:        cluster.StatusUp,
		Roles:         set.FromSlice(conf.Roles),
		DataCenters:   set.New(conf.DataCenter),
	}

	return p, nil
}

// Start launches the underlying memberlist instance.
func (p *Provider) Start() error {
	// The self identity must carry the host peers will actually see: join
	// events key members by the resolved transport address, and an identity
	// formed from an unresolved hostname would show up as a second member.
	advHost, err := resolveAdvertiseHost(p.self.Address.Host)
	if err != nil {
		return err
	}

	if advHost != p.self.Address.Host {
		p.rebindSelf(advHost)
	}

	cfg := memberlist.DefaultLANConfig()
	cfg.Name = p.self.Address.String()
	cfg.Delegate = p
	cfg.Events = p
	cfg.LogOutput = kitlog.NewStdlibAdapter(level.Debug(p.logger))

	bindHost, bindPort, err := splitHostPort(p.conf.BindAddr)
	if err != nil {
		return err
	}

	cfg.BindAddr = bindHost
	cfg.BindPort = bindPort
	cfg.AdvertiseAddr = p.self.Address.Host
	cfg.AdvertisePort = p.self.Address.Port

	if p.conf.ProbeInterval > 0 {
		cfg.ProbeInterval = p.conf.ProbeInterval
	}

	if p.conf.ProbeTimeout > 0 {
		cfg.ProbeTimeout = p.conf.ProbeTimeout
	}

	ml, err := memberlist.Create(cfg)
	if err != nil {
		return fmt.Errorf("create memberlist: %w", err)
	}

	p.mut.Lock()
	p.ml = ml
	p.mut.Unlock()

	return nil
}

// Stop leaves the cluster gracefully and shuts the gossip transport down.
func (p *Provider) Stop(ctx context.Context) error {
	ml := p.memberlist()
	if ml == nil {
		return nil
	}

	errs := multierror.New[string]()

	if err := ml.Leave(p.leaveTimeout()); err != nil {
		errs.Add("leave", err)
	}

	if err := ml.Shutdown(); err != nil {
		errs.Add("shutdown", err)
	}

	return errs.Combined()
}

// Self returns the canonical unique address of the local node.
func (p *Provider) Self() cluster.UniqueAddress {
	return p.self
}

// Snapshot builds a fresh, immutable view of the membership as known
// locally. The leader is the Up member with the smallest generation id,
// which is deterministic across nodes whose views have converged.
func (p *Provider) Snapshot() cluster.Snapshot {
	p.mut.RLock()
	defer p.mut.RUnlock()

	members := generic.MapValues(p.members)

	sort.Slice(members, func(i, j int) bool {
		return members[i].UniqueAddress.OlderThan(members[j].UniqueAddress)
	})

	var leader *cluster.Address
	for i := range members {
		if members[i].Status == cluster.StatusUp {
			addr := members[i].Address()
			leader = &addr

			break
		}
	}

	var unreachability map[cluster.Address][]cluster.Address

	if len(p.suspects) > 0 {
		peers := p.suspects.Values()
		sort.Slice(peers, func(i, j int) bool {
			return peers[i].String() < peers[j].String()
		})

		// Only the local failure detector's observations are known here;
		// the local node is the sole observer.
		unreachability = map[cluster.Address][]cluster.Address{
			p.self.Address: peers,
		}
	}

	return cluster.Snapshot{
		Members:        members,
		Leader:         leader,
		SelfAddress:    p.self.Address,
		SelfDataCenter: p.conf.DataCenter,
		Unreachability: unreachability,
	}
}

// JoinHostPort joins the cluster through a seed node's gossip address.
func (p *Provider) JoinHostPort(ctx context.Context, hostport string) error {
	ml := p.memberlist()
	if ml == nil {
		return fmt.Errorf("gossip: not started")
	}

	if _, err := ml.Join([]string{hostport}); err != nil {
		return fmt.Errorf("join %s: %w", hostport, err)
	}

	return nil
}

// Join implements cluster.Control.
func (p *Provider) Join(ctx context.Context, addr cluster.Address) error {
	return p.JoinHostPort(ctx, addr.HostPort())
}

// Leave implements cluster.Control. Leaving the local node detaches it from
// gossip in the background; leaving a peer sends it a control message
// asking it to go. Both are fire-and-forget.
func (p *Provider) Leave(ctx context.Context, addr cluster.Address) error {
	ml := p.memberlist()
	if ml == nil {
		return fmt.Errorf("gossip: not started")
	}

	p.setStatus(addr, cluster.StatusLeaving)

	if addr == p.self.Address {
		go func() {
			if err := ml.Leave(p.leaveTimeout()); err != nil {
				level.Warn(p.logger).Log("msg", "failed to leave cluster", "err", err)
			}
		}()

		return nil
	}

	return p.sendControl(ml, addr, cluster.OpLeave)
}

// Down implements cluster.Control: the member is marked down in the local
// view immediately and, best effort, asked to detach itself.
func (p *Provider) Down(ctx context.Context, addr cluster.Address) error {
	p.mut.Lock()

	m, ok := p.members[addr]
	if !ok {
		p.mut.Unlock()
		return fmt.Errorf("%w: %s", cluster.ErrMemberNotFound, addr)
	}

	m.Status = cluster.StatusDown
	p.members[addr] = m
	p.suspects.Add(addr)
	p.mut.Unlock()

	if ml := p.memberlist(); ml != nil && addr != p.self.Address {
		if err := p.sendControl(ml, addr, cluster.OpDown); err != nil {
			level.Warn(p.logger).Log("msg", "failed to notify downed node", "addr", addr, "err", err)
		}
	}

	return nil
}

type controlMsg struct {
	Op string `json:"op"`
}

func (p *Provider) sendControl(ml *memberlist.Memberlist, addr cluster.Address, op string) error {
	node, ok := p.findNode(ml, addr)
	if !ok {
		return fmt.Errorf("%w: %s", cluster.ErrMemberNotFound, addr)
	}

	msg, err := json.Marshal(controlMsg{Op: op})
	if err != nil {
		return fmt.Errorf("encode control message: %w", err)
	}

	if err := ml.SendReliable(node, msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", op, addr, err)
	}

	return nil
}

func (p *Provider) findNode(ml *memberlist.Memberlist, addr cluster.Address) (*memberlist.Node, bool) {
	name := addr.String()

	for _, n := range ml.Members() {
		if n.Name == name {
			return n, true
		}
	}

	return nil, false
}

func (p *Provider) memberlist() *memberlist.Memberlist {
	p.mut.RLock()
	defer p.mut.RUnlock()

	return p.ml
}

func (p *Provider) leaveTimeout() time.Duration {
	if p.conf.LeaveTimeout > 0 {
		return p.conf.LeaveTimeout
	}

	return defaultLeaveTimeout
}

func (p *Provider) setStatus(addr cluster.Address, status cluster.Status) {
	p.mut.Lock()
	defer p.mut.Unlock()

	if m, ok := p.members[addr]; ok {
		m.Status = status
		p.members[addr] = m
	}
}

// resolveAdvertiseHost pins the advertised host to a concrete IP. An
// unspecified or empty host falls back to a private interface address, the
// same way the gossip transport itself would pick one.
func resolveAdvertiseHost(host string) (string, error) {
	ip := net.ParseIP(host)

	switch {
	case host == "" || (ip != nil && ip.IsUnspecified()):
		priv, err := sockaddr.GetPrivateIP()
		if err != nil {
			return "", fmt.Errorf("gossip: no private address to advertise: %w", err)
		}

		if priv == "" {
			return "", fmt.Errorf("gossip: no private address to advertise")
		}

		return priv, nil
	case ip != nil:
		return host, nil
	default:
		ipAddr, err := net.ResolveIPAddr("ip", host)
		if err != nil {
			return "", fmt.Errorf("gossip: resolve advertise host %q: %w", host, err)
		}

		return ipAddr.IP.String(), nil
	}
}

// rebindSelf re-keys the local identity and its member entry under the
// resolved advertise host. The generation id is preserved.
func (p *Provider) rebindSelf(host string) {
	p.mut.Lock()
	defer p.mut.Unlock()

	old := p.self.Address
	p.self.Address.Host = host

	if m, ok := p.members[old]; ok {
		delete(p.members, old)
		m.UniqueAddress = p.self
		p.members[p.self.Address] = m
	}
}

func splitHostPort(hostport string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return "", 0, fmt.Errorf("gossip: invalid address %q: %w", hostport, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("gossip: invalid port %q", portStr)
	}

	return host, port, nil
}
