package cluster

import (
	"context"
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Operations accepted by Dispatcher.Apply.
const (
	OpLeave = "leave"
	OpDown  = "down"
)

// Control is the membership control interface of the underlying protocol.
// Commands are fire-and-forget: a nil error means the command was handed
// off, not that the mutation has converged through gossip.
type Control interface {
	Join(ctx context.Context, addr Address) error
	Leave(ctx context.Context, addr Address) error
	Down(ctx context.Context, addr Address) error
}

// Dispatcher resolves address queries against a snapshot and forwards
// membership mutations to the control interface.
type Dispatcher struct {
	control Control
	logger  kitlog.Logger
}

func NewDispatcher(control Control, logger kitlog.Logger) *Dispatcher {
	return &Dispatcher{
		control: control,
		logger:  logger,
	}
}

// Join forwards a join command for the given address. The address does not
// have to be a known member (a joining node is by definition not one yet),
// but it must parse in the fully qualified form.
func (d *Dispatcher) Join(ctx context.Context, query string) (Address, error) {
	addr, err := ParseAddress(query)
	if err != nil {
		return Address{}, err
	}

	if err := d.control.Join(ctx, addr); err != nil {
		return Address{}, fmt.Errorf("join %s: %w", addr, err)
	}

	level.Info(d.logger).Log("msg", "join forwarded", "addr", addr)

	return addr, nil
}

// Apply resolves the query against the snapshot and forwards the requested
// mutation using the member's canonical address, not the possibly
// abbreviated query. The existence check runs before the operation check:
// an unknown address reports ErrMemberNotFound even when the operation
// value is not recognized either.
func (d *Dispatcher) Apply(ctx context.Context, snap Snapshot, query, operation string) (Address, error) {
	member, ok := snap.FindMember(query)
	if !ok {
		return Address{}, fmt.Errorf("%w: %s", ErrMemberNotFound, query)
	}

	addr := member.Address()

	switch operation {
	case OpLeave:
		if err := d.control.Leave(ctx, addr); err != nil {
			return Address{}, fmt.Errorf("leave %s: %w", addr, err)
		}
	case OpDown:
		if err := d.control.Down(ctx, addr); err != nil {
			return Address{}, fmt.Errorf("down %s: %w", addr, err)
		}
	default:
		return Address{}, fmt.Errorf("%w: %q", ErrUnsupportedOperation, operation)
	}

	level.Info(d.logger).Log("msg", "mutation forwarded", "op", operation, "addr", addr)

	return addr, nil
}
