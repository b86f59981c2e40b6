package cluster

import (
	"context"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControl struct {
	joined []Address
	left   []Address
	downed []Address
}

func (c *fakeControl) Join(ctx context.Context, addr Address) error {
	c.joined = append(c.joined, addr)
	return nil
}

func (c *fakeControl) Leave(ctx context.Context, addr Address) error {
	c.left = append(c.left, addr)
	return nil
}

func (c *fakeControl) Down(ctx context.Context, addr Address) error {
	c.downed = append(c.downed, addr)
	return nil
}

func (c *fakeControl) calls() int {
	return len(c.joined) + len(c.left) + len(c.downed)
}

func testSnapshot() Snapshot {
	return Snapshot{
		Members: []Member{
			testMember(1, StatusUp),
			testMember(2, StatusUp),
		},
	}
}

func TestDispatcher_Join(t *testing.T) {
	control := &fakeControl{}
	d := NewDispatcher(control, kitlog.NewNopLogger())

	addr, err := d.Join(context.Background(), "tcp://cluster@node9:7946")
	require.NoError(t, err)

	want := Address{Protocol: "tcp", System: "cluster", Host: "node9", Port: 7946}
	assert.Equal(t, want, addr)
	assert.Equal(t, []Address{want}, control.joined)
}

func TestDispatcher_JoinMalformed(t *testing.T) {
	control := &fakeControl{}
	d := NewDispatcher(control, kitlog.NewNopLogger())

	_, err := d.Join(context.Background(), "not-an-address")
	require.ErrorIs(t, err, ErrInvalidAddress)
	assert.Zero(t, control.calls())
}

func TestDispatcher_Apply(t *testing.T) {
	tests := map[string]struct {
		query     string
		operation string
		wantErr   error
		check     func(t *testing.T, control *fakeControl)
	}{
		"LeaveMatched": {
			query:     "cluster@node1:7946", // abbreviated form
			operation: OpLeave,
			check: func(t *testing.T, control *fakeControl) {
				// The canonical address is forwarded, not the query.
				assert.Equal(t, []Address{testAddr(1)}, control.left)
			},
		},
		"DownMatched": {
			query:     "tcp://cluster@node2:7946",
			operation: OpDown,
			check: func(t *testing.T, control *fakeControl) {
				assert.Equal(t, []Address{testAddr(2)}, control.downed)
			},
		},
		"MemberNotFound": {
			query:     "cluster@node9:7946",
			operation: OpLeave,
			wantErr:   ErrMemberNotFound,
		},
		"UnsupportedOperation": {
			query:     "cluster@node1:7946",
			operation: "reboot",
			wantErr:   ErrUnsupportedOperation,
		},
		"NotFoundWinsOverBadOperation": {
			query:     "cluster@node9:7946",
			operation: "reboot",
			wantErr:   ErrMemberNotFound,
		},
		"MalformedQuery": {
			query:     "%%%",
			operation: OpLeave,
			wantErr:   ErrMemberNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			control := &fakeControl{}
			d := NewDispatcher(control, kitlog.NewNopLogger())

			addr, err := d.Apply(context.Background(), testSnapshot(), tt.query, tt.operation)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, control.calls(), "no command must be forwarded on failure")
				return
			}

			require.NoError(t, err)
			assert.True(t, addr.Matches(tt.query))
			tt.check(t, control)
		})
	}
}

func TestDispatcher_ApplyNotFoundIsNotFound(t *testing.T) {
	control := &fakeControl{}
	d := NewDispatcher(control, kitlog.NewNopLogger())

	_, err := d.Apply(context.Background(), testSnapshot(), "cluster@node9:7946", "reboot")

	// The two failure kinds stay distinguishable.
	require.ErrorIs(t, err, ErrMemberNotFound)
	require.NotErrorIs(t, err, ErrUnsupportedOperation)
}
