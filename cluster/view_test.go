package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clusterhttp/internal/set"
)

func testAddr(n int) Address {
	return Address{Protocol: "tcp", System: "cluster", Host: "node" + string(rune('0'+n)), Port: 7946}
}

func testMember(n int, status Status) Member {
	return Member{
		UniqueAddress: UniqueAddress{Address: testAddr(n), UID: int64(n)},
		Status:        status,
		Roles:         set.New[string](),
		DataCenters:   set.New("dc1"),
	}
}

func TestBuildView_Oldest(t *testing.T) {
	tests := map[string]struct {
		members    []Member
		wantOldest *Address
	}{
		"SmallestUpWins": {
			members: []Member{
				testMember(3, StatusUp),
				testMember(1, StatusUp),
				testMember(2, StatusUp),
			},
			wantOldest: addrPtr(testAddr(1)),
		},
		"NonUpExcluded": {
			members: []Member{
				testMember(1, StatusJoining),
				testMember(2, StatusDown),
				testMember(3, StatusUp),
				testMember(4, StatusLeaving),
			},
			wantOldest: addrPtr(testAddr(3)),
		},
		"NoUpMembers": {
			members: []Member{
				testMember(1, StatusJoining),
				testMember(2, StatusExiting),
			},
			wantOldest: nil,
		},
		"Empty": {
			members:    nil,
			wantOldest: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			view := BuildView(Snapshot{Members: tt.members})
			assert.Equal(t, tt.wantOldest, view.Oldest)
		})
	}
}

func TestBuildView_MembersSortedByUID(t *testing.T) {
	snap := Snapshot{
		Members: []Member{
			testMember(2, StatusUp),
			testMember(3, StatusJoining),
			testMember(1, StatusUp),
		},
	}

	view := BuildView(snap)

	require.Len(t, view.Members, 3)
	assert.Equal(t, int64(1), view.Members[0].UniqueAddress.UID)
	assert.Equal(t, int64(2), view.Members[1].UniqueAddress.UID)
	assert.Equal(t, int64(3), view.Members[2].UniqueAddress.UID)

	// The snapshot itself must not be reordered.
	assert.Equal(t, int64(2), snap.Members[0].UniqueAddress.UID)
}

func TestBuildView_LeaderCopied(t *testing.T) {
	leader := testAddr(1)
	view := BuildView(Snapshot{Leader: &leader})

	require.NotNil(t, view.Leader)
	assert.Equal(t, leader, *view.Leader)
}

func TestUnreachableGroups_RoundTrip(t *testing.T) {
	snap := Snapshot{
		Unreachability: map[Address][]Address{
			testAddr(1): {testAddr(3), testAddr(4)},
			testAddr(2): {testAddr(3)},
		},
	}

	groups := UnreachableGroups(snap)
	require.Len(t, groups, 2)

	// Groups sorted by unreachable address, observers sorted within.
	assert.Equal(t, testAddr(3), groups[0].Address)
	assert.Equal(t, []Address{testAddr(1), testAddr(2)}, groups[0].ObservedBy)
	assert.Equal(t, testAddr(4), groups[1].Address)
	assert.Equal(t, []Address{testAddr(1)}, groups[1].ObservedBy)

	// Rebuilding the observer→unreachable edge set from the groups must
	// reproduce the original relation.
	edges := make(map[Address]map[Address]bool)
	for _, g := range groups {
		for _, obs := range g.ObservedBy {
			if edges[obs] == nil {
				edges[obs] = make(map[Address]bool)
			}
			edges[obs][g.Address] = true
		}
	}

	for observer, peers := range snap.Unreachability {
		require.Len(t, edges[observer], len(peers))
		for _, peer := range peers {
			assert.True(t, edges[observer][peer])
		}
	}
}

func TestUnreachableGroups_Deterministic(t *testing.T) {
	snap := Snapshot{
		Unreachability: map[Address][]Address{
			testAddr(1): {testAddr(5), testAddr(4), testAddr(3)},
			testAddr(2): {testAddr(4), testAddr(5)},
			testAddr(6): {testAddr(3)},
		},
	}

	first := UnreachableGroups(snap)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, UnreachableGroups(snap))
	}
}

func addrPtr(a Address) *Address {
	return &a
}
