package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"clusterhttp/api/handler/mock"
	"clusterhttp/api/model"
	"clusterhttp/sharding"
)

const testShardTimeout = 5 * time.Second

func serveShards(t *testing.T, setup func(s *mock.MockShardRegions), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	var (
		mux     = chi.NewMux()
		ctrl    = gomock.NewController(t)
		regions = mock.NewMockShardRegions(ctrl)
	)

	setup(regions)
	NewShardsHandler(regions, testShardTimeout).Register(mux)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)

	return recorder
}

func TestShardsHandler_getRegion(t *testing.T) {
	tests := map[string]struct {
		target   string
		setup    func(s *mock.MockShardRegions)
		wantCode int
		wantBody model.GetShardsResponse
	}{
		"WithShards": {
			target: "/shards/users",
			setup: func(s *mock.MockShardRegions) {
				s.EXPECT().
					DescribeRegion(gomock.Any(), "users", testShardTimeout).
					Return([]sharding.ShardStat{
						{ShardID: "S1", EntityCount: 1},
						{ShardID: "S2", EntityCount: 3},
					}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: model.GetShardsResponse{
				Shards: []model.ShardStat{
					{ShardID: "S1", EntityCount: 1},
					{ShardID: "S2", EntityCount: 3},
				},
			},
		},
		"EmptyRegion": {
			target: "/shards/users",
			setup: func(s *mock.MockShardRegions) {
				s.EXPECT().
					DescribeRegion(gomock.Any(), "users", testShardTimeout).
					Return([]sharding.ShardStat{}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: model.GetShardsResponse{
				Shards: []model.ShardStat{},
			},
		},
		"TimeoutOverride": {
			target: "/shards/users?timeout=250ms",
			setup: func(s *mock.MockShardRegions) {
				s.EXPECT().
					DescribeRegion(gomock.Any(), "users", 250*time.Millisecond).
					Return([]sharding.ShardStat{}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: model.GetShardsResponse{
				Shards: []model.ShardStat{},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			recorder := serveShards(t, tt.setup, httptest.NewRequest("GET", tt.target, nil))

			require.Equal(t, tt.wantCode, recorder.Code)

			var resp model.GetShardsResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
			assert.Equal(t, tt.wantBody, resp)
		})
	}
}

func TestShardsHandler_regionNotFound(t *testing.T) {
	recorder := serveShards(t, func(s *mock.MockShardRegions) {
		s.EXPECT().
			DescribeRegion(gomock.Any(), "nope", testShardTimeout).
			Return(nil, sharding.ErrRegionNotFound)
	}, httptest.NewRequest("GET", "/shards/nope", nil))

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var resp model.Message
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Shard region [nope] not found", resp.Message)
}

func TestShardsHandler_badTimeout(t *testing.T) {
	recorder := serveShards(t, func(s *mock.MockShardRegions) {},
		httptest.NewRequest("GET", "/shards/users?timeout=soon", nil))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
