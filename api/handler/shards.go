package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"clusterhttp/api/model"
	"clusterhttp/sharding"
)

type ShardsHandler struct {
	regions ShardRegions
	timeout time.Duration
}

func NewShardsHandler(regions ShardRegions, timeout time.Duration) *ShardsHandler {
	return &ShardsHandler{
		regions: regions,
		timeout: timeout,
	}
}

func (api *ShardsHandler) Register(r chi.Router) {
	r.Get("/shards/{region}", api.getRegion)
}

func (api *ShardsHandler) getRegion(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "region")

	timeout := api.timeout
	if v := r.URL.Query().Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid timeout: %v", err), http.StatusBadRequest)
			return
		}

		timeout = d
	}

	stats, err := api.regions.DescribeRegion(r.Context(), name, timeout)

	switch {
	case errors.Is(err, sharding.ErrRegionNotFound):
		renderNotFound(w, r, fmt.Sprintf("Shard region [%s] not found", name))
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		shards := make([]model.ShardStat, len(stats))
		for i, s := range stats {
			shards[i] = model.ShardStat{
				ShardID:     s.ShardID,
				EntityCount: s.EntityCount,
			}
		}

		render.JSON(w, r, model.GetShardsResponse{Shards: shards})
	}
}
