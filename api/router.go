package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clusterhttp/api/handler"
	"clusterhttp/internal/telemetry"
)

// CreateRouter builds the management API router. shardTimeout bounds shard
// region queries unless the request overrides it.
func CreateRouter(cluster handler.Cluster, mutator handler.Mutator, shards handler.ShardRegions, shardTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(telemetry.Instrument)

	handler.NewMembersHandler(cluster, mutator).Register(r)
	handler.NewShardsHandler(shards, shardTimeout).Register(r)
	handler.NewDataCentersHandler(cluster).Register(r)

	r.Method(http.MethodGet, "/metrics", telemetry.MetricsHandler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
