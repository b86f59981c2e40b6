package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"clusterhttp/api/model"
	"clusterhttp/cluster"
)

type DataCentersHandler struct {
	cluster Cluster
}

func NewDataCentersHandler(cluster Cluster) *DataCentersHandler {
	return &DataCentersHandler{
		cluster: cluster,
	}
}

func (api *DataCentersHandler) Register(r chi.Router) {
	r.Get("/dc", api.getDataCenters)
}

func (api *DataCentersHandler) getDataCenters(w http.ResponseWriter, r *http.Request) {
	view := cluster.BuildDataCenterView(api.cluster.Snapshot())

	render.JSON(w, r, model.GetDataCentersResponse{
		SelfDataCenter:         view.Self,
		AllDataCenters:         view.All,
		UnreachableDataCenters: view.Unreachable,
	})
}
