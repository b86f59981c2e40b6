package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"clusterhttp/api/model"
	"clusterhttp/cluster"
	"clusterhttp/internal/generic"
)

type MembersHandler struct {
	cluster Cluster
	mutator Mutator
}

func NewMembersHandler(cluster Cluster, mutator Mutator) *MembersHandler {
	return &MembersHandler{
		cluster: cluster,
		mutator: mutator,
	}
}

func (api *MembersHandler) Register(r chi.Router) {
	r.Get("/members", api.getMembers)
	r.Post("/members", api.postMember)
	// The address segment may be the fully qualified protocol://system@host:port
	// form, whose slashes defeat a single-segment pattern, so these routes take
	// the tail of the path as a whole.
	r.Get("/members/*", api.getMember)
	r.Delete("/members/*", api.deleteMember)
	r.Put("/members/*", api.putMember)
}

func (api *MembersHandler) getMembers(w http.ResponseWriter, r *http.Request) {
	view := cluster.BuildView(api.cluster.Snapshot())

	members := make([]model.Member, len(view.Members))
	for i, m := range view.Members {
		members[i] = toModelMember(m)
	}

	unreachable := make([]model.UnreachableGroup, len(view.Unreachable))
	for i, g := range view.Unreachable {
		observers := make([]string, len(g.ObservedBy))
		for j, obs := range g.ObservedBy {
			observers[j] = obs.String()
		}

		unreachable[i] = model.UnreachableGroup{
			Address:    g.Address.String(),
			ObservedBy: observers,
		}
	}

	resp := model.GetMembersResponse{
		SelfNode:    view.Self.String(),
		Members:     members,
		Unreachable: unreachable,
	}

	if view.Leader != nil {
		resp.Leader = view.Leader.String()
	}

	if view.Oldest != nil {
		resp.Oldest = view.Oldest.String()
	}

	render.JSON(w, r, resp)
}

func (api *MembersHandler) postMember(w http.ResponseWriter, r *http.Request) {
	addr, err := api.mutator.Join(r.Context(), r.FormValue("address"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, model.Message{Message: err.Error()})

		return
	}

	render.JSON(w, r, model.Message{Message: fmt.Sprintf("Joining %s", addr)})
}

func (api *MembersHandler) getMember(w http.ResponseWriter, r *http.Request) {
	query := memberQuery(r)

	snap := api.cluster.Snapshot()

	member, ok := snap.FindMember(query)
	if !ok {
		renderNotFound(w, r, fmt.Sprintf("Member [%s] not found", query))
		return
	}

	render.JSON(w, r, toModelMember(member))
}

func (api *MembersHandler) deleteMember(w http.ResponseWriter, r *http.Request) {
	api.mutate(w, r, cluster.OpLeave)
}

func (api *MembersHandler) putMember(w http.ResponseWriter, r *http.Request) {
	api.mutate(w, r, r.FormValue("operation"))
}

func (api *MembersHandler) mutate(w http.ResponseWriter, r *http.Request, operation string) {
	query := memberQuery(r)

	addr, err := api.mutator.Apply(r.Context(), api.cluster.Snapshot(), query, operation)

	switch {
	case errors.Is(err, cluster.ErrMemberNotFound):
		renderNotFound(w, r, fmt.Sprintf("Member [%s] not found", query))
	case errors.Is(err, cluster.ErrUnsupportedOperation):
		renderNotFound(w, r, "Operation not supported")
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		render.JSON(w, r, model.Message{Message: fmt.Sprintf("%s %s", mutationVerb(operation), addr)})
	}
}

// memberQuery extracts the address query from the request path. The router
// matches on the escaped path, so a percent-encoded address arrives here
// still escaped and has to be unescaped before matching.
func memberQuery(r *http.Request) string {
	query := chi.URLParam(r, "*")

	if unescaped, err := url.PathUnescape(query); err == nil {
		query = unescaped
	}

	return query
}

func mutationVerb(operation string) string {
	switch operation {
	case cluster.OpLeave:
		return "Leaving"
	case cluster.OpDown:
		return "Downing"
	default:
		// Apply rejects anything else before we get here.
		return "Applied"
	}
}

func toModelMember(m cluster.Member) model.Member {
	roles := m.Roles.Values()
	generic.SortSlice(roles, false)

	return model.Member{
		Address:      m.Address().String(),
		GenerationID: strconv.FormatInt(m.UniqueAddress.UID, 10),
		Status:       m.Status.String(),
		Roles:        roles,
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, model.Message{Message: msg})
}
