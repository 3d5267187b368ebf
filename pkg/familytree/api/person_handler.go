package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/family-tree/pkg/familytree"
)

// PersonHandler handles HTTP requests for people
type PersonHandler struct {
	store  familytree.Store
	router *Router
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(store familytree.Store, router *Router) *PersonHandler {
	return &PersonHandler{
		store:  store,
		router: router,
	}
}

// Register mounts the person routes on the router
func (h *PersonHandler) Register(rt *Router) {
	rt.Handle(RouteCreatePerson, "/person", map[string]http.HandlerFunc{
		http.MethodPost: h.CreatePerson,
	})
	rt.Handle(RoutePerson, "/person/{id:[a-f0-9]+}", map[string]http.HandlerFunc{
		http.MethodGet:    h.GetPerson,
		http.MethodDelete: h.DeletePerson,
	})
}

// CreatePerson creates a new person from a {"display_name": ...} body
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	x := newExchange(w, r, h.router, "PersonHandler")

	person, err := deserializeModel(x, familytree.PersonType)
	if err != nil {
		x.writeError(err)
		return
	}

	// Links are only written by event creation.
	person.ID = familytree.NewID()
	person.Events = []string{}

	if err := familytree.SaveItem(r.Context(), h.store, person, person.ID); err != nil {
		x.writeError(err)
		return
	}

	if err := x.serializeModel(person, http.StatusCreated,
		withSelf(RoutePerson),
		withActions(personActions(person)...),
	); err != nil {
		x.writeError(err)
		return
	}
	slog.Info("Person created", "person_id", person.ID)
}

// GetPerson retrieves a person by ID
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	x := newExchange(w, r, h.router, "PersonHandler")
	id := chi.URLParam(r, "id")

	person, err := familytree.GetItem(r.Context(), h.store, familytree.PersonType, id)
	if err != nil {
		x.writeError(err)
		return
	}

	if err := x.serializeModel(person, http.StatusOK,
		withSelf(RoutePerson),
		withActions(personActions(person)...),
	); err != nil {
		x.writeError(err)
	}
}

// DeletePerson deletes a person by ID. Events that link to the person are
// left unchanged.
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	x := newExchange(w, r, h.router, "PersonHandler")
	id := chi.URLParam(r, "id")

	if err := familytree.DeleteItem(r.Context(), h.store, familytree.KindPerson, id); err != nil {
		x.writeError(err)
		return
	}

	slog.Info("Person deleted", "person_id", id)
	w.WriteHeader(http.StatusNoContent)
}
