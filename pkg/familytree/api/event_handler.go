package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/family-tree/pkg/familytree"
)

// EventHandler handles HTTP requests for events
type EventHandler struct {
	store  familytree.Store
	router *Router
}

// NewEventHandler creates a new event handler
func NewEventHandler(store familytree.Store, router *Router) *EventHandler {
	return &EventHandler{
		store:  store,
		router: router,
	}
}

// Register mounts the event routes on the router
func (h *EventHandler) Register(rt *Router) {
	rt.Handle(RouteCreateEvent, "/event", map[string]http.HandlerFunc{
		http.MethodPost: h.CreateEvent,
	})
	rt.Handle(RouteEvent, "/event/{id:[a-f0-9]+}", map[string]http.HandlerFunc{
		http.MethodGet:    h.GetEvent,
		http.MethodDelete: h.DeleteEvent,
	})
}

// CreateEvent creates a new event and links it to every person listed in
// its people. The event is stored before any person is updated and nothing
// is rolled back if a person update fails.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	x := newExchange(w, r, h.router, "EventHandler")

	event, err := deserializeModel(x, familytree.EventType)
	if err != nil {
		x.writeError(err)
		return
	}

	event.ID = familytree.NewID()
	if err := familytree.SaveItem(ctx, h.store, event, event.ID); err != nil {
		x.writeError(err)
		return
	}

	eventURL, err := x.urlFor(RouteEvent, event.ID)
	if err != nil {
		x.writeError(err)
		return
	}

	for _, personURL := range event.People {
		personID := familytree.PersonIDFromURL(personURL)
		person, err := familytree.GetItem(ctx, h.store, familytree.PersonType, personID)
		if err != nil {
			slog.Error("Failed to link event to person", "event_id", event.ID, "person_url", personURL, "error", err)
			x.writeError(err)
			return
		}
		person.AddEvent(eventURL)
		if err := familytree.SaveItem(ctx, h.store, person, person.ID); err != nil {
			x.writeError(err)
			return
		}
	}

	if err := x.serializeModel(event, http.StatusCreated,
		withSelf(RouteEvent),
		withActions(eventActions(event)...),
	); err != nil {
		x.writeError(err)
		return
	}
	slog.Info("Event created", "event_id", event.ID, "people", len(event.People))
}

// GetEvent retrieves an event by ID
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	x := newExchange(w, r, h.router, "EventHandler")
	id := chi.URLParam(r, "id")

	event, err := familytree.GetItem(r.Context(), h.store, familytree.EventType, id)
	if err != nil {
		x.writeError(err)
		return
	}

	if err := x.serializeModel(event, http.StatusOK,
		withSelf(RouteEvent),
		withActions(eventActions(event)...),
	); err != nil {
		x.writeError(err)
	}
}

// DeleteEvent unlinks the event from each of its people, then deletes it.
// The link removed from each person is the URL of this request.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	x := newExchange(w, r, h.router, "EventHandler")
	id := chi.URLParam(r, "id")

	event, err := familytree.GetItem(ctx, h.store, familytree.EventType, id)
	if err != nil {
		x.writeError(err)
		return
	}

	eventURL := fullURL(r)
	for _, personURL := range event.People {
		personID := familytree.PersonIDFromURL(personURL)
		person, err := familytree.GetItem(ctx, h.store, familytree.PersonType, personID)
		if err != nil {
			x.writeError(err)
			return
		}
		if err := person.RemoveEvent(eventURL); err != nil {
			slog.Error("Event link inconsistent", "event_id", id, "person_id", personID, "error", err)
			x.writeError(err)
			return
		}
		if err := familytree.SaveItem(ctx, h.store, person, person.ID); err != nil {
			x.writeError(err)
			return
		}
	}

	if err := familytree.DeleteItem(ctx, h.store, familytree.KindEvent, id); err != nil {
		x.writeError(err)
		return
	}

	slog.Info("Event deleted", "event_id", id)
	w.WriteHeader(http.StatusNoContent)
}
