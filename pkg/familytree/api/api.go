// Package api exposes people and events as hypermedia JSON resources.
//
// Every representation carries a self link (mirrored in the Location
// header) and an actions map listing the state transitions available on the
// resource, each as a method and an absolute URL:
//
//	{
//	  "id": "5f0c...",
//	  "display_name": "Ada",
//	  "events": [],
//	  "self": "http://localhost:7654/person/5f0c...",
//	  "actions": {
//	    "delete-person": {"method": "DELETE", "url": "http://localhost:7654/person/5f0c..."}
//	  }
//	}
package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/family-tree/pkg/familytree"
)

// New builds the application router with the person and event resources
// bound to store.
func New(store familytree.Store, middlewares ...Middleware) *Router {
	rt := NewRouter(middlewares...)

	NewPersonHandler(store, rt).Register(rt)
	NewEventHandler(store, rt).Register(rt)

	rt.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	return rt
}
