package api

import (
	"net/http"

	"github.com/tendant/family-tree/pkg/familytree"
)

// personActions returns the actions applicable to a person.
func personActions(p *familytree.Person) []Action {
	return []Action{
		{Name: "delete-person", Method: http.MethodDelete, Route: RoutePerson, Args: []string{p.ID}},
	}
}

// eventActions returns the actions applicable to an event.
func eventActions(e *familytree.Event) []Action {
	return []Action{
		{Name: "delete-event", Method: http.MethodDelete, Route: RouteEvent, Args: []string{e.ID}},
	}
}
