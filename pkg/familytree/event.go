package familytree

import (
	"strings"
)

// Event is an interesting occurrence that involves people.
type Event struct {
	ID string
	// Type is an open-ended event type such as "birth" or "family".
	Type string
	// People holds the URLs of the people involved in the event.
	People []string
}

// EventType builds an Event from its dictionary representation.
var EventType = ModelType[*Event]{
	Kind:           KindEvent,
	FromDictionary: EventFromDictionary,
}

func (e *Event) Kind() Kind {
	return KindEvent
}

func (e *Event) Identifier() string {
	return e.ID
}

// ToDictionary returns the dictionary representation of the event. The
// type key is omitted when the event has no type.
func (e *Event) ToDictionary() Dictionary {
	people := make([]string, len(e.People))
	copy(people, e.People)
	d := Dictionary{
		"id":     e.ID,
		"people": people,
	}
	if e.Type != "" {
		d["type"] = e.Type
	}
	return d
}

// EventFromDictionary creates an Event from a dictionary. Every field is
// optional.
func EventFromDictionary(data Dictionary) (*Event, error) {
	id, err := optionalString(KindEvent, data, "id")
	if err != nil {
		return nil, err
	}
	eventType, err := optionalString(KindEvent, data, "type")
	if err != nil {
		return nil, err
	}
	people, err := stringList(KindEvent, data, "people")
	if err != nil {
		return nil, err
	}
	return &Event{ID: id, Type: eventType, People: people}, nil
}

// PersonIDFromURL extracts the person id from a person resource URL: the
// trailing path segment.
func PersonIDFromURL(personURL string) string {
	if i := strings.LastIndex(personURL, "/"); i >= 0 {
		return personURL[i+1:]
	}
	return personURL
}
