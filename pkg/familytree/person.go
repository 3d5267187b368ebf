package familytree

import (
	"slices"
)

// Person is information about a single person.
type Person struct {
	ID          string
	DisplayName string
	// Events holds the URLs of events this person takes part in.
	Events []string
}

// PersonType builds a Person from its dictionary representation.
var PersonType = ModelType[*Person]{
	Kind:           KindPerson,
	FromDictionary: PersonFromDictionary,
}

// NewPerson creates a person with the given display name and no events.
func NewPerson(displayName string) (*Person, error) {
	if displayName == "" {
		return nil, &FieldError{Kind: KindPerson, Field: "display_name", Err: ErrMissingField}
	}
	return &Person{DisplayName: displayName, Events: []string{}}, nil
}

func (p *Person) Kind() Kind {
	return KindPerson
}

func (p *Person) Identifier() string {
	return p.ID
}

// ToDictionary returns the dictionary representation of the person. The
// events list is a copy.
func (p *Person) ToDictionary() Dictionary {
	events := make([]string, len(p.Events))
	copy(events, p.Events)
	return Dictionary{
		"id":           p.ID,
		"display_name": p.DisplayName,
		"events":       events,
	}
}

// PersonFromDictionary creates a Person from a dictionary. The display_name
// field is required.
func PersonFromDictionary(data Dictionary) (*Person, error) {
	displayName, err := requiredString(KindPerson, data, "display_name")
	if err != nil {
		return nil, err
	}
	id, err := optionalString(KindPerson, data, "id")
	if err != nil {
		return nil, err
	}
	events, err := stringList(KindPerson, data, "events")
	if err != nil {
		return nil, err
	}
	return &Person{ID: id, DisplayName: displayName, Events: events}, nil
}

// AddEvent appends an event URL to the person's events.
func (p *Person) AddEvent(eventURL string) {
	p.Events = append(p.Events, eventURL)
}

// RemoveEvent removes the first occurrence of eventURL. It fails with
// ErrEventLinkMissing when the person does not reference the event.
func (p *Person) RemoveEvent(eventURL string) error {
	i := slices.Index(p.Events, eventURL)
	if i < 0 {
		return &LinkError{PersonID: p.ID, URL: eventURL, Err: ErrEventLinkMissing}
	}
	p.Events = slices.Delete(p.Events, i, i+1)
	return nil
}
