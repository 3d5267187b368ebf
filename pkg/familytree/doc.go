// Package familytree records genealogical entities (people and the events
// that relate them) and exposes them through a hypermedia JSON/HTTP API.
//
// Entities satisfy the Model contract: they render themselves into a
// Dictionary and are rebuilt from one by their ModelType. A Store persists
// those dictionaries keyed by (Kind, ID); the typed helpers GetItem, SaveItem
// and DeleteItem convert between models and stored records. Implementations
// of Store (memory, SQLite) are provided under the repo subpackages, and the
// HTTP layer lives in the api subpackage.
//
// # Links and back-references
//
// Person.Events and Event.People hold resource URLs, not pointers. Traversal
// always re-fetches the linked entity through the Store. Link maintenance
// between an event and its people is a sequence of independent saves with no
// rollback: a failure partway through leaves the earlier saves in place.
package familytree
