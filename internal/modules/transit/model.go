// README: Transit network entities (locations and routes).
package transit

import "cabway/internal/types"

// Location is a named node of the transit network. Names are unique.
type Location struct {
	ID   types.ID
	Name string
}

// Route is an undirected edge between two locations with a travel
// duration in minutes. Traversal is permitted in either direction at
// the same duration.
type Route struct {
	ID          types.ID
	FromID      types.ID
	ToID        types.ID
	FromName    string
	ToName      string
	DurationMin int
}
