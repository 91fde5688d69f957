package model

// City is the top level of the location cascade.
type City struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Area belongs to a city.
type Area struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Shop belongs to an area.
type Shop struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Area      string `json:"area"`
	Contact   string `json:"contact,omitempty"`
	OwnerName string `json:"ownername,omitempty"`
}

// Placement identifies where an order is delivered.
type Placement struct {
	City string
	Area string
	Shop string
}
