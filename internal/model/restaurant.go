package model

// Restaurant is one entry of the public catalog. Rows are seeded by
// operators; the API only ever reads them.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name shown in listings and reservation views.
//  Location    – free-form address or neighbourhood, searchable.
//  Description – optional blurb, may be empty.
type Restaurant struct {
	ID          uint64 `json:"restaurant_id"` // restaurants.restaurant_id
	Name        string `json:"name"`          // restaurants.name
	Location    string `json:"location"`      // restaurants.location
	Description string `json:"description"`   // restaurants.description
}
