package favorites

// ListData is the user's saved listings.
type ListData struct {
	Items []Favorite `json:"items" doc:"Saved listings, newest first"`
	Total int        `json:"total" doc:"Number of saved listings"`
}

// ListOutput for GET /me/favorites
type ListOutput struct {
	Body ListData
}

// ToggleOutput for POST /me/favorites/{propertyId}
type ToggleOutput struct {
	Body ToggleData
}
