package properties

// ListData is the catalog page.
type ListData struct {
	Items            []Property `json:"items"                      doc:"Listings on this page"`
	Total            int        `json:"total"                      doc:"Listings matching the filters across all pages"`
	Personalized     bool       `json:"personalized"               doc:"Whether the visitor's city narrowed the catalog"`
	PersonalizedCity string     `json:"personalizedCity,omitempty" doc:"Normalized city used for personalization" example:"gramado"`
}

// ListOutput for GET /properties
type ListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// GetOutput for GET /properties/{id}
type GetOutput struct {
	Body Property
}
