package leads

// SubmitInput for POST /leads. Contact fields carry hard limits; free text
// is truncated by the lead service instead.
type SubmitInput struct {
	Body struct {
		Name         string `json:"name"                   doc:"Contact name"                        example:"Maria Silva"`
		Email        string `json:"email"                  doc:"Contact email"                       example:"maria@example.com" maxLength:"255"`
		Phone        string `json:"phone"                  doc:"Contact phone"                       example:"+55 54 99999-0000" maxLength:"20"`
		Message      string `json:"message,omitempty"      doc:"Message"                             example:"I would like to visit the house."`
		PostalCode   string `json:"postalCode,omitempty"   doc:"Postal code, with or without mask"   example:"95670-000"`
		Street       string `json:"street,omitempty"       doc:"Street"`
		Neighborhood string `json:"neighborhood,omitempty" doc:"Neighborhood"`
		City         string `json:"city,omitempty"         doc:"City, used for personalization"      example:"Gramado"`
		State        string `json:"state,omitempty"        doc:"Two-letter state"                    example:"RS"                maxLength:"2"`
		PropertyID   string `json:"propertyId,omitempty"   doc:"Listing the visitor is asking about" example:"gramado-house-1"`
		Source       string `json:"source,omitempty"       doc:"Acquisition channel; defaults to contact_form" enum:"contact_form,popup_home"`
	}
}
