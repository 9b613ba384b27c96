package leads

import (
	"github.com/janisto/realty-portal/internal/platform/timeutil"
	leadsvc "github.com/janisto/realty-portal/internal/service/lead"
)

// Lead is a stored lead.
type Lead struct {
	ID           string        `json:"id"                     doc:"Lead identifier"          example:"9b2f7c7e-0d43-4c1e-9f0b-8f9c2f1d3a11"`
	Name         string        `json:"name"                   doc:"Contact name"             example:"Maria Silva"`
	Email        string        `json:"email"                  doc:"Contact email, lowercase" example:"maria@example.com"`
	Phone        string        `json:"phone"                  doc:"Contact phone"            example:"+55 54 99999-0000"`
	Message      string        `json:"message,omitempty"      doc:"Message"`
	PostalCode   string        `json:"postalCode,omitempty"   doc:"Postal code digits"       example:"95670000"`
	Street       string        `json:"street,omitempty"       doc:"Street"`
	Neighborhood string        `json:"neighborhood,omitempty" doc:"Neighborhood"`
	City         string        `json:"city,omitempty"         doc:"Normalized city"          example:"gramado"`
	State        string        `json:"state,omitempty"        doc:"Two-letter state"         example:"RS"`
	PropertyID   string        `json:"propertyId,omitempty"   doc:"Listing the lead asked about"`
	Source       string        `json:"source"                 doc:"Acquisition channel"      enum:"contact_form,popup_home"`
	CreatedAt    timeutil.Time `json:"createdAt"              doc:"Submission timestamp"     example:"2024-05-01T12:00:00.000Z"`
}

// ToLead converts a stored lead to its API form.
func ToLead(l *leadsvc.Lead) Lead {
	return Lead{
		ID:           l.ID,
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
		Message:      l.Message,
		PostalCode:   l.PostalCode,
		Street:       l.Street,
		Neighborhood: l.Neighborhood,
		City:         l.City,
		State:        l.State,
		PropertyID:   l.PropertyID,
		Source:       string(l.Source),
		CreatedAt:    timeutil.Time{Time: l.CreatedAt},
	}
}
