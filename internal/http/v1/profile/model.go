package profile

import "github.com/janisto/realty-portal/internal/platform/timeutil"

// Profile is a client's contact details.
type Profile struct {
	ID        string        `json:"id"                doc:"Firebase user id"  example:"client-123"`
	Name      string        `json:"name"              doc:"Full name"         example:"Maria Souza"`
	Email     string        `json:"email"             doc:"Account email"     example:"maria@example.com"`
	Phone     string        `json:"phone,omitempty"   doc:"Contact phone"     example:"(54) 99999-0000"`
	Address   string        `json:"address,omitempty" doc:"Postal address"    example:"Rua das Flores, 10 - Gramado/RS"`
	CreatedAt timeutil.Time `json:"createdAt"         doc:"Creation time"     example:"2024-05-01T12:00:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt"         doc:"Last update time"  example:"2024-05-01T12:00:00.000Z"`
}
