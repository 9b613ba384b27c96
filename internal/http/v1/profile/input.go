package profile

// CreateInput for POST /me/profile. The email comes from the token.
type CreateInput struct {
	Body struct {
		Name    string `json:"name"              minLength:"1" maxLength:"100" required:"true" doc:"Full name"       example:"Maria Souza"`
		Phone   string `json:"phone,omitempty"                 maxLength:"20"                  doc:"Contact phone"   example:"(54) 99999-0000"`
		Address string `json:"address,omitempty"               maxLength:"255"                 doc:"Postal address"  example:"Rua das Flores, 10 - Gramado/RS"`
	}
}

// UpdateInput for PATCH /me/profile. The name is managed by support.
type UpdateInput struct {
	Body struct {
		Phone   *string `json:"phone,omitempty"   maxLength:"20"  doc:"Contact phone, empty clears it"  example:"(54) 99999-0000"`
		Address *string `json:"address,omitempty" maxLength:"255" doc:"Postal address, empty clears it" example:"Rua das Flores, 10 - Gramado/RS"`
	}
}
