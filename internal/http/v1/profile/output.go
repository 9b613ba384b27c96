package profile

// CreateOutput for POST /me/profile (201 Created)
type CreateOutput struct {
	Location string `header:"Location" doc:"URL of the profile"`
	Body     Profile
}

// GetOutput for GET /me/profile
type GetOutput struct {
	Body Profile
}

// UpdateOutput for PATCH /me/profile
type UpdateOutput struct {
	Body Profile
}
