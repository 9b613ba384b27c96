package favorites

// ToggleInput for POST /me/favorites/{propertyId}
type ToggleInput struct {
	PropertyID string `path:"propertyId" doc:"Listing identifier" example:"gramado-house-1" maxLength:"128"`
}
