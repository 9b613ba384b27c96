package admin

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/realty-portal/internal/catalog"
	"github.com/janisto/realty-portal/internal/service/postal"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

func createParams(b PropertyBody) (propertysvc.CreateParams, error) {
	var details []error

	postalCode, err := optionalPostalCode(b.PostalCode)
	if err != nil {
		details = append(details, err)
	}
	if err := checkPriceRange(b.PriceMin, b.PriceMax); err != nil {
		details = append(details, err)
	}
	if len(details) > 0 {
		return propertysvc.CreateParams{}, huma.Error422UnprocessableEntity("invalid property", details...)
	}

	active := true
	if b.Active != nil {
		active = *b.Active
	}
	return propertysvc.CreateParams{
		Title:           strings.TrimSpace(b.Title),
		Description:     strings.TrimSpace(b.Description),
		TransactionType: catalog.TransactionType(b.TransactionType),
		PropertyType:    catalog.PropertyType(b.PropertyType),
		Status:          catalog.Status(b.Status),
		City:            strings.TrimSpace(b.City),
		Neighborhood:    strings.TrimSpace(b.Neighborhood),
		Street:          strings.TrimSpace(b.Street),
		State:           strings.ToUpper(b.State),
		PostalCode:      postalCode,
		PriceMin:        b.PriceMin,
		PriceMax:        b.PriceMax,
		Bedrooms:        b.Bedrooms,
		Bathrooms:       b.Bathrooms,
		ParkingSpots:    b.ParkingSpots,
		AreaM2:          b.AreaM2,
		Images:          b.Images,
		Active:          active,
		Featured:        b.Featured,
	}, nil
}

// updateParams validates p against the stored listing so the merged result
// keeps a consistent price range.
func updateParams(p PropertyPatch, current *catalog.Listing) (propertysvc.UpdateParams, error) {
	if p.empty() {
		return propertysvc.UpdateParams{}, huma.Error422UnprocessableEntity("at least one field is required")
	}

	var details []error
	params := propertysvc.UpdateParams{
		Title:        trimmed(p.Title),
		Description:  trimmed(p.Description),
		City:         trimmed(p.City),
		Neighborhood: trimmed(p.Neighborhood),
		Street:       trimmed(p.Street),
		PriceMin:     p.PriceMin,
		PriceMax:     p.PriceMax,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		ParkingSpots: p.ParkingSpots,
		AreaM2:       p.AreaM2,
		Images:       p.Images,
		Active:       p.Active,
		Featured:     p.Featured,
	}
	if p.TransactionType != nil {
		v := catalog.TransactionType(*p.TransactionType)
		params.TransactionType = &v
	}
	if p.PropertyType != nil {
		v := catalog.PropertyType(*p.PropertyType)
		params.PropertyType = &v
	}
	if p.Status != nil {
		v := catalog.Status(*p.Status)
		params.Status = &v
	}
	if p.State != nil {
		v := strings.ToUpper(*p.State)
		params.State = &v
	}
	if p.PostalCode != nil {
		code, err := optionalPostalCode(*p.PostalCode)
		if err != nil {
			details = append(details, err)
		}
		params.PostalCode = &code
	}

	priceMin, priceMax := current.PriceMin, current.PriceMax
	if p.PriceMin != nil {
		priceMin = p.PriceMin
	}
	if p.PriceMax != nil {
		priceMax = p.PriceMax
	}
	if err := checkPriceRange(priceMin, priceMax); err != nil {
		details = append(details, err)
	}

	if len(details) > 0 {
		return propertysvc.UpdateParams{}, huma.Error422UnprocessableEntity("invalid property", details...)
	}
	return params, nil
}

func (p PropertyPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.TransactionType == nil &&
		p.PropertyType == nil && p.Status == nil && p.City == nil && p.Neighborhood == nil &&
		p.Street == nil && p.State == nil && p.PostalCode == nil && p.PriceMin == nil &&
		p.PriceMax == nil && p.Bedrooms == nil && p.Bathrooms == nil && p.ParkingSpots == nil &&
		p.AreaM2 == nil && p.Images == nil && p.Active == nil && p.Featured == nil
}

// optionalPostalCode returns the digits of raw; empty input clears the code.
func optionalPostalCode(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	code, err := postal.Parse(raw)
	if err != nil {
		return "", &huma.ErrorDetail{
			Location: "body.postalCode",
			Message:  "must have 8 digits",
			Value:    raw,
		}
	}
	return code, nil
}

func checkPriceRange(priceMin, priceMax *float64) error {
	if priceMin != nil && priceMax != nil && *priceMin > *priceMax {
		return &huma.ErrorDetail{
			Location: "body.priceMax",
			Message:  "must be greater than or equal to priceMin",
			Value:    *priceMax,
		}
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
