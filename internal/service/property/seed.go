package property

import (
	"time"

	"github.com/janisto/realty-portal/internal/catalog"
)

func ptr[T any](v T) *T { return &v }

// SampleListings returns a small demo catalog for local development.
func SampleListings() []catalog.Listing {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return []catalog.Listing{
		{
			ID: "gramado-house-1", Title: "Stone house near Lago Negro",
			TransactionType: catalog.TransactionSale, PropertyType: catalog.PropertyHouse, Status: catalog.StatusAvailable,
			City: "Gramado", Neighborhood: "Planalto", State: "RS", PostalCode: "95670000",
			PriceMin: ptr(1850000.0), PriceMax: ptr(1950000.0), Bedrooms: ptr(4), Bathrooms: ptr(3), ParkingSpots: ptr(2), AreaM2: ptr(280.0),
			Active: true, Featured: true, CreatedAt: base, UpdatedAt: base,
		},
		{
			ID: "gramado-apartment-1", Title: "Downtown apartment",
			TransactionType: catalog.TransactionRental, PropertyType: catalog.PropertyApartment, Status: catalog.StatusAvailable,
			City: "Gramado", Neighborhood: "Centro", State: "RS", PostalCode: "95670000",
			PriceMin: ptr(4500.0), Bedrooms: ptr(2), Bathrooms: ptr(1), ParkingSpots: ptr(1), AreaM2: ptr(72.0),
			Active: true, CreatedAt: base.Add(48 * time.Hour), UpdatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: "canela-land-1", Title: "Lot with forest view",
			TransactionType: catalog.TransactionSale, PropertyType: catalog.PropertyLand, Status: catalog.StatusAvailable,
			City: "Canela", Neighborhood: "Laje de Pedra", State: "RS", PostalCode: "95680000",
			PriceMin: ptr(420000.0), AreaM2: ptr(900.0),
			Active: true, CreatedAt: base.Add(24 * time.Hour), UpdatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "poa-penthouse-1", Title: "Penthouse in Moinhos de Vento",
			TransactionType: catalog.TransactionSale, PropertyType: catalog.PropertyPenthouse, Status: catalog.StatusAvailable,
			City: "Porto Alegre", Neighborhood: "Moinhos de Vento", State: "RS", PostalCode: "90570000",
			PriceMin: ptr(3200000.0), Bedrooms: ptr(3), Bathrooms: ptr(4), ParkingSpots: ptr(3), AreaM2: ptr(310.0),
			Active: true, Featured: true, CreatedAt: base.Add(72 * time.Hour), UpdatedAt: base.Add(72 * time.Hour),
		},
		{
			ID: "sp-commercial-1", Title: "Office on Avenida Paulista",
			TransactionType: catalog.TransactionRental, PropertyType: catalog.PropertyCommercialRoom, Status: catalog.StatusRented,
			City: "São Paulo", Neighborhood: "Bela Vista", State: "SP", PostalCode: "01310100",
			PriceMin: ptr(12000.0), AreaM2: ptr(95.0),
			Active: false, CreatedAt: base.Add(96 * time.Hour), UpdatedAt: base.Add(96 * time.Hour),
		},
	}
}
