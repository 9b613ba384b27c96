package properties

import "github.com/janisto/realty-portal/internal/platform/pagination"

// ListInput for GET /properties
type ListInput struct {
	pagination.Params
	TransactionType string `query:"transactionType" default:"all"      enum:"all,sale,rental"                                                              doc:"Filter by transaction type"`
	PropertyType    string `query:"propertyType"    default:"all"      enum:"all,apartment,house,townhouse,penthouse,land,commercial_room,condo_house"     doc:"Filter by property type"`
	City            string `query:"city"            maxLength:"100"                                                                                        doc:"Case and accent insensitive city filter; disables personalization" example:"gramado"`
	Sort            string `query:"sort"            default:"featured" enum:"featured,newest,price_asc,price_desc"                                         doc:"Ordering"`
}

// GetInput for GET /properties/{id}
type GetInput struct {
	ID string `path:"id" maxLength:"128" doc:"Listing identifier" example:"gramado-house-1"`
}
