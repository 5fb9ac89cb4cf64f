package request

// ByIDRequest is a common struct for endpoints taking an integer ID path parameter.
// Courts, sub-courts, slots and bookings use sequential integer identifiers.
type ByIDRequest struct {
	ID int `uri:"id" binding:"required,min=1"`
}

// ByUUIDRequest is the equivalent for UUID-keyed entities (users, files).
type ByUUIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams holds pagination and sort-direction query parameters shared by
// list endpoints. Zero values mean "use the handler's defaults".
type ListParams struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}
