// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// IDResponse returns a created entity's ID.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
