package models

// Pagination is the paging metadata the backend returns for list endpoints
// queried with pagination=true.
type Pagination struct {
	ItemsPerPage int `json:"itemsPerPage"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}
