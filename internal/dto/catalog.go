package dto

// RoleResponse is one entry of the role catalog, in rank order.
type RoleResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Rank         int    `json:"rank"`
	IsMultiple   bool   `json:"is_multiple"`
	RequiresLink bool   `json:"requires_link"`
}

// ServiceTypeResponse is one entry of the service-type catalog.
type ServiceTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
