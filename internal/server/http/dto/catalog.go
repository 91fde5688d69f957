package dto

// ProductResponse describes a catalog product.
type ProductResponse struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Images      []string `json:"images"`
}

// ProductPageResponse is one window of the filtered catalog.
type ProductPageResponse struct {
	Items   []ProductResponse `json:"items"`
	Offset  int               `json:"offset"`
	Total   int               `json:"total"`
	HasNext bool              `json:"has_next"`
	HasPrev bool              `json:"has_prev"`
}

// CategoryResponse describes a product category.
type CategoryResponse struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// LocationResponse is a city, area or shop option.
type LocationResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// LocationsResponse is the state of the location pickers.
type LocationsResponse struct {
	Cities []LocationResponse `json:"cities"`
	Areas  []LocationResponse `json:"areas"`
	Shops  []LocationResponse `json:"shops"`
	City   string             `json:"city,omitempty"`
	Area   string             `json:"area,omitempty"`
}
