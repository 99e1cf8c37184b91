package domain

// Product represents a single catalog entry as served to the kiosk frontend
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	Type        string  `json:"type" yaml:"type"` // "veg" or "non-veg"
	Price       float64 `json:"price" yaml:"price"`
	Image       string  `json:"image" yaml:"image"`
}

// CategoryAll is the pseudo-category the frontend sends to mean "no category filter"
const CategoryAll = "All"

// ProductFilter holds the predicates of a filtered listing request.
// Zero-valued fields are not applied.
type ProductFilter struct {
	ID       string
	Name     string
	Category string
	Type     string
	MinPrice *float64
	MaxPrice *float64
}

// HasCategory reports whether the category predicate should be applied
func (f ProductFilter) HasCategory() bool {
	return f.Category != "" && f.Category != CategoryAll
}
