package models

// MenuItem is a dish on the franchise menu. Sessions holds the names of the
// dining sessions the item is assigned to; it is derived from
// MenuSessionMapping on read and never stored.
type MenuItem struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Category     string   `json:"category" db:"category"`
	Price        float64  `json:"price" db:"price"`
	Description  string   `json:"description" db:"description"`
	Vegetarian   bool     `json:"vegetarian" db:"vegetarian"`
	GlutenFree   bool     `json:"gluten_free" db:"gluten_free"`
	DairyFree    bool     `json:"dairy_free" db:"dairy_free"`
	Popular      bool     `json:"popular" db:"popular"`
	Allergens    []string `json:"allergens" db:"allergens"`
	Satisfaction *float64 `json:"satisfaction,omitempty" db:"satisfaction"`
	Image        *string  `json:"image,omitempty" db:"image"`
	Sessions     []string `json:"sessions"`
}
