package models

// FoodItem is a menu entry fetched from the catalog. It is never persisted
// on its own; orders snapshot the fields they need at purchase time.
type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

type Restaurant struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}
